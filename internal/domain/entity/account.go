package entity

import "time"

// Account roles.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// Subscription statuses. Transitions are admin-driven (approve/reject/disable);
// expiry of an active subscription is detected lazily at access-check time and
// never stored back as a transition.
const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusDisabled = "disabled"
	StatusRejected = "rejected"
)

// Account represents one registered portal user.
type Account struct {
	ID                 string
	Email              string
	PasswordHash       string
	Name               string
	Company            string
	Industry           string
	Phone              string
	Role               string // client, admin
	SubscriptionStatus string // pending, active, disabled, rejected
	SubscriptionEnd    *time.Time // meaningful only while status is active
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsAdmin reports whether the account bypasses subscription checks.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// SubscriptionExpired reports whether an active subscription has run past its
// end date. Accounts without an end date never expire.
func (a *Account) SubscriptionExpired(now time.Time) bool {
	return a.SubscriptionEnd != nil && a.SubscriptionEnd.Before(now)
}
