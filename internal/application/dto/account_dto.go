package dto

import (
	"time"

	"github.com/ecotreat/portal-api/internal/domain/entity"
)

// RegisterRequest input for client registration. All profile fields are
// required; registration is rejected per missing field, never partially
// created.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=1,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	CompanyName  string `json:"companyName" validate:"required,max=200"`
	IndustryType string `json:"industryType" validate:"required,max=100"`
	MobileNumber string `json:"mobileNumber" validate:"required,e164"`
}

// LoginRequest input for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse account output (without password hash).
type AccountResponse struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Company            string     `json:"company"`
	Industry           string     `json:"industry"`
	Phone              string     `json:"phone"`
	Role               string     `json:"role"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionEnd    *time.Time `json:"subscription_end,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// LoginResponse output with session token.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// AccessResponse account plus the access decision for the tools area.
type AccessResponse struct {
	Account AccountResponse `json:"account"`
	Allowed bool            `json:"allowed"`
	Reason  string          `json:"reason"`
}

// ApproveRequest admin input for approving an account. PlanMonths of zero
// falls back to the configured default term.
type ApproveRequest struct {
	PlanMonths int `json:"plan_months" validate:"min=0,max=120"`
}

// ContactRequest public contact-form input.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=4000"`
}

// ToAccountResponse maps an entity to its API shape.
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		Company:            a.Company,
		Industry:           a.Industry,
		Phone:              a.Phone,
		Role:               a.Role,
		SubscriptionStatus: a.SubscriptionStatus,
		SubscriptionEnd:    a.SubscriptionEnd,
		CreatedAt:          a.CreatedAt,
	}
}
