package access

import "context"

// Notification kinds handed to the sender. Each kind fixes the template
// parameters the caller must supply; transport is the sender's concern.
const (
	KindVerification   = "verification"    // name, email, token, expires
	KindExpiryWarning  = "expiry-warning"  // name, email, days_left, expires
	KindRejection      = "rejection"       // name, email
	KindContactInquiry = "contact-inquiry" // name, email, company, message
)

// Notifier is the outbound notification port. A failed Send never rolls back
// the state transition that triggered it; callers log and move on.
type Notifier interface {
	Send(ctx context.Context, kind, recipient string, params map[string]string) error
}
