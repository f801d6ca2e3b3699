package access

// Decision reasons. Not errors: a denied decision drives UI redirection.
const (
	ReasonNotAuthenticated = "not_authenticated"
	ReasonPendingReview    = "pending_review"
	ReasonDisabled         = "disabled"
	ReasonRejected         = "rejected"
	ReasonOK               = "ok"
)

// Decision is the per-request outcome of an access check. It is computed,
// never persisted.
type Decision struct {
	Allowed bool
	Reason  string
}

var (
	decisionOK               = Decision{Allowed: true, Reason: ReasonOK}
	decisionNotAuthenticated = Decision{Reason: ReasonNotAuthenticated}
	decisionPending          = Decision{Reason: ReasonPendingReview}
	decisionDisabled         = Decision{Reason: ReasonDisabled}
	decisionRejected         = Decision{Reason: ReasonRejected}
)
