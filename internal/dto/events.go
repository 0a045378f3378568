package dto

const (
	EventAccountRegistered  = "account.registered"
	EventAccountVerified    = "account.verified"
	EventAccountVerifyEmail = "account.verify_email"
)

// VerifyEmailEvent carries the raw token; only its digest is stored.
type VerifyEmailEvent struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	Token    string `json:"token"`
}

type AccountEvent struct {
	UserID     uint   `json:"user_id"`
	Email      string `json:"email"`
	UserType   string `json:"user_type"`
	OccurredAt string `json:"occurred_at"`
}
