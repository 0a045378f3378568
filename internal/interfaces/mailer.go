package interfaces

import "context"

type VerificationMailer interface {
	SendVerifyEmail(ctx context.Context, to string, token string) error
}
