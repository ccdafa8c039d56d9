package command

import "context"

// VerifyEmail confirms a user's email address from a verification token.
type VerifyEmail struct {
	Token string
}

func (c VerifyEmail) CommandName() string {
	return "marketscout.verify_email"
}

// VerifyEmailHandler handles the VerifyEmail command.
type VerifyEmailHandler interface {
	Handle(ctx context.Context, cmd VerifyEmail) error
}
