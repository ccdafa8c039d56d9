package command

import "context"

// RequestPasswordReset mints a reset token for the given email address.
type RequestPasswordReset struct {
	Email string
}

func (c RequestPasswordReset) CommandName() string {
	return "marketscout.request_password_reset"
}

// RequestPasswordResetResult contains the token the mail dispatcher embeds
// into the reset link.
type RequestPasswordResetResult struct {
	ResetToken string
}

// RequestPasswordResetHandler handles the RequestPasswordReset command.
type RequestPasswordResetHandler interface {
	Handle(ctx context.Context, cmd RequestPasswordReset) (RequestPasswordResetResult, error)
}

// ResetPassword sets a new password from a reset token and invalidates all
// of the user's outstanding credentials.
type ResetPassword struct {
	Token       string
	NewPassword string
}

func (c ResetPassword) CommandName() string {
	return "marketscout.reset_password"
}

// ResetPasswordHandler handles the ResetPassword command.
type ResetPasswordHandler interface {
	Handle(ctx context.Context, cmd ResetPassword) error
}
