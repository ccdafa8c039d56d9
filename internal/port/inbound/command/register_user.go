package command

import "context"

// RegisterUser creates a new user account.
type RegisterUser struct {
	Username string
	Email    string
	Password string
}

func (c RegisterUser) CommandName() string {
	return "marketscout.register_user"
}

// RegisterUserResult contains the new user ID and the email verification
// token the mail dispatcher embeds into the verification link.
type RegisterUserResult struct {
	UserID            string
	VerificationToken string
}

// RegisterUserHandler handles the RegisterUser command.
type RegisterUserHandler interface {
	Handle(ctx context.Context, cmd RegisterUser) (RegisterUserResult, error)
}
