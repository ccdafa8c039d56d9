package model

import (
	"strings"
	"time"

	domainerror "github.com/market-scout/marketscout/internal/domain/error"
)

// User represents a registered reviewer.
type User struct {
	id            string
	username      string
	email         string
	passwordHash  string
	emailVerified bool
	scopes        []string
	createdAt     time.Time
}

// NewUser creates a new User with an unverified email.
func NewUser(username, email, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if username == "" || email == "" || passwordHash == "" {
		return nil, domainerror.ErrInvalidCredentials
	}

	return &User{
		id:            NewID(),
		username:      username,
		email:         email,
		passwordHash:  passwordHash,
		emailVerified: false,
		scopes:        []string{"reviews:write"},
		createdAt:     time.Now().UTC(),
	}, nil
}

// ReconstructUser creates a User from persisted data.
func ReconstructUser(
	id string,
	username string,
	email string,
	passwordHash string,
	emailVerified bool,
	scopes []string,
	createdAt time.Time,
) *User {
	return &User{
		id:            id,
		username:      username,
		email:         email,
		passwordHash:  passwordHash,
		emailVerified: emailVerified,
		scopes:        scopes,
		createdAt:     createdAt,
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) EmailVerified() bool  { return u.emailVerified }
func (u *User) Scopes() []string     { return u.scopes }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// VerifyEmail marks the user's email address as verified.
func (u *User) VerifyEmail() {
	u.emailVerified = true
}

// ChangePassword replaces the stored password hash.
func (u *User) ChangePassword(passwordHash string) {
	u.passwordHash = passwordHash
}
