package port

import (
	"context"
	"net/mail"
	"strings"

	"coldreach/internal/core/domain"
)

// AuthUseCase owns account registration and token-based authentication.
// Every campaign operation trusts the identity it resolves.
type AuthUseCase interface {
	// Register creates an account and returns a fresh session.
	Register(ctx context.Context, req RegisterRequest) (*AuthSession, error)
	// Login verifies credentials and returns a fresh session.
	Login(ctx context.Context, req LoginRequest) (*AuthSession, error)
	// Authenticate resolves a bearer token to its user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate checks the registration fields.
func (r *RegisterRequest) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &domain.ValidationError{Detail: "a valid email is required"}
	}
	if r.Password == "" {
		return &domain.ValidationError{Detail: "password is required"}
	}
	if strings.TrimSpace(r.Name) == "" {
		return &domain.ValidationError{Detail: "name is required"}
	}
	return nil
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthSession pairs an access token with the user it belongs to.
type AuthSession struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}
