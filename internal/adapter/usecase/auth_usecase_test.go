package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

var testSecret = []byte("test-secret")

func registerReq() port.RegisterRequest {
	return port.RegisterRequest{Email: "ada@example.com", Password: "hunter22", Name: "Ada"}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	auth := NewAuthUseCase(newMemUserRepo(), testSecret, time.Hour)

	session, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.NotEqual(t, "hunter22", session.User.PasswordHash, "password must never be stored in clear")

	user, err := auth.Authenticate(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := NewAuthUseCase(newMemUserRepo(), testSecret, time.Hour)

	_, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), registerReq())
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRegisterLosesInsertRaceToDuplicateEmail(t *testing.T) {
	users := newMemUserRepo()
	auth := NewAuthUseCase(users, testSecret, time.Hour)

	// another request inserts the same email between the existence check
	// and this insert; the conflict must surface as such, not as a 500
	users.createHook = func(u *domain.User) error {
		return &domain.ConflictError{Detail: "Email already registered"}
	}

	_, err := auth.Register(context.Background(), registerReq())
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Email already registered", conflict.Detail)
}

func TestRegisterValidation(t *testing.T) {
	auth := NewAuthUseCase(newMemUserRepo(), testSecret, time.Hour)

	cases := []struct {
		name string
		req  port.RegisterRequest
	}{
		{"bad email", port.RegisterRequest{Email: "not-an-email", Password: "x", Name: "A"}},
		{"empty password", port.RegisterRequest{Email: "a@b.co", Name: "A"}},
		{"empty name", port.RegisterRequest{Email: "a@b.co", Password: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(context.Background(), tc.req)
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestLogin(t *testing.T) {
	auth := NewAuthUseCase(newMemUserRepo(), testSecret, time.Hour)
	_, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	session, err := auth.Login(context.Background(), port.LoginRequest{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	var authErr *domain.AuthError
	_, err = auth.Login(context.Background(), port.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.ErrorAs(t, err, &authErr)
	wrongPassword := authErr.Detail

	_, err = auth.Login(context.Background(), port.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, wrongPassword, authErr.Detail, "unknown email and wrong password must be indistinguishable")
}

func TestAuthenticateExpiredToken(t *testing.T) {
	auth := NewAuthUseCase(newMemUserRepo(), testSecret, time.Hour)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	auth.now = func() time.Time { return base }

	session, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	auth.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, err = auth.Authenticate(context.Background(), session.AccessToken)
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Token expired", authErr.Detail)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	auth := NewAuthUseCase(newMemUserRepo(), testSecret, time.Hour)

	var authErr *domain.AuthError
	_, err := auth.Authenticate(context.Background(), "garbage")
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid token", authErr.Detail)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	users := newMemUserRepo()
	auth := NewAuthUseCase(users, testSecret, time.Hour)

	session, err := auth.Register(context.Background(), registerReq())
	require.NoError(t, err)

	// account removed after the token was issued
	users.mu.Lock()
	clear(users.users)
	users.mu.Unlock()

	var authErr *domain.AuthError
	_, err = auth.Authenticate(context.Background(), session.AccessToken)
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "User not found", authErr.Detail)
}
