package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"coldreach/internal/core/domain"
	"coldreach/internal/core/port"
)

// AuthUseCase implements port.AuthUseCase with bcrypt password hashing and
// HS256 access tokens.
type AuthUseCase struct {
	users  port.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	newID  func() string
}

// NewAuthUseCase builds the auth usecase. secret signs access tokens and
// ttl bounds their lifetime.
func NewAuthUseCase(users port.UserRepository, secret []byte, ttl time.Duration) *AuthUseCase {
	return &AuthUseCase{
		users:  users,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Register creates an account, rejecting duplicate emails, and returns a
// fresh session.
func (u *AuthUseCase) Register(ctx context.Context, req port.RegisterRequest) (*port.AuthSession, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := u.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, &domain.ConflictError{Detail: "Email already registered"}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		ID:           u.newID(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		CreatedAt:    u.now().UTC(),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u.session(user)
}

// Login verifies credentials. Unknown emails and wrong passwords produce
// the same error to avoid leaking which accounts exist.
func (u *AuthUseCase) Login(ctx context.Context, req port.LoginRequest) (*port.AuthSession, error) {
	user, err := u.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.AuthError{Detail: "Invalid email or password"}
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &domain.AuthError{Detail: "Invalid email or password"}
	}
	return u.session(user)
}

// Authenticate resolves a bearer token to its user.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return u.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(u.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &domain.AuthError{Detail: "Token expired"}
		}
		return nil, &domain.AuthError{Detail: "Invalid token"}
	}
	if claims.Subject == "" {
		return nil, &domain.AuthError{Detail: "Invalid token"}
	}
	user, err := u.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.AuthError{Detail: "User not found"}
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// session issues a signed token for user.
func (u *AuthUseCase) session(user *domain.User) (*port.AuthSession, error) {
	now := u.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		ID:        u.newID(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &port.AuthSession{
		AccessToken: signed,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
