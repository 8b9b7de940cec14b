package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"trackline/internal/auth"
	apperrors "trackline/internal/errors"
	"trackline/internal/model"
	"trackline/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, claims *auth.Claims) error
	IsRevoked(ctx context.Context, claims *auth.Claims) (bool, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Login authenticates a user and issues a bearer token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.NewUnauthenticated("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.NewUnauthenticated("invalid email or password")
	}

	token, err := s.jwtService.IssueToken(user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout blacklists the token for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := auth.TokenExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.tokenStore.BlacklistToken(ctx, claims.ID, ttl)
}

// IsRevoked reports whether the token was blacklisted by a logout, or
// predates a forced password reset of its subject.
func (s *authService) IsRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	revoked, err := s.tokenStore.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil || revoked {
		return revoked, err
	}

	cutoff, err := s.tokenStore.SubjectInvalidBefore(ctx, claims.Subject)
	if err != nil {
		return false, err
	}
	if !cutoff.IsZero() && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(cutoff) {
		return true, nil
	}
	return false, nil
}
