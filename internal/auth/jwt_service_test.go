package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"trackline/internal/model"
)

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.IssueToken("member@example.com", model.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "member@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "member@example.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_TokenExpiry(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.IssueToken("member@example.com", model.RoleUser)
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, TokenExpiry-time.Minute)
	assert.LessOrEqual(t, remaining, TokenExpiry)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("issuer-secret")
	verifier := NewJWTService("other-secret")

	token, err := issuer.IssueToken("member@example.com", model.RoleUser)
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_EachTokenGetsFreshID(t *testing.T) {
	svc := NewJWTService("test-secret")

	first, err := svc.IssueToken("member@example.com", model.RoleUser)
	assert.NoError(t, err)
	second, err := svc.IssueToken("member@example.com", model.RoleUser)
	assert.NoError(t, err)

	firstClaims, err := svc.ValidateToken(first)
	assert.NoError(t, err)
	secondClaims, err := svc.ValidateToken(second)
	assert.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
