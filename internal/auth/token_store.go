package auth

import (
	"context"
	"strconv"
	"time"

	"trackline/internal/cache"
)

const (
	blacklistKeyPrefix = "blacklist:token:"
	subjectKeyPrefix   = "blacklist:subject:"
)

// TokenStoreInterface defines the interface for token revocation storage.
// Logout blacklists a single token's JTI for its remaining lifetime; a
// forced password reset invalidates every token the subject holds by
// recording a cutoff instant, since the admin does not know their JTIs.
type TokenStoreInterface interface {
	BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error)
	InvalidateSubject(ctx context.Context, subject string, at time.Time) error
	SubjectInvalidBefore(ctx context.Context, subject string) (time.Time, error)
}

// TokenStore handles token revocation marks in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// BlacklistToken marks a token ID as revoked until it expires.
func (s *TokenStore) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, blacklistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsTokenBlacklisted checks if a token ID has been revoked. Redis being
// unreachable reads as not blacklisted (fail safe).
func (s *TokenStore) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, blacklistKeyPrefix+tokenID)
}

// InvalidateSubject records that every token issued to the subject before
// the given instant is revoked. The mark outlives the longest-lived token.
func (s *TokenStore) InvalidateSubject(ctx context.Context, subject string, at time.Time) error {
	value := strconv.FormatInt(at.Unix(), 10)
	return s.cache.Set(ctx, subjectKeyPrefix+subject, []byte(value), TokenExpiry)
}

// SubjectInvalidBefore returns the subject's revocation cutoff, or the
// zero time when no reset has been recorded.
func (s *TokenStore) SubjectInvalidBefore(ctx context.Context, subject string) (time.Time, error) {
	data, err := s.cache.Get(ctx, subjectKeyPrefix+subject)
	if err != nil || data == nil {
		return time.Time{}, err
	}
	unix, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return time.Unix(unix, 0), nil
}
