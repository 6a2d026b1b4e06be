package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "revoked_token:"

// TokenRevoker tracks revoked token ids in Redis until their natural expiry.
// Stateless JWTs cannot be invalidated server-side otherwise, so logout writes
// the jti here and the auth middleware checks it on every request.
type TokenRevoker struct {
	client *redis.Client
}

// NewTokenRevoker builds a revoker over the given client. A nil client
// disables revocation (tokens then remain valid until expiry).
func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client}
}

// Revoke marks a token id as revoked until its expiry.
func (r *TokenRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if r == nil || r.client == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (r *TokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if r == nil || r.client == nil {
		return false, nil
	}
	if err := r.client.Get(ctx, revocationKeyPrefix+jti).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
