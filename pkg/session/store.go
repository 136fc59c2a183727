package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store tracks revoked token IDs so logout invalidates a JWT before its
// natural expiry. A nil Store disables revocation checks.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func revocationKey(tokenID string) string {
	return fmt.Sprintf("session:revoked:%s", tokenID)
}

// Revoke marks a token ID as logged out. The entry only needs to live as
// long as the token itself, so ttl is the time left until expiry.
func (s *Store) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revocationKey(tokenID), "1", ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, tokenID string) bool {
	if s == nil || s.client == nil {
		return false
	}
	n, err := s.client.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		// Fail open: an unreachable redis should not lock everyone out
		return false
	}
	return n > 0
}
