package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestStore_NilStoreIsNoOp(t *testing.T) {
	var store *Store

	assert.NoError(t, store.Revoke(context.Background(), "token-abc", time.Hour))
	assert.False(t, store.IsRevoked(context.Background(), "token-abc"))
}

func TestStore_NilClientIsNoOp(t *testing.T) {
	store := NewStore(nil)

	assert.NoError(t, store.Revoke(context.Background(), "token-abc", time.Hour))
	assert.False(t, store.IsRevoked(context.Background(), "token-abc"))
}

func TestStore_ExpiredTTLIsNoOp(t *testing.T) {
	// An already-expired token needs no denylist entry
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	store := NewStore(client)

	assert.NoError(t, store.Revoke(context.Background(), "token-abc", 0))
	assert.NoError(t, store.Revoke(context.Background(), "token-abc", -time.Minute))
}

func TestStore_RevokeSurfacesRedisErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewStore(client)

	err := store.Revoke(context.Background(), "token-abc", time.Hour)
	assert.Error(t, err)
}

func TestStore_IsRevokedFailsOpen(t *testing.T) {
	// An unreachable redis must not lock everyone out
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewStore(client)

	assert.False(t, store.IsRevoked(context.Background(), "token-abc"))
}
