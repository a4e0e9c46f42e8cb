package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"agrifields/internal/domain"
)

const revokedKeyPrefix = "agrifields:revoked:"

// RevocationsRedis keeps revoked session token ids in Redis with a TTL equal
// to the remaining token lifetime.
type RevocationsRedis struct {
	client redis.Cmdable
}

func NewRevocationsRedis(client redis.Cmdable) *RevocationsRedis {
	return &RevocationsRedis{client: client}
}

func (r *RevocationsRedis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *RevocationsRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("check revocation: %w", err)
	}
}

// RevocationsMemory is the in-process fallback when Redis is not configured.
type RevocationsMemory struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewRevocationsMemory() *RevocationsMemory {
	return &RevocationsMemory{entries: make(map[string]time.Time), now: time.Now}
}

func (r *RevocationsMemory) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, until := range r.entries {
		if now.After(until) {
			delete(r.entries, id)
		}
	}
	r.entries[tokenID] = now.Add(ttl)
	return nil
}

func (r *RevocationsMemory) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.entries[tokenID]
	if !ok {
		return false, nil
	}
	if r.now().After(until) {
		delete(r.entries, tokenID)
		return false, nil
	}
	return true, nil
}

var (
	_ domain.RevocationStore = (*RevocationsRedis)(nil)
	_ domain.RevocationStore = (*RevocationsMemory)(nil)
)
