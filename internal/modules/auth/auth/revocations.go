package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "crm:revoked:"

// Revocations remembers logged out token ids until the tokens expire. With a
// redis client the ids are shared between instances; without one they live
// in process memory.
type Revocations struct {
	rdb *redis.Client

	mu  sync.Mutex
	mem map[string]time.Time
}

func NewRevocations(rdb *redis.Client) *Revocations {
	return &Revocations{rdb: rdb, mem: make(map[string]time.Time)}
}

// Revoke invalidates tokenID for ttl.
func (r *Revocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	if r.rdb != nil {
		return r.rdb.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, exp := range r.mem {
		if now.After(exp) {
			delete(r.mem, id)
		}
	}
	r.mem[tokenID] = now.Add(ttl)
	return nil
}

// IsRevoked reports whether tokenID was logged out. Redis errors count as
// not revoked.
func (r *Revocations) IsRevoked(ctx context.Context, tokenID string) bool {
	if r.rdb != nil {
		n, err := r.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
		return err == nil && n > 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.mem[tokenID]
	return ok && time.Now().Before(exp)
}
