package utils

import (
	"context"
	"sync"
	"time"
)

// Idempotency keys deduplicate retried interaction submissions. A key is
// claimed at most once within its TTL; replays see the claim and short-circuit.
// Redis SETNX is preferred; a process-local map is the fallback when Redis is
// unreachable (best effort only, not shared across instances).

type idemEntry struct {
	expiresAt time.Time
}

var (
	idemLocal   = map[string]idemEntry{}
	idemLocalMu sync.Mutex
)

// ClaimIdempotencyKey returns true when this call is the first to claim key
// within ttl. Empty keys are always "first" (dedup disabled by the caller).
func ClaimIdempotencyKey(key string, ttl time.Duration) bool {
	if key == "" {
		return true
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		ok, err := rc.SetNX(ctx, "idem:"+key, "1", ttl).Result()
		if err == nil {
			return ok
		}
		// Redis down: fall through to local map rather than failing the request.
	}

	idemLocalMu.Lock()
	defer idemLocalMu.Unlock()

	now := time.Now()
	for k, e := range idemLocal {
		if now.After(e.expiresAt) {
			delete(idemLocal, k)
		}
	}
	if e, ok := idemLocal[key]; ok && now.Before(e.expiresAt) {
		return false
	}
	idemLocal[key] = idemEntry{expiresAt: now.Add(ttl)}
	return true
}

// ReleaseIdempotencyKey drops a claim so the caller may retry after a failed
// attempt without waiting out the TTL.
func ReleaseIdempotencyKey(key string) {
	if key == "" {
		return
	}
	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Del(ctx, "idem:"+key).Err(); err == nil {
			return
		}
	}
	idemLocalMu.Lock()
	delete(idemLocal, key)
	idemLocalMu.Unlock()
}
