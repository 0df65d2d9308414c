// Package distlock provides named try-locks. Redis backs them when a
// client is configured so that every replica sees the same lock; without
// one an in-process table is used.
package distlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned by Gate.Acquire when another holder has the lock.
var ErrNotAcquired = errors.New("lock held by another owner")

// DistLock is one attempt at holding a named lock.
// Implementations must be safe for use from a single goroutine;
// concurrent use across goroutines requires separate lock instances.
type DistLock interface {
	// Acquire tries to acquire the lock. Returns true if successful.
	Acquire(ctx context.Context) (bool, error)
	// Release releases the lock if we still own it.
	Release(ctx context.Context) error
}

// NewLock creates a lock on key. If redisClient is non-nil the lock lives
// in Redis with the given TTL; otherwise it is process-local and ttl is
// ignored.
func NewLock(redisClient *redis.Client, key string, ttl time.Duration) DistLock {
	if redisClient != nil {
		return NewRedisLock(redisClient, key, ttl)
	}
	return &localLock{key: key}
}

var local = struct {
	sync.Mutex
	held map[string]bool
}{held: make(map[string]bool)}

type localLock struct {
	key   string
	owned bool
}

func (l *localLock) Acquire(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	local.Lock()
	defer local.Unlock()
	if local.held[l.key] {
		return false, nil
	}
	local.held[l.key] = true
	l.owned = true
	return true, nil
}

func (l *localLock) Release(context.Context) error {
	if !l.owned {
		return nil
	}
	local.Lock()
	delete(local.held, l.key)
	local.Unlock()
	l.owned = false
	return nil
}
