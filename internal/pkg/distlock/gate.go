package distlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/campaign-insights/internal/pkg/logger"
)

const releaseTimeout = 5 * time.Second

// Gate hands out a fresh lock on the same key per acquisition.
type Gate struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	log    *logger.Logger
}

// NewGate creates a gate on key. client may be nil.
func NewGate(client *redis.Client, key string, ttl time.Duration) *Gate {
	return &Gate{client: client, key: key, ttl: ttl, log: logger.Named("distlock")}
}

// Acquire takes the lock without waiting. It returns ErrNotAcquired when
// someone else holds it. The release func is safe to call more than once.
func (g *Gate) Acquire(ctx context.Context) (func(), error) {
	l := NewLock(g.client, g.key, g.ttl)
	ok, err := l.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAcquired, g.key)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := l.Release(rctx); err != nil {
			g.log.Warn("lock release failed", "key", g.key, "error", err)
		}
	}, nil
}
