// Package session keeps one view controller per browser session and
// evicts sessions that have gone idle.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/distlock"
	"github.com/ignite/campaign-insights/internal/pkg/logger"
	"github.com/ignite/campaign-insights/internal/view"
)

// Factory builds the controller for a new session id.
type Factory func(id string) *view.Controller

// NewControllerFactory returns a Factory whose controllers take the
// lock "analysis:<id>" around every analysis. With a nil client the lock
// is process-local.
func NewControllerFactory(cfg view.Config, src view.Source, client *redis.Client, lockTTL time.Duration) Factory {
	return func(id string) *view.Controller {
		gate := analysisGate{g: distlock.NewGate(client, "analysis:"+id, lockTTL)}
		return view.New(cfg, src, view.WithGate(gate), view.WithName(id))
	}
}

// analysisGate reports a held lock as an analysis in flight.
type analysisGate struct {
	g *distlock.Gate
}

func (a analysisGate) Acquire(ctx context.Context) (func(), error) {
	release, err := a.g.Acquire(ctx)
	if errors.Is(err, distlock.ErrNotAcquired) {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisInFlight, err)
	}
	return release, err
}

type entry struct {
	ctrl     *view.Controller
	lastSeen time.Time
}

// Registry maps session ids to controllers.
type Registry struct {
	newController Factory
	idle          time.Duration
	now           func() time.Time
	log           *logger.Logger

	mu       sync.Mutex
	sessions map[string]*entry
	closed   bool
}

// NewRegistry creates an empty registry. Sessions unused for longer than
// idle are evicted by Sweep.
func NewRegistry(idle time.Duration, factory Factory) *Registry {
	return &Registry{
		newController: factory,
		idle:          idle,
		now:           time.Now,
		log:           logger.Named("session"),
		sessions:      make(map[string]*entry),
	}
}

// Lookup returns the controller for id, creating a session when id is
// empty, malformed or unknown. The returned id is the one to hand back
// to the client.
func (r *Registry) Lookup(id string) (string, *view.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return "", nil, view.ErrClosed
	}

	if _, err := uuid.Parse(id); err == nil {
		if e, ok := r.sessions[id]; ok {
			e.lastSeen = r.now()
			return id, e.ctrl, nil
		}
	}

	id = uuid.NewString()
	e := &entry{ctrl: r.newController(id), lastSeen: r.now()}
	r.sessions[id] = e
	r.log.Debug("session created", "session", id, "active", len(r.sessions))
	return id, e.ctrl, nil
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes and drops idle sessions. It returns how many were evicted.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	cutoff := r.now().Add(-r.idle)
	var stale []*view.Controller
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.ctrl)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	if len(stale) > 0 {
		r.log.Info("idle sessions evicted", "count", len(stale))
	}
	return len(stale)
}

// Run sweeps periodically until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	interval := r.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close closes every controller. Lookups fail afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	r.closed = true
	all := make([]*view.Controller, 0, len(r.sessions))
	for id, e := range r.sessions {
		all = append(all, e.ctrl)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
}
