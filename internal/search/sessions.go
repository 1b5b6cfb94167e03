package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v3"

	"github.com/evcraddock/estate/internal/listing"
)

// SessionCookie names the cookie that carries a browser's session id.
const SessionCookie = "estate_session"

// DefaultSessionIdle is how long an unused session runner is kept.
const DefaultSessionIdle = 30 * time.Minute

// MaxSessions caps the idle runners kept in memory. A runner with a search
// in flight is never replaced, even when the cache has dropped it.
const MaxSessions = 10000

// Sessions hands out one Runner per browser session. Runners idle for longer
// than the configured time are dropped.
type Sessions struct {
	searcher Searcher
	delay    time.Duration
	idle     time.Duration

	mu       sync.Mutex
	cache    *ccache.Cache[*Runner]
	inflight map[string]*busyRunner
}

// busyRunner is a runner with n submissions still running.
type busyRunner struct {
	runner *Runner
	n      int
}

// NewSessions creates a session registry whose runners search with searcher
// and wait delay before each search.
func NewSessions(searcher Searcher, delay, idle time.Duration) *Sessions {
	if idle <= 0 {
		idle = DefaultSessionIdle
	}
	return &Sessions{
		searcher: searcher,
		delay:    delay,
		idle:     idle,
		cache:    ccache.New(ccache.Configure[*Runner]().MaxSize(MaxSessions)),
		inflight: make(map[string]*busyRunner),
	}
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Runner returns the runner for id, creating it on first use and extending
// its lifetime on every call.
func (s *Sessions) Runner(id string) *Runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runnerLocked(id)
}

// Submit runs c on the session's runner. While it runs, every lookup of id
// resolves to the same runner, so a newer submission always supersedes it.
func (s *Sessions) Submit(ctx context.Context, id string, c listing.Criteria) (Result, error) {
	s.mu.Lock()
	b, ok := s.inflight[id]
	if !ok {
		b = &busyRunner{runner: s.runnerLocked(id)}
		s.inflight[id] = b
	}
	b.n++
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if b.n--; b.n == 0 {
			delete(s.inflight, id)
		}
	}()

	return b.runner.Submit(ctx, c)
}

func (s *Sessions) runnerLocked(id string) *Runner {
	if b, ok := s.inflight[id]; ok {
		if item := s.cache.Get(id); item == nil || item.Expired() || item.Value() != b.runner {
			s.cache.Set(id, b.runner, s.idle)
		} else {
			item.Extend(s.idle)
		}
		return b.runner
	}

	if item := s.cache.Get(id); item != nil && !item.Expired() {
		item.Extend(s.idle)
		return item.Value()
	}

	r := NewRunner(s.searcher, s.delay)
	s.cache.Set(id, r, s.idle)
	return r
}

// Close stops the cache's background worker.
func (s *Sessions) Close() {
	s.cache.Stop()
}
