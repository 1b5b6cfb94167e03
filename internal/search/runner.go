package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/evcraddock/estate/internal/listing"
)

// ErrSuperseded is returned by Submit when a newer submission started on the
// same runner before this one finished.
var ErrSuperseded = errors.New("search superseded by a newer request")

// Result is the outcome of one submission.
type Result struct {
	Seq      uint64
	Criteria listing.Criteria
	Listings []*listing.Listing
}

// Runner serializes the searches of one session. Each submission waits out
// the configured latency before filtering; starting a new submission cancels
// the previous one, so only the latest criteria ever produce a result.
type Runner struct {
	searcher Searcher
	delay    time.Duration

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewRunner creates a runner. A zero delay filters immediately.
func NewRunner(searcher Searcher, delay time.Duration) *Runner {
	return &Runner{searcher: searcher, delay: delay}
}

// Submit runs a search for c. It returns ErrSuperseded if another Submit
// began before this one completed, and ctx.Err() if ctx ends first.
func (r *Runner) Submit(ctx context.Context, c listing.Criteria) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.mu.Lock()
	r.seq++
	seq := r.seq
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	r.mu.Unlock()

	defer r.release(seq)

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			if !r.isCurrent(seq) {
				return Result{}, ErrSuperseded
			}
			return Result{}, ctx.Err()
		case <-timer.C:
		}
	}

	listings := r.searcher.Search(ctx, c)
	if !r.isCurrent(seq) {
		return Result{}, ErrSuperseded
	}

	return Result{Seq: seq, Criteria: c, Listings: listings}, nil
}

// Latest returns the sequence number of the most recent submission.
func (r *Runner) Latest() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

func (r *Runner) isCurrent(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq == seq
}

// release drops the cancel func of a finished submission if no newer one
// replaced it.
func (r *Runner) release(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seq == seq {
		r.cancel = nil
	}
}
