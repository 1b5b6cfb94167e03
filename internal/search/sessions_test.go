package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/estate/internal/listing"
)

func TestSessionsReuseRunner(t *testing.T) {
	s := NewSessions(testSearcher(t), 0, time.Minute)
	defer s.Close()

	a := s.Runner("a")
	if s.Runner("a") != a {
		t.Error("same session id returned a different runner")
	}
	if s.Runner("b") == a {
		t.Error("different session ids share a runner")
	}
}

func TestSessionsRunnerSearches(t *testing.T) {
	s := NewSessions(testSearcher(t), 0, 0)
	defer s.Close()

	res, err := s.Runner("x").Submit(context.Background(), listing.Criteria{Query: "denver"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := ids(res.Listings); len(got) != 1 || got[0] != "10" {
		t.Errorf("listings = %v, want [10]", got)
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == b {
		t.Error("session ids should be unique")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("session id %q is not a uuid: %v", a, err)
	}
}

func TestSessionsSubmit(t *testing.T) {
	s := NewSessions(testSearcher(t), 0, time.Minute)
	defer s.Close()

	res, err := s.Submit(context.Background(), "x", listing.Criteria{Query: "boston"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := ids(res.Listings); len(got) != 1 || got[0] != "9" {
		t.Errorf("listings = %v, want [9]", got)
	}

	s.mu.Lock()
	n := len(s.inflight)
	s.mu.Unlock()
	if n != 0 {
		t.Errorf("%d runners still marked busy", n)
	}
}

func TestSessionsKeepBusyRunnerAfterExpiry(t *testing.T) {
	searcher := newBlockingSearcher(testSearcher(t))
	s := NewSessions(searcher, 0, time.Millisecond)
	defer s.Close()

	first := make(chan submitResult, 1)
	go func() {
		res, err := s.Submit(context.Background(), "a", listing.Criteria{Query: "chicago"})
		first <- submitResult{res, err}
	}()
	<-searcher.started

	// The idle timeout passes while the first search is still running.
	time.Sleep(10 * time.Millisecond)

	res, err := s.Submit(context.Background(), "a", listing.Criteria{Query: "denver"})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if got := ids(res.Listings); len(got) != 1 || got[0] != "10" {
		t.Errorf("listings = %v, want [10]", got)
	}

	close(searcher.release)
	if r := <-first; !errors.Is(r.err, ErrSuperseded) {
		t.Errorf("first submit error = %v, want ErrSuperseded", r.err)
	}
}
