package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"chuipos/pkg/logger"
)

// ResultHandler receives search results. A failed search is reported with
// err set and no products. It is called with the searcher's lock held and
// must not call back into the Searcher.
type ResultHandler func(query string, products []Product, err error)

// Searcher debounces product searches typed into one search field.
// A new query supersedes and cancels whatever search is pending or in flight.
type Searcher struct {
	svc      *Service
	delay    time.Duration
	onResult ResultHandler

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSearcher creates a searcher that waits delay after the last keystroke.
func NewSearcher(svc *Service, delay time.Duration, onResult ResultHandler) *Searcher {
	return &Searcher{
		svc:      svc,
		delay:    delay,
		onResult: onResult,
	}
}

// Search schedules a search for query. A blank query clears results at once.
func (s *Searcher) Search(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.seq++

	query = strings.TrimSpace(query)
	if query == "" {
		s.onResult(query, nil, nil)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	seq := s.seq

	s.wg.Add(1)
	go s.run(ctx, seq, query)
}

// Cancel drops any pending or in-flight search without reporting it.
func (s *Searcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.seq++
}

// Wait blocks until every started search goroutine has returned.
func (s *Searcher) Wait() {
	s.wg.Wait()
}

func (s *Searcher) run(ctx context.Context, seq uint64, query string) {
	defer s.wg.Done()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	products, err := s.svc.Search(ctx, query)
	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return
	}
	if err != nil {
		logger.Warn(ctx, "product search failed", "query", query, "error", err)
		products = nil
	}
	s.onResult(query, products, err)
}

func (s *Searcher) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
