// Package crawler defines the uniform task contract the source
// adapters satisfy, and the manager that runs them.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IshaanNene/DigestGoat/internal/types"
)

// Crawler is one registered source: a named, independently runnable
// unit. Implementations own their client and sink handles and share no
// mutable state with each other.
type Crawler interface {
	// Run executes the source's full fetch-parse-render-upload pass.
	Run(ctx context.Context) error

	// Name returns a stable human-readable identifier.
	Name() string
}

// State represents the manager's current lifecycle state.
type State int32

const (
	StateIdle    State = 0
	StateRunning State = 1
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Result is one crawler's outcome within a run.
type Result struct {
	Name string
	Err  error
}

// Outcome aggregates a full run.
type Outcome struct {
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// Total returns the number of crawlers that ran.
func (o Outcome) Total() int { return o.Succeeded + o.Failed }

// Manager holds the registered crawlers and runs them concurrently,
// isolating failures per crawler.
type Manager struct {
	crawlers []Crawler
	state    atomic.Int32
	logger   *slog.Logger
}

// NewManager creates an empty Manager.
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger: logger.With("component", "crawler_manager"),
	}
}

// Register adds a crawler. Returns the manager for chaining.
func (m *Manager) Register(c Crawler) *Manager {
	m.crawlers = append(m.crawlers, c)
	m.logger.Debug("crawler registered", "name", c.Name(), "total", len(m.crawlers))
	return m
}

// Len returns the number of registered crawlers.
func (m *Manager) Len() int { return len(m.crawlers) }

// Names returns the registered crawler names in registration order.
func (m *Manager) Names() []string {
	names := make([]string, len(m.crawlers))
	for i, c := range m.crawlers {
		names[i] = c.Name()
	}
	return names
}

// RunAll executes every registered crawler concurrently and waits for
// all of them to finish. One crawler's failure never prevents the
// others from running or being counted; results are tallied in
// completion order. The returned error is non-nil iff at least one
// crawler failed, and carries the success/failure counts.
func (m *Manager) RunAll(ctx context.Context) (Outcome, error) {
	if !m.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return Outcome{}, types.ErrAlreadyRunning
	}
	defer m.state.Store(int32(StateIdle))

	start := time.Now()
	m.logger.Info("run starting", "crawlers", len(m.crawlers))

	results := make(chan Result, len(m.crawlers))
	var wg sync.WaitGroup
	for _, c := range m.crawlers {
		wg.Add(1)
		go func(c Crawler) {
			defer wg.Done()
			results <- Result{Name: c.Name(), Err: c.Run(ctx)}
		}(c)
	}
	wg.Wait()
	close(results)

	var outcome Outcome
	for res := range results {
		if res.Err != nil {
			outcome.Failed++
			m.logger.Warn("crawler failed", "name", res.Name, "error", res.Err)
			continue
		}
		outcome.Succeeded++
		m.logger.Info("crawler completed", "name", res.Name)
	}
	outcome.Elapsed = time.Since(start)

	m.logger.Info("run finished",
		"succeeded", outcome.Succeeded,
		"failed", outcome.Failed,
		"elapsed", outcome.Elapsed,
	)

	if outcome.Failed > 0 {
		return outcome, fmt.Errorf("%d of %d crawlers failed (succeeded=%d)",
			outcome.Failed, outcome.Total(), outcome.Succeeded)
	}
	return outcome, nil
}

// CurrentState returns the manager's lifecycle state.
func (m *Manager) CurrentState() State {
	return State(m.state.Load())
}
