// Package report coordinates the aggregate-report view: one in-flight
// fetch at a time, tracked through an explicit state struct and
// cancelled cooperatively via request tokens.
package report

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/verte-zerg/sampler/internal/event"
)

// Status is the lifecycle position of one report-view interaction.
type Status int

// Report view statuses.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
	StatusCancelled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// fetchFailedMessage is the only failure text shown to a viewer; raw
// store errors never reach the presentation layer.
const fetchFailedMessage = "failed to load report"

// Fetcher computes aggregate counts for the report view.
type Fetcher interface {
	AggregateCounts(ctx context.Context) (event.AggregateReport, error)
}

// State is a snapshot for rendering. Report is set only when loaded,
// Err only when errored.
type State struct {
	Status Status
	Report *event.AggregateReport
	Err    string
}

// Machine mediates one user-initiated report load against a Fetcher.
//
// Each Open mints a fresh request token and launches exactly one fetch
// goroutine. The resolution handler compares tokens before touching any
// state, so a close processed ahead of a resolution always wins, and a
// stale request can never affect a newer one. Cancellation is advisory:
// the underlying fetch is not interrupted, its result is dropped.
type Machine struct {
	fetcher Fetcher

	mu     sync.Mutex
	status Status
	report *event.AggregateReport
	errMsg string
	token  uuid.UUID
	done   chan struct{}
}

// New returns an idle Machine backed by fetcher.
func New(fetcher Fetcher) *Machine {
	return &Machine{fetcher: fetcher}
}

// Open starts loading the report. A duplicate Open while a fetch is
// already in flight is a no-op.
func (m *Machine) Open(ctx context.Context) {
	m.mu.Lock()
	if m.status == StatusLoading {
		m.mu.Unlock()
		return
	}
	token := uuid.New()
	done := make(chan struct{})
	m.token = token
	m.status = StatusLoading
	m.report = nil
	m.errMsg = ""
	m.done = done
	m.mu.Unlock()

	go func() {
		defer close(done)
		result, err := m.fetcher.AggregateCounts(ctx)
		m.resolve(token, result, err)
	}()
}

// Close closes the report view. While loading it marks the request
// cancelled so the in-flight resolution is discarded; otherwise it
// returns to idle and drops any result.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusLoading {
		m.status = StatusCancelled
	} else {
		m.status = StatusIdle
	}
	m.report = nil
	m.errMsg = ""
}

// State returns a snapshot of the current view state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	state := State{Status: m.status, Err: m.errMsg}
	if m.report != nil {
		result := *m.report
		state.Report = &result
	}
	return state
}

func (m *Machine) resolve(token uuid.UUID, result event.AggregateReport, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// Liveness check before any mutation: stale tokens and closed views
	// drop the resolution entirely.
	if token != m.token || m.status != StatusLoading {
		return
	}
	if err != nil {
		m.status = StatusError
		m.errMsg = fetchFailedMessage
		return
	}
	m.status = StatusLoaded
	m.report = &result
}
