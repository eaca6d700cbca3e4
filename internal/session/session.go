// Package session wires one user session: sample generation, usage
// logging, and the report view.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/verte-zerg/sampler/internal/event"
	"github.com/verte-zerg/sampler/internal/report"
	"github.com/verte-zerg/sampler/internal/sample"
	"github.com/verte-zerg/sampler/internal/stats"
)

// Session holds the per-session state behind one presentation surface.
type Session struct {
	id      uuid.UUID
	events  *event.Recorder
	reports *report.Machine
	gen     *sample.Generator

	mu     sync.Mutex
	values []float64
	count  int
}

// New builds a Session over the shared event store.
func New(store *event.Store, gen *sample.Generator) *Session {
	return NewWithFetcher(store, store, gen)
}

// NewWithFetcher builds a Session whose report view loads through the
// given fetcher instead of the store directly.
func NewWithFetcher(store *event.Store, fetcher report.Fetcher, gen *sample.Generator) *Session {
	return &Session{
		id:      uuid.New(),
		events:  event.NewRecorder(store),
		reports: report.New(fetcher),
		gen:     gen,
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Start records the session start. Logging is best-effort and never
// fails the interaction.
func (s *Session) Start(ctx context.Context) {
	s.events.Record(ctx, event.TypeSessionStart)
}

// End records the session end.
func (s *Session) End(ctx context.Context) {
	s.events.Record(ctx, event.TypeSessionEnd)
}

// Generate draws a fresh sample of size n and records the button press.
// An invalid n returns the validation error and logs nothing.
func (s *Session) Generate(ctx context.Context, n int) error {
	values, err := s.gen.Generate(n)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values = values
	s.count = n
	s.mu.Unlock()
	s.events.Record(ctx, event.TypeButtonPress)
	return nil
}

// Sample returns the current sample and its requested size.
func (s *Session) Sample() ([]float64, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values, s.count
}

// Histogram bins the current sample for plotting.
func (s *Session) Histogram(bins int) stats.Histogram {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Bin(s.values, bins)
}

// OpenReport starts loading the aggregate report.
func (s *Session) OpenReport(ctx context.Context) {
	s.reports.Open(ctx)
}

// CloseReport closes the report view.
func (s *Session) CloseReport() {
	s.reports.Close()
}

// ReportState returns the current report view state for rendering.
func (s *Session) ReportState() report.State {
	return s.reports.State()
}
