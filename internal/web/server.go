// Package web serves the HTTP presentation surface over the shared
// sampling and event-log core.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verte-zerg/sampler/internal/event"
	"github.com/verte-zerg/sampler/internal/metrics"
	"github.com/verte-zerg/sampler/internal/report"
	"github.com/verte-zerg/sampler/internal/sample"
	"github.com/verte-zerg/sampler/internal/session"
)

const sessionCookie = "sampler_session"

type sessionKey struct{}

// Server maps cookie-scoped sessions onto the core components.
type Server struct {
	store   *event.Store
	gen     *sample.Generator
	metrics *metrics.Metrics
	router  chi.Router

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// NewServer builds the router and its metric registry.
func NewServer(store *event.Store, gen *sample.Generator) *Server {
	reg := prometheus.NewRegistry()
	s := &Server{
		store:    store,
		gen:      gen,
		metrics:  metrics.New(reg),
		sessions: map[string]*session.Session{},
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Use(s.withSession)
		r.Post("/sample", s.handleSample)
		r.Post("/report/open", s.handleReportOpen)
		r.Get("/report", s.handleReportState)
		r.Post("/report/close", s.handleReportClose)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the given port until ctx is cancelled, then
// ends all live sessions.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		logErrf("failed to shut down server: %v\n", err)
	}
	s.endSessions(context.Background())
	return nil
}

func (s *Server) endSessions(ctx context.Context) {
	s.mu.Lock()
	live := make([]*session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		live = append(live, sess)
	}
	s.sessions = map[string]*session.Session{}
	s.mu.Unlock()
	for _, sess := range live {
		sess.End(ctx)
		s.metrics.EventsRecorded.WithLabelValues(event.TypeSessionEnd).Inc()
	}
}

// withSession attaches the cookie's session to the request, creating a
// new one (and recording session_start) on first contact.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			id = cookie.Value
		}

		s.mu.Lock()
		sess, ok := s.sessions[id]
		s.mu.Unlock()
		if !ok {
			sess = s.newSession(r.Context())
			id = sess.ID().String()
			s.mu.Lock()
			s.sessions[id] = sess
			s.mu.Unlock()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func (s *Server) newSession(ctx context.Context) *session.Session {
	fetcher := &countedFetcher{store: s.store, metrics: s.metrics}
	sess := session.NewWithFetcher(s.store, fetcher, s.gen)
	sess.Start(ctx)
	s.metrics.EventsRecorded.WithLabelValues(event.TypeSessionStart).Inc()
	return sess
}

func requestSession(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey{}).(*session.Session)
	return sess
}

// countedFetcher counts report fetch outcomes around the store.
type countedFetcher struct {
	store   *event.Store
	metrics *metrics.Metrics
}

func (f *countedFetcher) AggregateCounts(ctx context.Context) (event.AggregateReport, error) {
	result, err := f.store.AggregateCounts(ctx)
	if err != nil {
		f.metrics.ReportFetches.WithLabelValues(report.StatusError.String()).Inc()
		return result, err
	}
	f.metrics.ReportFetches.WithLabelValues(report.StatusLoaded.String()).Inc()
	return result, nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
