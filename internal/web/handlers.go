package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/verte-zerg/sampler/internal/event"
	"github.com/verte-zerg/sampler/internal/report"
	"github.com/verte-zerg/sampler/internal/sample"
	"github.com/verte-zerg/sampler/internal/stats"
)

type sampleResponse struct {
	N         int               `json:"n"`
	Values    []float64         `json:"values"`
	Histogram histogramResponse `json:"histogram"`
}

type histogramResponse struct {
	Title  string  `json:"title"`
	Counts []int   `json:"counts"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type reportResponse struct {
	Status string         `json:"status"`
	Report *reportPayload `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type reportPayload struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	// FormValue covers both the query string and a POST form body.
	n, err := strconv.Atoi(r.FormValue("n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "n must be an integer")
		return
	}
	if err := sess.Generate(r.Context(), n); err != nil {
		if errors.Is(err, sample.ErrInvalidCount) {
			writeError(w, http.StatusBadRequest, "n must be between 1 and 10000")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate sample")
		return
	}
	s.metrics.SamplesGenerated.Inc()
	s.metrics.EventsRecorded.WithLabelValues(event.TypeButtonPress).Inc()

	values, count := sess.Sample()
	h := sess.Histogram(stats.DefaultBins)
	writeJSON(w, http.StatusOK, sampleResponse{
		N:      count,
		Values: values,
		Histogram: histogramResponse{
			Title:  stats.Title(count),
			Counts: h.Counts,
			Min:    h.Min,
			Max:    h.Max,
		},
	})
}

func (s *Server) handleReportOpen(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	// The fetch outlives this request, so it does not run under the
	// request context; a close intent drops its result instead.
	sess.OpenReport(context.Background())
	writeReportState(w, sess.ReportState())
}

func (s *Server) handleReportState(w http.ResponseWriter, r *http.Request) {
	writeReportState(w, requestSession(r).ReportState())
}

func (s *Server) handleReportClose(w http.ResponseWriter, r *http.Request) {
	sess := requestSession(r)
	sess.CloseReport()
	writeReportState(w, sess.ReportState())
}

func writeReportState(w http.ResponseWriter, state report.State) {
	resp := reportResponse{Status: state.Status.String(), Error: state.Err}
	if state.Report != nil {
		resp.Report = &reportPayload{Total: state.Report.Total, ByType: state.Report.ByType}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logErrf("failed to encode response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
