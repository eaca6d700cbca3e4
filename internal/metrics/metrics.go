// Package metrics holds Prometheus instrumentation for the HTTP surface.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts core operations for the /metrics endpoint.
type Metrics struct {
	SamplesGenerated prometheus.Counter
	EventsRecorded   *prometheus.CounterVec
	ReportFetches    *prometheus.CounterVec
}

// New builds the metric set and registers it with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SamplesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sampler",
			Name:      "samples_generated_total",
			Help:      "Number of samples generated",
		}),
		EventsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sampler",
			Name:      "events_recorded_total",
			Help:      "Usage events recorded, by event type",
		}, []string{"event_type"}),
		ReportFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sampler",
			Name:      "report_fetches_total",
			Help:      "Report fetches started, by final status",
		}, []string{"status"}),
	}
	reg.MustRegister(m.SamplesGenerated, m.EventsRecorded, m.ReportFetches)
	return m
}
