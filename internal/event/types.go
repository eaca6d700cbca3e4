// Package event handles the SQLite usage-event log.
package event

import "time"

// Event is one recorded occurrence of a tracked action.
type Event struct {
	ID        int64
	Type      string
	Timestamp time.Time
}

// Vocabulary used by the application. The store itself accepts any
// non-empty type string; callers are responsible for consistent naming.
const (
	TypeSessionStart = "session_start"
	TypeButtonPress  = "button_press"
	TypeSessionEnd   = "session_end"
)

// AggregateReport holds on-demand aggregate counts. It is derived on
// every request and never persisted.
type AggregateReport struct {
	Total  int
	ByType map[string]int
}
