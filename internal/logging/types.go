package logging

import "time"

// #region event-kinds
// Event kinds emitted by the driver.
const (
	KindEscape                = "escape"
	KindOlfactoryEscape       = "olfactory_escape"
	KindConsumptionSuppressed = "consumption_suppressed"
)
// #endregion event-kinds

// #region event
// Event is a per-step diagnostic raised while a run is in progress.
type Event struct {
	Step   int     `json:"step"`
	Time   float64 `json:"time"`
	Kind   string  `json:"kind"`
	Detail string  `json:"detail,omitempty"`
}

// EventEntry is a single row in the run_events table.
type EventEntry struct {
	RunID     string
	Event
	CreatedAt time.Time
}
// #endregion event
