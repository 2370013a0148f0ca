// Package logging records per-step run events in the archive database.
package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// Execer is satisfied by both *sql.DB and *sql.Tx.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// #region log-event
// LogEvent writes an event entry to the run_events table.
func LogEvent(db Execer, entry EventEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO run_events (run_id, step_index, time, kind, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Step,
		entry.Time,
		entry.Kind,
		nullIfEmpty(entry.Detail),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}
// #endregion log-event

// #region log-events
// LogEvents writes every event of a run in order.
func LogEvents(db Execer, runID string, events []Event) error {
	now := time.Now().UTC()
	for i, ev := range events {
		if err := LogEvent(db, EventEntry{RunID: runID, Event: ev, CreatedAt: now}); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}
// #endregion log-events

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
// #endregion helpers
