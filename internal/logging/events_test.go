package logging

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// #region helpers
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1) // each :memory: connection is a separate database
	_, err = db.Exec(`CREATE TABLE run_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id      TEXT NOT NULL,
		step_index  INTEGER NOT NULL,
		time        REAL NOT NULL,
		kind        TEXT NOT NULL,
		detail      TEXT,
		created_at  TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

// #endregion helpers

// #region log-event-tests
func TestLogEvent_Success(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	entry := EventEntry{
		RunID:     "r1",
		Event:     Event{Step: 3, Time: 0.3, Kind: KindEscape, Detail: "streak 3"},
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := LogEvent(db, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM run_events").Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}

	var runID, kind string
	var step int
	db.QueryRow("SELECT run_id, step_index, kind FROM run_events").Scan(&runID, &step, &kind)
	if runID != "r1" || step != 3 || kind != KindEscape {
		t.Errorf("unexpected row %q %d %q", runID, step, kind)
	}
}

func TestLogEvent_ZeroCreatedAt(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	before := time.Now().UTC()
	if err := LogEvent(db, EventEntry{RunID: "r2", Event: Event{Kind: KindOlfactoryEscape}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var createdAtStr string
	db.QueryRow("SELECT created_at FROM run_events").Scan(&createdAtStr)
	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		t.Fatalf("parse created_at: %v", err)
	}
	if createdAt.Before(before) {
		t.Error("expected auto-filled created_at to be >= test start time")
	}
}

func TestLogEvent_EmptyDetailIsNull(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	if err := LogEvent(db, EventEntry{RunID: "r3", Event: Event{Kind: KindEscape}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var detail sql.NullString
	db.QueryRow("SELECT detail FROM run_events").Scan(&detail)
	if detail.Valid {
		t.Error("expected NULL detail for empty string")
	}
}

func TestLogEvent_Error(t *testing.T) {
	db := setupDB(t)
	db.Close() // close to force error

	if err := LogEvent(db, EventEntry{RunID: "r4", Event: Event{Kind: KindEscape}}); err == nil {
		t.Fatal("expected error on closed db")
	}
}

func TestLogEvents_InTransaction(t *testing.T) {
	db := setupDB(t)
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	events := []Event{
		{Step: 2, Time: 0.2, Kind: KindConsumptionSuppressed, Detail: "milk"},
		{Step: 3, Time: 0.3, Kind: KindEscape},
	}
	if err := LogEvents(tx, "r5", events); err != nil {
		t.Fatalf("LogEvents: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	var count int
	db.QueryRow("SELECT COUNT(*) FROM run_events WHERE run_id = 'r5'").Scan(&count)
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}
}

// #endregion log-event-tests

// #region null-if-empty-tests
func TestNullIfEmpty(t *testing.T) {
	if nullIfEmpty("") != nil {
		t.Error("expected nil for empty string")
	}
	if nullIfEmpty("hello") != "hello" {
		t.Error("expected passthrough for non-empty string")
	}
}

// #endregion null-if-empty-tests
