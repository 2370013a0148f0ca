// Package archive stores finished simulation runs in SQLite.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielpatrickdp/homunculus/internal/feedback"
	"github.com/danielpatrickdp/homunculus/internal/logging"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	config_json  TEXT NOT NULL,
	steps        INTEGER NOT NULL,
	retained     INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_steps (
	run_id             TEXT NOT NULL,
	step_index         INTEGER NOT NULL,
	time               REAL NOT NULL,
	visual_language    REAL NOT NULL,
	auditory_language  REAL NOT NULL,
	olfactory          REAL NOT NULL,
	feedback_intensity REAL NOT NULL,
	emotion_json       TEXT NOT NULL,
	PRIMARY KEY (run_id, step_index),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS run_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	step_index  INTEGER NOT NULL,
	time        REAL NOT NULL,
	kind        TEXT NOT NULL,
	detail      TEXT,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);
`
// #endregion schema

// #region store-struct
// Store manages archived runs in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region save-run
// SaveRun archives a finished run with its series and events in one transaction.
func (s *Store) SaveRun(configJSON string, steps int, series *feedback.Series, events []logging.Event) (RunRecord, error) {
	rec := RunRecord{
		RunID:      uuid.New().String(),
		ConfigJSON: configJSON,
		Steps:      steps,
		Retained:   series.Len(),
		CreatedAt:  time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return RunRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, config_json, steps, retained, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.RunID, rec.ConfigJSON, rec.Steps, rec.Retained, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}

	for _, r := range series.Records {
		emotionJSON, err := json.Marshal(r.Emotion)
		if err != nil {
			return RunRecord{}, fmt.Errorf("marshal emotion: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO run_steps (run_id, step_index, time, visual_language, auditory_language,
			 olfactory, feedback_intensity, emotion_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.RunID, r.Step, r.Time, r.VisualLanguage, r.AuditoryLanguage,
			r.OlfactoryDiscomfort, r.FeedbackIntensity, string(emotionJSON),
		)
		if err != nil {
			return RunRecord{}, fmt.Errorf("insert step %d: %w", r.Step, err)
		}
	}

	if err := logging.LogEvents(tx, rec.RunID, events); err != nil {
		return RunRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return RunRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}
// #endregion save-run

// #region get-run
// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (RunRecord, error) {
	var rec RunRecord
	var createdStr string
	err := s.db.QueryRow(
		`SELECT run_id, config_json, steps, retained, created_at FROM runs WHERE run_id = ?`, id,
	).Scan(&rec.RunID, &rec.ConfigJSON, &rec.Steps, &rec.Retained, &createdStr)
	if err != nil {
		return RunRecord{}, fmt.Errorf("get run %s: %w", id, err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}
// #endregion get-run

// #region list-runs
// ListRuns returns the most recent runs, newest first (insertion order).
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, config_json, steps, retained, created_at
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var createdStr string
		if err := rows.Scan(&rec.RunID, &rec.ConfigJSON, &rec.Steps, &rec.Retained, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}
// #endregion list-runs

// #region load-series
// LoadSeries rebuilds the time series of a run in step order.
func (s *Store) LoadSeries(runID string) (*feedback.Series, error) {
	if _, err := s.GetRun(runID); err != nil {
		return nil, err
	}
	rows, err := s.db.Query(
		`SELECT step_index, time, visual_language, auditory_language, olfactory,
		 feedback_intensity, emotion_json
		 FROM run_steps WHERE run_id = ? ORDER BY step_index`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	defer rows.Close()

	series := &feedback.Series{}
	for rows.Next() {
		var r feedback.Record
		var emotionJSON string
		if err := rows.Scan(&r.Step, &r.Time, &r.VisualLanguage, &r.AuditoryLanguage,
			&r.OlfactoryDiscomfort, &r.FeedbackIntensity, &emotionJSON); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		if err := json.Unmarshal([]byte(emotionJSON), &r.Emotion); err != nil {
			return nil, fmt.Errorf("unmarshal emotion at step %d: %w", r.Step, err)
		}
		series.Append(r)
	}
	return series, rows.Err()
}
// #endregion load-series

// #region events
// Events returns the diagnostic events of a run in the order they were raised.
func (s *Store) Events(runID string) ([]logging.Event, error) {
	rows, err := s.db.Query(
		`SELECT step_index, time, kind, detail FROM run_events WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	defer rows.Close()

	var events []logging.Event
	for rows.Next() {
		var ev logging.Event
		var detail sql.NullString
		if err := rows.Scan(&ev.Step, &ev.Time, &ev.Kind, &detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if detail.Valid {
			ev.Detail = detail.String
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
// #endregion events
