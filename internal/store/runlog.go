package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// RunEntry is one row of the refresh run history.
type RunEntry struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Regions      []string   `json:"regions,omitempty"`
	ModelCount   int        `json:"model_count"`
	ProfileCount int        `json:"profile_count"`
	Error        string     `json:"error,omitempty"`
}

// Run statuses.
const (
	RunRunning  = "running"
	RunComplete = "complete"
	RunFailed   = "failed"
)

// RunLog records refresh runs in a local SQLite database.
type RunLog struct {
	db *sql.DB
}

// OpenRunLog opens (creating if needed) the run log database at path and
// ensures the schema is current.
func OpenRunLog(ctx context.Context, path string) (*RunLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "runlog: open %s", path)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "runlog: exec %s", pragma)
		}
	}

	const migration = `
CREATE TABLE IF NOT EXISTS refresh_runs (
	id            TEXT PRIMARY KEY,
	status        TEXT NOT NULL DEFAULT 'running',
	started_at    DATETIME NOT NULL,
	completed_at  DATETIME,
	regions       TEXT,
	model_count   INTEGER NOT NULL DEFAULT 0,
	profile_count INTEGER NOT NULL DEFAULT 0,
	error         TEXT
);

CREATE INDEX IF NOT EXISTS idx_refresh_runs_started_at ON refresh_runs(started_at);
`
	if _, err := db.ExecContext(ctx, migration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "runlog: migrate")
	}

	return &RunLog{db: db}, nil
}

// Close releases the underlying database handle.
func (l *RunLog) Close() error {
	return l.db.Close()
}

// Start records the beginning of a refresh run and returns its ID.
func (l *RunLog) Start(ctx context.Context) (string, error) {
	id := uuid.New().String()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO refresh_runs (id, status, started_at) VALUES (?, ?, ?)`,
		id, RunRunning, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "runlog: start run")
	}
	return id, nil
}

// Complete marks a run as successful with its result counts.
func (l *RunLog) Complete(ctx context.Context, runID string, regions []string, modelCount, profileCount int) error {
	regionsJSON, err := json.Marshal(regions)
	if err != nil {
		return eris.Wrap(err, "runlog: marshal regions")
	}

	_, err = l.db.ExecContext(ctx,
		`UPDATE refresh_runs
		 SET status = ?, completed_at = ?, regions = ?, model_count = ?, profile_count = ?
		 WHERE id = ?`,
		RunComplete, time.Now().UTC(), string(regionsJSON), modelCount, profileCount, runID,
	)
	if err != nil {
		return eris.Wrapf(err, "runlog: complete run %s", runID)
	}
	return nil
}

// Fail marks a run as failed with an error message.
func (l *RunLog) Fail(ctx context.Context, runID string, errMsg string) error {
	_, err := l.db.ExecContext(ctx,
		`UPDATE refresh_runs SET status = ?, completed_at = ?, error = ? WHERE id = ?`,
		RunFailed, time.Now().UTC(), errMsg, runID,
	)
	if err != nil {
		return eris.Wrapf(err, "runlog: fail run %s", runID)
	}
	return nil
}

// ListAll returns all runs, most recent first.
func (l *RunLog) ListAll(ctx context.Context) ([]RunEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, status, started_at, completed_at, regions, model_count, profile_count, error
		 FROM refresh_runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: list all")
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var completedAt sql.NullTime
		var regionsJSON, errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.Status, &e.StartedAt, &completedAt, &regionsJSON, &e.ModelCount, &e.ProfileCount, &errMsg); err != nil {
			return nil, eris.Wrap(err, "runlog: scan entry")
		}
		if completedAt.Valid {
			t := completedAt.Time
			e.CompletedAt = &t
		}
		if regionsJSON.Valid && regionsJSON.String != "" {
			_ = json.Unmarshal([]byte(regionsJSON.String), &e.Regions)
		}
		if errMsg.Valid {
			e.Error = errMsg.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
