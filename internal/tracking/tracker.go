package tracking

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Tracker stores batch texturing history in SQLite.
type Tracker struct {
	db *sql.DB
}

// NewTracker opens or creates a SQLite database for history.
func NewTracker(dbPath string) (*Tracker, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Batch workers record concurrently; a single connection serialises writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Tracker{db: db}, nil
}

// Record stores the outcome of one mesh.
func (t *Tracker) Record(r Record) error {
	if _, err := t.db.Exec(insertSQL, r.RunID, r.Mesh, r.Preset, r.Status, r.Attempts, r.ExitCode, r.DurationMs); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	// Cleanup old records
	t.db.Exec(cleanupSQL)
	return nil
}

// GetSummary returns aggregate history stats.
func (t *Tracker) GetSummary() (*Summary, error) {
	var s Summary
	err := t.db.QueryRow(summarySQL).Scan(&s.TotalRuns, &s.TotalMeshes, &s.Succeeded, &s.Failed, &s.TotalTimeMs)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &s, nil
}

// GetRecent returns the last n records, newest first.
func (t *Tracker) GetRecent(n int) ([]Record, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := t.db.Query(recentSQL, n)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	return scanRecords(rows)
}

// GetRun returns the records of one batch run in insertion order.
func (t *Tracker) GetRun(runID string) ([]Record, error) {
	rows, err := t.db.Query(byRunSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.RunID, &r.Mesh, &r.Preset, &r.Status, &r.Attempts, &r.ExitCode, &r.DurationMs, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// DBPath resolves the history database path.
func DBPath(configPath string) string {
	if p := os.Getenv("TEXSCRIPT_DB_PATH"); p != "" {
		return p
	}
	if configPath != "" {
		return configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "texscript", "history.db")
}
