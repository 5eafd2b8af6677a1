package tracking

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	timestamp DATETIME DEFAULT (datetime('now')),
	mesh TEXT NOT NULL,
	preset TEXT NOT NULL,
	status TEXT NOT NULL,
	attempts INTEGER NOT NULL,
	exit_code INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_run_id ON runs(run_id);
`

const cleanupSQL = `DELETE FROM runs WHERE timestamp < datetime('now', '-90 days');`

const insertSQL = `
INSERT INTO runs (run_id, mesh, preset, status, attempts, exit_code, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?);
`

const summarySQL = `
SELECT
	COUNT(DISTINCT run_id) as total_runs,
	COUNT(*) as total_meshes,
	COALESCE(SUM(CASE WHEN status = 'ok' THEN 1 ELSE 0 END), 0) as succeeded,
	COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) as failed,
	COALESCE(SUM(duration_ms), 0) as total_time_ms
FROM runs;
`

const recentSQL = `
SELECT run_id, mesh, preset, status, attempts, exit_code, duration_ms, timestamp
FROM runs
ORDER BY id DESC
LIMIT ?;
`

const byRunSQL = `
SELECT run_id, mesh, preset, status, attempts, exit_code, duration_ms, timestamp
FROM runs
WHERE run_id = ?
ORDER BY id;
`

// Summary holds aggregate history stats.
type Summary struct {
	TotalRuns   int   `json:"total_runs"`
	TotalMeshes int   `json:"total_meshes"`
	Succeeded   int   `json:"succeeded"`
	Failed      int   `json:"failed"`
	TotalTimeMs int64 `json:"total_time_ms"`
}

// Record is a single textured mesh.
type Record struct {
	RunID      string `json:"run_id"`
	Mesh       string `json:"mesh"`
	Preset     string `json:"preset"`
	Status     string `json:"status"`
	Attempts   int    `json:"attempts"`
	ExitCode   int    `json:"exit_code"`
	DurationMs int64  `json:"duration_ms"`
	Timestamp  string `json:"timestamp"`
}
