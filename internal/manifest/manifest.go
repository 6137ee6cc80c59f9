// Package manifest keeps a small sqlite record of conversion runs: which
// files were written and which assets were copied. The doctor command
// reads it for stats; conversion works fine without it.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// FileName is the manifest database inside the output directory.
const FileName = ".chatgpt2md.db"

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS runs (
    run_id        TEXT PRIMARY KEY,
    started_at    TEXT NOT NULL,
    finished_at   TEXT NOT NULL DEFAULT '',
    input_path    TEXT NOT NULL DEFAULT '',
    output_dir    TEXT NOT NULL DEFAULT '',
    conversations INTEGER NOT NULL DEFAULT 0,
    assets        INTEGER NOT NULL DEFAULT 0,
    errors        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS files (
    run_id TEXT NOT NULL,
    path   TEXT NOT NULL,
    title  TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, path)
);

CREATE TABLE IF NOT EXISTS assets (
    run_id TEXT NOT NULL,
    path   TEXT NOT NULL,
    PRIMARY KEY (run_id, path)
);
`

const timeLayout = "2006-01-02T15:04:05Z"

type DB struct {
	db *sql.DB
}

// Open creates or opens the manifest database at dbPath.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create manifest dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init manifest schema: %w", err)
	}
	return &DB{db: db}, nil
}

// OpenAt opens the manifest inside an output directory.
func OpenAt(outputDir string) (*DB, error) {
	return Open(filepath.Join(outputDir, FileName))
}

func (d *DB) Close() error {
	return d.db.Close()
}

// BeginRun records a new run and returns its id.
func (d *DB) BeginRun(inputPath, outputDir string) (string, error) {
	id := uuid.NewString()
	_, err := d.db.Exec(
		"INSERT INTO runs (run_id, started_at, input_path, output_dir) VALUES (?, ?, ?, ?)",
		id, time.Now().UTC().Format(timeLayout), inputPath, outputDir,
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's end time and final counts.
func (d *DB) FinishRun(runID string, conversations, assets, errors int) error {
	_, err := d.db.Exec(
		"UPDATE runs SET finished_at = ?, conversations = ?, assets = ?, errors = ? WHERE run_id = ?",
		time.Now().UTC().Format(timeLayout), conversations, assets, errors, runID,
	)
	return err
}

// RecordFile notes a written markdown file.
func (d *DB) RecordFile(runID, path, title string) error {
	_, err := d.db.Exec(
		"INSERT OR REPLACE INTO files (run_id, path, title) VALUES (?, ?, ?)",
		runID, path, title,
	)
	return err
}

// RecordAsset notes a copied attachment.
func (d *DB) RecordAsset(runID, path string) error {
	_, err := d.db.Exec(
		"INSERT OR REPLACE INTO assets (run_id, path) VALUES (?, ?)",
		runID, path,
	)
	return err
}

func (d *DB) RunCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n)
	return n, err
}

func (d *DB) FileCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(DISTINCT path) FROM files").Scan(&n)
	return n, err
}

func (d *DB) AssetCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(DISTINCT path) FROM assets").Scan(&n)
	return n, err
}

// Run is one recorded conversion run.
type Run struct {
	ID            string
	StartedAt     string
	FinishedAt    string
	InputPath     string
	OutputDir     string
	Conversations int
	Assets        int
	Errors        int
}

// LastRun returns the most recent run, or nil if none exist.
func (d *DB) LastRun() (*Run, error) {
	var r Run
	err := d.db.QueryRow(
		`SELECT run_id, started_at, finished_at, input_path, output_dir, conversations, assets, errors
		 FROM runs ORDER BY started_at DESC LIMIT 1`,
	).Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.InputPath, &r.OutputDir, &r.Conversations, &r.Assets, &r.Errors)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}
