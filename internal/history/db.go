package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mkobayashi/webwords/internal/model"
)

// maxStoredWords caps how many top-ranked words are stored per run.
const maxStoredWords = 100

// ErrDatabaseNotFound is returned when the database file does not exist
// and creation was not requested.
var ErrDatabaseNotFound = errors.New("history database not found")

// DB provides SQLite-based storage for crawl run history.
//
// Design decision: One database file for all runs rather than one per
// seed keeps listing and cross-run queries trivial and makes backup a
// single-file operation.
type DB struct {
	db     *sql.DB
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in the given directory.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, "webwords.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; keep the pool at a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	h := &DB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := h.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return h, nil
}

// Close closes the database connection.
func (h *DB) Close() error {
	return h.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (h *DB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		pages_fetched INTEGER NOT NULL,
		pages_failed INTEGER NOT NULL,
		unique_words INTEGER NOT NULL,
		email_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS run_words (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		rank INTEGER NOT NULL,
		word TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (run_id, rank)
	);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// Run is a stored run summary.
type Run struct {
	ID           int64
	Seed         string
	StartedAt    time.Time
	Elapsed      time.Duration
	PagesFetched int
	PagesFailed  int
	UniqueWords  int
	EmailCount   int
}

// SaveRun stores a crawl result summary and its top-ranked words.
func (h *DB) SaveRun(ctx context.Context, result *model.CrawlResult) (int64, error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (seed, started_at, elapsed_ms, pages_fetched, pages_failed, unique_words, email_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Seed,
		result.StartedAt.UTC(),
		result.Elapsed.Milliseconds(),
		result.PagesFetched,
		result.PagesFailed(),
		result.UniqueWords(),
		len(result.Emails),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	words := result.Words
	if len(words) > maxStoredWords {
		words = words[:maxStoredWords]
	}
	for i, rw := range words {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_words (run_id, rank, word, count) VALUES (?, ?, ?, ?)`,
			runID, i+1, rw.Word, rw.Count,
		); err != nil {
			return 0, fmt.Errorf("failed to insert word: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return runID, nil
}

// ListRuns returns stored runs, newest first, up to limit entries.
// A limit of 0 returns all runs.
func (h *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, seed, started_at, elapsed_ms, pages_fetched, pages_failed, unique_words, email_count
	          FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var elapsedMS int64
		if err := rows.Scan(&r.ID, &r.Seed, &r.StartedAt, &elapsedMS,
			&r.PagesFetched, &r.PagesFailed, &r.UniqueWords, &r.EmailCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// TopWords returns the stored top-ranked words for a run, in rank order.
func (h *DB) TopWords(ctx context.Context, runID int64) ([]model.RankedWord, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT word, count FROM run_words WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []model.RankedWord
	for rows.Next() {
		var rw model.RankedWord
		if err := rows.Scan(&rw.Word, &rw.Count); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, rw)
	}
	return words, rows.Err()
}
