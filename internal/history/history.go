// Package history persists a ledger of reorder runs in a small SQLite
// database under .bralign/. The ledger is best-effort supporting
// infrastructure: the reorder pipeline itself never depends on it, and a
// ledger failure degrades to a warning.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bralign/internal/logging"
)

// Run is one recorded reorder invocation.
type Run struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"createdAt"`
	ReferencePath   string    `json:"referencePath"`
	TargetPath      string    `json:"targetPath"`
	ReferenceDigest string    `json:"referenceDigest"`
	TargetDigest    string    `json:"targetDigest"`
	ReferenceCount  int       `json:"referenceModules"`
	TargetCount     int       `json:"targetModules"`
	CommonCount     int       `json:"commonModules"`
	DriverPass      bool      `json:"driverVerified"`
	DriverLibPass   bool      `json:"driverLibVerified"`
}

// Store provides persistence for runs in a SQLite database.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// OpenStore opens or creates the history database at <dir>/history.db
func OpenStore(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "history.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if !dbExists {
		logger.Info("Creating history database", map[string]interface{}{
			"path": dbPath,
		})
		if err := store.initializeSchema(); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to initialize history schema: %w", err)
		}
	}

	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			reference_path TEXT NOT NULL,
			target_path TEXT NOT NULL,
			reference_digest TEXT,
			target_digest TEXT,
			reference_modules INTEGER NOT NULL,
			target_modules INTEGER NOT NULL,
			common_modules INTEGER NOT NULL,
			driver_pass INTEGER NOT NULL,
			driver_lib_pass INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// RecordRun inserts a run into the ledger, assigning an ID and timestamp
// when absent.
func (s *Store) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO runs (id, created_at, reference_path, target_path,
			reference_digest, target_digest, reference_modules, target_modules,
			common_modules, driver_pass, driver_lib_pass)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.conn.Exec(query,
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
		run.ReferencePath,
		run.TargetPath,
		run.ReferenceDigest,
		run.TargetDigest,
		run.ReferenceCount,
		run.TargetCount,
		run.CommonCount,
		boolToInt(run.DriverPass),
		boolToInt(run.DriverLibPass),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Debug("Recorded run", map[string]interface{}{
		"id": run.ID,
	})
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, created_at, reference_path, target_path,
			reference_digest, target_digest, reference_modules, target_modules,
			common_modules, driver_pass, driver_lib_pass
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	rows, err := s.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt string
		var driverPass, driverLibPass int

		err := rows.Scan(&run.ID, &createdAt, &run.ReferencePath, &run.TargetPath,
			&run.ReferenceDigest, &run.TargetDigest, &run.ReferenceCount,
			&run.TargetCount, &run.CommonCount, &driverPass, &driverLibPass)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		run.DriverPass = driverPass != 0
		run.DriverLibPass = driverLibPass != 0
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FileDigest returns the hex sha256 digest of a file's contents.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
