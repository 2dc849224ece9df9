package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/eringen/aforo/occupancy"
)

// SQLiteStore keeps snapshot batches in a SQLite database, one row per
// batch with the readings as a JSON array.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
// It is the import path; loads go through OpenSQLiteReadOnly.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenSQLiteReadOnly opens an existing database at path for reading. A
// missing file is an error; nothing is created or written.
func OpenSQLiteReadOnly(path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT NOT NULL UNIQUE,
    data TEXT NOT NULL
);
`)
	return err
}

// Batches returns every stored batch in insertion order.
func (s *SQLiteStore) Batches(ctx context.Context) ([]occupancy.Batch, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT timestamp, data FROM snapshots ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []occupancy.Batch
	for rows.Next() {
		var ts, data string
		if err := rows.Scan(&ts, &data); err != nil {
			return nil, err
		}
		b := occupancy.Batch{Timestamp: ts}
		if err := json.Unmarshal([]byte(data), &b.Data); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", ts, err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// Import appends batches in one transaction. Batches whose timestamp is
// already stored are skipped. It returns the number of rows inserted.
func (s *SQLiteStore) Import(ctx context.Context, batches []occupancy.Batch) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO snapshots (timestamp, data) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, b := range batches {
		data, err := json.Marshal(b.Data)
		if err != nil {
			return 0, err
		}
		res, err := stmt.ExecContext(ctx, b.Timestamp, string(data))
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", b.Timestamp, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Count returns the number of stored batches.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}
