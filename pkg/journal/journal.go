// Package journal keeps a local record of successful uploads in SQLite.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"filedrop/pkg/models"
)

// Schema defines the journal table.
const Schema = `
CREATE TABLE IF NOT EXISTS uploads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invocation_id TEXT NOT NULL,
    file_name TEXT NOT NULL,
    size INTEGER NOT NULL,
    remote_id TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_uploads_invocation ON uploads(invocation_id);
`

// Store manages upload records in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a journal store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}

	ctx := context.Background()

	// Enable WAL mode for better concurrency
	if _, err := database.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrDatabaseError, err)
	}

	store := &Store{db: database}
	if err := store.Initialize(); err != nil {
		_ = database.Close()
		return nil, err
	}

	return store, nil
}

// Initialize creates the database schema.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(context.Background(), Schema); err != nil {
		return fmt.Errorf("%w: failed to initialize schema: %w", ErrDatabaseError, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records one successful upload and returns the stored row.
func (s *Store) Append(record models.UploadRecord) (models.UploadRecord, error) {
	if record.InvocationID == "" || record.RemoteID == "" {
		return models.UploadRecord{}, ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result, err := s.db.ExecContext(context.Background(),
		`INSERT INTO uploads (invocation_id, file_name, size, remote_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.InvocationID, record.FileName, record.Size, record.RemoteID, now,
	)
	if err != nil {
		return models.UploadRecord{}, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	rowID, err := result.LastInsertId()
	if err != nil {
		return models.UploadRecord{}, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}

	record.ID = rowID
	record.CreatedAt = now
	return record, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]models.UploadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, invocation_id, file_name, size, remote_id, created_at FROM uploads ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

// ByInvocation returns the records of a single invocation in upload order.
func (s *Store) ByInvocation(invocationID string) ([]models.UploadRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, invocation_id, file_name, size, remote_id, created_at FROM uploads WHERE invocation_id = ? ORDER BY id`,
		invocationID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	defer func() { _ = rows.Close() }()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	for rows.Next() {
		var record models.UploadRecord
		if err := rows.Scan(&record.ID, &record.InvocationID, &record.FileName,
			&record.Size, &record.RemoteID, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseError, err)
	}
	return records, nil
}
