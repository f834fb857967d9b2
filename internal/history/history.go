package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// History manages the local webhook delivery log in SQLite
type History struct {
	db *sql.DB
}

// NewHistory opens (or creates) the delivery log at dbPath
func NewHistory(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for SQLite (single writer)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	h := &History{db: db}

	if err := h.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return h, nil
}

// Close closes the database connection
func (h *History) Close() error {
	return h.db.Close()
}

// initSchema creates the database tables and indexes
func (h *History) initSchema() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS deliveries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hook_id TEXT NOT NULL,
			sha TEXT NOT NULL,
			ref TEXT NOT NULL,
			repository TEXT NOT NULL,
			url TEXT NOT NULL,
			outcome TEXT NOT NULL,
			status_code INTEGER,
			error_message TEXT,
			sent_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	_, err = h.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_hook_sent
		ON deliveries(hook_id, sent_at DESC)
	`)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	return nil
}

// RecordDelivery appends a delivery attempt to the log
func (h *History) RecordDelivery(ctx context.Context, record *DeliveryRecord) (int64, error) {
	sentAt := record.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}

	result, err := h.db.ExecContext(ctx, `
		INSERT INTO deliveries
		(hook_id, sha, ref, repository, url, outcome, status_code, error_message, sent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.HookID,
		record.SHA,
		record.Ref,
		record.Repository,
		record.URL,
		record.Outcome,
		record.StatusCode,
		record.ErrorMessage,
		sentAt.Format(time.RFC3339),
	)

	if err != nil {
		return 0, fmt.Errorf("failed to insert delivery record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetLastDelivery returns the most recent delivery for a hook
func (h *History) GetLastDelivery(ctx context.Context, hookID string) (*DeliveryRecord, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT id, hook_id, sha, ref, repository, url, outcome, status_code, error_message, sent_at
		FROM deliveries
		WHERE hook_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, hookID)

	record, err := scanDeliveryRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last delivery: %w", err)
	}

	return record, nil
}

// GetRecentDeliveries returns the most recent deliveries, newest first.
// An empty hookID returns deliveries for all hooks.
func (h *History) GetRecentDeliveries(ctx context.Context, hookID string, limit int) ([]DeliveryRecord, error) {
	query := `
		SELECT id, hook_id, sha, ref, repository, url, outcome, status_code, error_message, sent_at
		FROM deliveries
		ORDER BY id DESC
		LIMIT ?
	`
	args := []interface{}{limit}

	if hookID != "" {
		query = `
			SELECT id, hook_id, sha, ref, repository, url, outcome, status_code, error_message, sent_at
			FROM deliveries
			WHERE hook_id = ?
			ORDER BY id DESC
			LIMIT ?
		`
		args = []interface{}{hookID, limit}
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery history: %w", err)
	}
	defer rows.Close()

	var records []DeliveryRecord
	for rows.Next() {
		record, err := scanDeliveryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery record: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

// scanner is an interface that both *sql.Row and *sql.Rows implement
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanDeliveryRecord scans a database row into a DeliveryRecord.
// Works with both *sql.Row and *sql.Rows
func scanDeliveryRecord(s scanner) (*DeliveryRecord, error) {
	var record DeliveryRecord
	var sentAtStr string
	var statusCode sql.NullInt64
	var errorMessage sql.NullString

	err := s.Scan(
		&record.ID,
		&record.HookID,
		&record.SHA,
		&record.Ref,
		&record.Repository,
		&record.URL,
		&record.Outcome,
		&statusCode,
		&errorMessage,
		&sentAtStr,
	)

	if err != nil {
		return nil, err
	}

	sentAt, err := time.Parse(time.RFC3339, sentAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sent_at timestamp: %w", err)
	}
	record.SentAt = sentAt

	if statusCode.Valid {
		record.StatusCode = &statusCode.Int64
	}
	if errorMessage.Valid {
		record.ErrorMessage = &errorMessage.String
	}

	return &record, nil
}
