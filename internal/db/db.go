// Package db provides PostgreSQL access for generated resume records.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied by Migrate. Statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS resume_records (
	id         UUID PRIMARY KEY,
	seq        BIGSERIAL NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	file_name  TEXT NOT NULL,
	data       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS resume_records_seq_idx ON resume_records (seq);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables used by the application if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// InsertResumeRecord stores a generated resume. Inserting an existing ID fails.
func (db *DB) InsertResumeRecord(ctx context.Context, rec *ResumeRecord) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO resume_records (id, created_at, file_name, data)
		 VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.CreatedAt, rec.FileName, rec.Data,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resume record %s: %w", rec.ID, err)
	}
	return nil
}

// ListResumeRecords returns all records in insertion order.
func (db *DB) ListResumeRecords(ctx context.Context) ([]ResumeRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, created_at, file_name, data
		 FROM resume_records
		 ORDER BY seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resume records: %w", err)
	}
	defer rows.Close()

	var records []ResumeRecord
	for rows.Next() {
		var rec ResumeRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.FileName, &rec.Data); err != nil {
			return nil, fmt.Errorf("failed to scan resume record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resume records: %w", err)
	}
	return records, nil
}

// GetResumeRecord returns the record with the given ID, or nil if none exists.
func (db *DB) GetResumeRecord(ctx context.Context, id uuid.UUID) (*ResumeRecord, error) {
	var rec ResumeRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, created_at, file_name, data
		 FROM resume_records
		 WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.FileName, &rec.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume record %s: %w", id, err)
	}
	return &rec, nil
}

// DeleteResumeRecord removes a record. Deleting a missing record is not an error.
func (db *DB) DeleteResumeRecord(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM resume_records WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete resume record %s: %w", id, err)
	}
	return nil
}
