package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
)

// PostgresStore keeps records in the resume_records table.
type PostgresStore struct {
	db *db.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore wraps an open database. The schema must already exist.
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

// Append implements Store. Record IDs must be UUIDs.
func (s *PostgresStore) Append(ctx context.Context, rec Record) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", rec.ID, err)
	}
	existing, err := s.db.GetResumeRecord(ctx, id)
	if err != nil {
		return err
	}
	if existing != nil {
		return &DuplicateError{ID: rec.ID}
	}

	data := []byte(rec.Data)
	if len(data) == 0 {
		data = []byte("null")
	}
	return s.db.InsertResumeRecord(ctx, &db.ResumeRecord{
		ID:        id,
		CreatedAt: rec.CreatedAt,
		FileName:  rec.FileName,
		Data:      data,
	})
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.ListResumeRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, id string) (*Record, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{ID: id}
	}
	row, err := s.db.GetResumeRecord(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &NotFoundError{ID: id}
	}
	rec := fromRow(*row)
	return &rec, nil
}

func fromRow(row db.ResumeRecord) Record {
	return Record{
		ID:        row.ID.String(),
		CreatedAt: row.CreatedAt.UTC(),
		FileName:  row.FileName,
		Data:      json.RawMessage(row.Data),
	}
}
