// Package store keeps the append-only list of generated resumes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Record describes one generated resume. Data is the corrected resume tree
// exactly as it was rendered.
type Record struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	FileName  string          `json:"fileName"`
	Data      json.RawMessage `json:"data"`
}

// Summary is the listing view of a Record.
type Summary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary returns the listing view of r.
func (r Record) Summary() Summary {
	return Summary{ID: r.ID, CreatedAt: r.CreatedAt}
}

// Store is an append-only collection of records keyed by opaque IDs.
type Store interface {
	Append(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (*Record, error)
}

// NotFoundError is returned by Get for an unknown ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resume %q not found", e.ID)
}

// DuplicateError is returned by Append when the ID is already stored.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("resume %q already exists", e.ID)
}

// Summaries maps records to their listing view, keeping order.
func Summaries(records []Record) []Summary {
	out := make([]Summary, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Summary())
	}
	return out
}
