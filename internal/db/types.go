package db

import (
	"time"

	"github.com/google/uuid"
)

// ResumeRecord is a row of resume_records.
type ResumeRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	FileName  string    `json:"file_name"`
	Data      []byte    `json:"data"`
}
