package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// DatabaseFile is the name of the JSON file FileStore keeps in its directory.
const DatabaseFile = "resumes.json"

// FileStore keeps records as an indented JSON array in a single file. A missing
// or unreadable file is treated as an empty store.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by dir/resumes.json, creating dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, DatabaseFile)}, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string { return s.path }

// Append implements Store.
func (s *FileStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	for _, existing := range records {
		if existing.ID == rec.ID {
			return &DuplicateError{ID: rec.ID}
		}
	}
	return s.save(append(records, rec))
}

// List implements Store.
func (s *FileStore) List(_ context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.load() {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

func (s *FileStore) load() []Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[store] failed to read %s, treating as empty: %v", s.path, err)
		}
		return []Record{}
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[store] failed to parse %s, treating as empty: %v", s.path, err)
		return []Record{}
	}
	if records == nil {
		records = []Record{}
	}
	return records
}

// save replaces the file atomically so readers never see a partial array.
func (s *FileStore) save(records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), DatabaseFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
