// Package service ties validation, correction, rendering and storage together
// into the resume generation workflow.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/correction"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

// Generator turns resume payloads into stored PDFs.
type Generator struct {
	engine      *layout.Engine
	corrector   correction.Corrector
	concurrency int
	records     store.Store
	files       *storage.Files

	now   func() time.Time
	newID func() string
}

// Option configures a Generator.
type Option func(*Generator)

// WithConcurrency bounds the number of parallel correction requests.
func WithConcurrency(n int) Option {
	return func(g *Generator) { g.concurrency = n }
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithIDFunc overrides record ID generation.
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

// NewGenerator creates a generator. A nil corrector disables correction.
func NewGenerator(engine *layout.Engine, corrector correction.Corrector, records store.Store, files *storage.Files, opts ...Option) *Generator {
	if corrector == nil {
		corrector = correction.NopCorrector{}
	}
	g := &Generator{
		engine:      engine,
		corrector:   corrector,
		concurrency: correction.DefaultConcurrency,
		records:     records,
		files:       files,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates payload, corrects its text, renders the PDF, stores the
// file and appends a record. Validation failures are returned as
// *schemas.ValidationError or *types.MissingFieldError.
func (g *Generator) Generate(ctx context.Context, payload []byte) (*store.Record, error) {
	if err := schemas.ValidateResume(payload); err != nil {
		return nil, err
	}

	var tree any
	if err := json.Unmarshal(payload, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	doc, err := types.DecodeResume(tree)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	corrected := correction.CorrectValue(ctx, g.corrector, tree, g.concurrency)
	log.Printf("[service] corrected resume text in %v", time.Since(start))

	doc, err = types.DecodeResume(corrected)
	if err != nil {
		return nil, err
	}

	id := g.newID()
	pdf, err := g.engine.RenderBytes(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render resume %s: %w", id, err)
	}

	g.checkLayout(id, doc)

	fileName, err := g.files.Save(id, pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume %s: %w", id, err)
	}

	data, err := json.Marshal(corrected)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume %s: %w", id, err)
	}

	rec := store.Record{
		ID:        id,
		CreatedAt: g.now(),
		FileName:  fileName,
		Data:      data,
	}
	if err := g.records.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record resume %s: %w", id, err)
	}

	log.Printf("[service] generated resume %s (%d bytes)", id, len(pdf))
	return &rec, nil
}

// checkLayout logs content that ran off the page or past the right edge. The
// PDF is kept either way.
func (g *Generator) checkLayout(id string, doc *types.ResumeDocument) *types.Violations {
	style := g.engine.Style()
	violations := validation.ValidateLayout(g.engine.Layout(doc), style, validation.Options{
		BottomMargin: style.TopMargin,
	})
	for _, v := range violations.Violations {
		log.Printf("[service] resume %s: %s %s: %s", id, v.Severity, v.Type, v.Details)
	}
	return violations
}

// List returns every stored record in insertion order.
func (g *Generator) List(ctx context.Context) ([]store.Record, error) {
	return g.records.List(ctx)
}

// Open looks up a record and opens its PDF. The caller closes the file.
// An unknown ID, or a record whose file is gone, yields *store.NotFoundError.
func (g *Generator) Open(ctx context.Context, id string) (*store.Record, *os.File, error) {
	rec, err := g.records.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	file, err := g.files.Open(rec.FileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[service] record %s points at missing file %s", id, rec.FileName)
			return nil, nil, &store.NotFoundError{ID: id}
		}
		return nil, nil, err
	}
	return rec, file, nil
}
