package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/correction"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/service"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/store"
)

const pdfCreator = "resume-builder"

// app holds the components shared by serve and render --store.
type app struct {
	cfg       config.Config
	engine    *layout.Engine
	records   store.Store
	files     *storage.Files
	generator *service.Generator
	closers   []func()
}

// newEngine builds the PDF engine for cfg.
func newEngine(cfg config.Config) (*layout.Engine, error) {
	engine, err := rendering.NewEngine(cfg.Gradient, rendering.PDFOptions{
		Title:   "Resume",
		Creator: pdfCreator,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[config] dividers use %s fill", engine.Mode())
	return engine, nil
}

// newCorrector builds the configured corrector. When enabled is false the
// returned corrector leaves text alone.
func newCorrector(ctx context.Context, cfg config.Config, enabled bool) (correction.Corrector, func(), error) {
	if !enabled {
		return correction.NopCorrector{}, func() {}, nil
	}
	c, closer, err := correction.New(ctx, correction.Options{
		Provider:             cfg.CorrectionProvider,
		LanguageToolURL:      cfg.LanguageToolURL,
		LanguageToolUsername: cfg.LanguageToolUsername,
		LanguageToolAPIKey:   cfg.LanguageToolAPIKey,
		GeminiAPIKey:         cfg.GeminiAPIKey,
		GeminiModel:          cfg.GeminiModel,
		Timeout:              cfg.Timeout(),
	})
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[config] correction provider: %s", cfg.CorrectionProvider)
	return c, func() {
		if err := closer.Close(); err != nil {
			log.Printf("Warning: failed to close corrector: %v", err)
		}
	}, nil
}

// openStore returns the Postgres store when a database is configured and the
// resumes.json store otherwise.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		s, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[config] storing records in %s", s.Path())
		return s, func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	database, err := db.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(connectCtx); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Printf("[config] storing records in PostgreSQL")
	return store.NewPostgresStore(database), database.Close, nil
}

// newApp wires every component for cfg. Close releases them.
func newApp(ctx context.Context, cfg config.Config, correct bool) (*app, error) {
	a := &app{cfg: cfg}

	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	a.engine = engine

	corrector, closeCorrector, err := newCorrector(ctx, cfg, correct)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeCorrector)

	records, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.records = records
	a.closers = append(a.closers, closeStore)

	files, err := storage.NewFiles(cfg.ResumeDir())
	if err != nil {
		a.Close()
		return nil, err
	}
	a.files = files

	a.generator = service.NewGenerator(engine, corrector, records, files,
		service.WithConcurrency(cfg.CorrectionConcurrency))
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
