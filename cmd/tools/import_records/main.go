// Command import_records copies the records in a resumes.json data directory
// into the PostgreSQL record store.
//
// Records that already exist are left alone, so the import can be re-run.
// Records whose IDs are not UUIDs cannot be stored in PostgreSQL and are
// reported as skipped.
//
// Usage:
//
//	go run ./cmd/tools/import_records [data-dir]
//
// Requires DATABASE_URL environment variable to be set. The data directory
// defaults to DATA_DIR, then "data".
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/store"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Fprintln(os.Stderr, "ERROR: DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	dataDir := os.Getenv("DATA_DIR")
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}
	if dataDir == "" {
		dataDir = config.DefaultDataDir
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	source, err := store.NewFileStore(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to open %s: %v\n", dataDir, err)
		os.Exit(1)
	}
	records, err := source.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read records: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Record Import ===")
	fmt.Printf("Source: %s\n\n", source.Path())

	if len(records) == 0 {
		fmt.Println("No records found.")
		return
	}

	target := store.NewPostgresStore(database)
	imported, existing, skipped, failed := 0, 0, 0, 0

	for _, rec := range records {
		if _, err := uuid.Parse(rec.ID); err != nil {
			fmt.Printf("  - Skipped: %s (not a UUID)\n", rec.ID)
			skipped++
			continue
		}

		err := target.Append(ctx, rec)
		var dup *store.DuplicateError
		switch {
		case err == nil:
			fmt.Printf("  ✓ Imported: %s\n", rec.ID)
			imported++
		case errors.As(err, &dup):
			fmt.Printf("  • Existing: %s\n", rec.ID)
			existing++
		default:
			fmt.Printf("  ✗ %s: %v\n", rec.ID, err)
			failed++
		}
	}

	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Imported: %d\n", imported)
	fmt.Printf("  Existing: %d\n", existing)
	fmt.Printf("  Skipped: %d\n", skipped)
	fmt.Printf("  Failed: %d\n", failed)
	fmt.Printf("  Total: %d\n", len(records))

	if failed > 0 {
		os.Exit(1)
	}
}
