package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/correction"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume JSON file to PDF",
	Long: `Render reads resume JSON, validates it and writes a PDF.

With --correct every text field is sent to the configured correction provider
first. With --store the resume goes through the same path as POST
/api/generate: the PDF is kept in the data directory and a record is appended.`,
	RunE: runRender,
}

var (
	renderInput   string
	renderOutput  string
	renderCorrect bool
	renderStore   bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output PDF (required unless --store)")
	renderCmd.Flags().BoolVar(&renderCorrect, "correct", false, "Correct spelling and grammar before rendering")
	renderCmd.Flags().BoolVar(&renderStore, "store", false, "Store the PDF and append a record, like the HTTP API")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

// renderOptions are the inputs of one render command.
type renderOptions struct {
	Input   string
	Output  string
	Correct bool
	Store   bool
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	return renderResume(cmd.Context(), cfg, renderOptions{
		Input:   renderInput,
		Output:  renderOutput,
		Correct: renderCorrect,
		Store:   renderStore,
	}, cmd.OutOrStdout())
}

func renderResume(ctx context.Context, cfg config.Config, opts renderOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Output == "" && !opts.Store {
		return fmt.Errorf("--out is required unless --store is set")
	}

	payload, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	if opts.Store {
		return renderAndStore(ctx, cfg, opts, payload, stdout)
	}

	doc, err := loadResume(payload)
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	if opts.Correct {
		corrector, closeCorrector, err := newCorrector(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer closeCorrector()

		start := time.Now()
		doc, err = correction.CorrectResume(ctx, corrector, doc, cfg.CorrectionConcurrency)
		if err != nil {
			return fmt.Errorf("failed to correct resume: %w", err)
		}
		log.Printf("[render] corrected resume text in %v", time.Since(start))
	}

	if cfg.Verbose {
		observability.NewPrinter(stdout).PrintResume(doc)
	}

	pdf, err := engine.RenderBytes(doc)
	if err != nil {
		return err
	}
	if err := writeFile(opts.Output, pdf); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Wrote %s (%d bytes)\n", opts.Output, len(pdf))
	return nil
}

// renderAndStore runs the full generation workflow and optionally copies the
// stored PDF to opts.Output.
func renderAndStore(ctx context.Context, cfg config.Config, opts renderOptions, payload []byte, stdout io.Writer) error {
	a, err := newApp(ctx, cfg, opts.Correct)
	if err != nil {
		return err
	}
	defer a.Close()

	start := time.Now()
	rec, err := a.generator.Generate(ctx, payload)
	if err != nil {
		return err
	}

	path, err := a.files.Path(rec.FileName)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		observability.NewPrinter(stdout).PrintGenerated(rec, path, time.Since(start))
	}

	if opts.Output != "" {
		f, err := createFile(opts.Output)
		if err != nil {
			return err
		}
		if err := a.files.Copy(f, rec.FileName); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.Output, err)
		}
	}

	_, _ = fmt.Fprintf(stdout, "Stored resume %s at %s\n", rec.ID, path)
	return nil
}

// loadResume validates payload and decodes it into a document.
func loadResume(payload []byte) (*types.ResumeDocument, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	doc, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

func writeFile(path string, data []byte) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
