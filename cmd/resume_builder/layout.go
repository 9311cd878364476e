package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/validation"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the drawing primitives for a resume",
	Long: `Layout runs the layout engine without producing a PDF and prints the
positioned text runs and rectangles as JSON. With --verbose a summary is
printed instead. With --check the layout is checked for content that runs off
the page and the command fails if any is found.`,
	RunE: runLayout,
}

var (
	layoutInput string
	layoutCheck bool
)

func init() {
	layoutCmd.Flags().StringVarP(&layoutInput, "in", "i", "", "Path to resume JSON file (required)")
	layoutCmd.Flags().BoolVar(&layoutCheck, "check", false, "Print layout violations and fail on content off the page")

	if err := layoutCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	return printLayout(cfg, layoutInput, layoutCheck, cmd.OutOrStdout())
}

func printLayout(cfg config.Config, input string, check bool, stdout io.Writer) error {
	payload, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	doc, err := loadResume(payload)
	if err != nil {
		return err
	}

	mode, err := rendering.ResolveFillMode(cfg.Gradient, nil)
	if err != nil {
		return err
	}
	engine := layout.NewEngine(layout.NewRecorder, mode)
	prims := engine.Layout(doc)
	style := engine.Style()
	violations := validation.ValidateLayout(prims, style, validation.Options{BottomMargin: style.TopMargin})

	switch {
	case cfg.Verbose:
		p := observability.NewPrinter(stdout)
		p.PrintResume(doc)
		p.PrintLayout(prims, mode)
		p.PrintViolations(violations)
	case check:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(violations); err != nil {
			return fmt.Errorf("failed to encode violations: %w", err)
		}
	default:
		if err := engine.Render(doc, stdout); err != nil {
			return err
		}
	}

	if check && violations.HasErrors() {
		return fmt.Errorf("layout check failed: content runs off the page")
	}
	return nil
}
