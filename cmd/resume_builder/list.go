package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated resumes",
	Long:  "Prints the stored resume records as JSON, oldest first, in the same shape as GET /api/resumes.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	return listResumes(cmd.Context(), cfg, cmd.OutOrStdout())
}

func listResumes(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	records, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	all, err := records.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list resumes: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(stdout).PrintRecords(all)
		return nil
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(store.Summaries(all)); err != nil {
		return fmt.Errorf("failed to encode resume list: %w", err)
	}
	return nil
}
