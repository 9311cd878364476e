package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a resume JSON file",
	Long:  "Checks a resume against the embedded JSON Schema and that personal.name is present.",
	RunE:  runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to resume JSON file (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	payload, err := os.ReadFile(validateInput)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	if _, err := loadResume(payload); err != nil {
		var validationErr *schemas.ValidationError
		var missing *types.MissingFieldError
		if errors.As(err, &validationErr) || errors.As(err, &missing) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed:\n%v\n", err)
		}
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}

// validatePayload checks payload against the resume schema.
func validatePayload(payload []byte) error {
	return schemas.ValidateResume(payload)
}

// decodePayload decodes schema-valid payload into a document.
func decodePayload(payload []byte) (*types.ResumeDocument, error) {
	var doc types.ResumeDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return &doc, nil
}
