// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResumeDocument is the input tree rendered into a PDF.
type ResumeDocument struct {
	Personal   Personal     `json:"personal"`
	Summary    string       `json:"summary,omitempty"`
	Skills     []string     `json:"skills,omitempty"`
	Experience []Experience `json:"experience,omitempty"`
	Education  []Education  `json:"education,omitempty"`
}

// Personal holds the name and contact details shown at the top of the page.
type Personal struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Experience is a single work history entry.
type Experience struct {
	Position    string `json:"position,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// MissingFieldError reports a required field that was absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing required field: %s", e.Field)
}

var resumeValidator = newResumeValidator()

// newResumeValidator reports field paths using JSON names so that errors read
// like the request payload ("personal.name").
func newResumeValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that the document can be rendered. Only personal.name is required.
func (d *ResumeDocument) Validate() error {
	err := resumeValidator.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		ns := fieldErrs[0].Namespace()
		// Drop the struct name prefix ("ResumeDocument.")
		if idx := strings.Index(ns, "."); idx >= 0 {
			ns = ns[idx+1:]
		}
		return &MissingFieldError{Field: ns}
	}
	return err
}

// DecodeResume converts a generic JSON value (as produced by encoding/json into
// an any) into a typed document.
func DecodeResume(v any) (*ResumeDocument, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume value: %w", err)
	}

	var doc ResumeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return &doc, nil
}
