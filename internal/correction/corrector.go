// Package correction proofreads the free-text fields of a resume before it is
// rendered. Correction never fails: when a backend is unavailable the text is
// returned as given.
package correction

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Provider names accepted by New.
const (
	ProviderLanguageTool = "languagetool"
	ProviderGemini       = "gemini"
	ProviderNone         = "none"
)

// DefaultTimeout bounds a single correction request.
const DefaultTimeout = 10 * time.Second

// Corrector returns a corrected version of text. Implementations return text
// unchanged on any failure.
type Corrector interface {
	Correct(ctx context.Context, text string) string
}

// CorrectorFunc adapts a function to the Corrector interface.
type CorrectorFunc func(ctx context.Context, text string) string

// Correct implements Corrector.
func (f CorrectorFunc) Correct(ctx context.Context, text string) string {
	return f(ctx, text)
}

// NopCorrector returns every string unchanged.
type NopCorrector struct{}

// Correct implements Corrector.
func (NopCorrector) Correct(_ context.Context, text string) string { return text }

// Options selects and configures a correction backend.
type Options struct {
	Provider string

	LanguageToolURL      string
	LanguageToolUsername string
	LanguageToolAPIKey   string

	GeminiAPIKey string
	GeminiModel  string

	Timeout time.Duration
}

// New builds the corrector named by opts.Provider. The returned closer
// releases backend resources and is never nil.
func New(ctx context.Context, opts Options) (Corrector, io.Closer, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderLanguageTool:
		lt := NewLanguageTool(opts.LanguageToolURL,
			WithCredentials(opts.LanguageToolUsername, opts.LanguageToolAPIKey),
			WithTimeout(opts.Timeout),
		)
		return lt, nopCloser{}, nil
	case ProviderGemini:
		client, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(opts.GeminiModel), opts.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini corrector: %w", err)
		}
		return NewGemini(client, opts.Timeout), client, nil
	case ProviderNone:
		return NopCorrector{}, nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown correction provider: %s", opts.Provider)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
