package correction

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/llm"
)

// Gemini corrects text by asking a generative model to proofread it.
type Gemini struct {
	client  llm.Client
	timeout time.Duration
}

var _ Corrector = (*Gemini)(nil)

// NewGemini wraps client. A zero timeout uses DefaultTimeout.
func NewGemini(client llm.Client, timeout time.Duration) *Gemini {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gemini{client: client, timeout: timeout}
}

// Correct implements Corrector.
func (g *Gemini) Correct(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.client.GenerateContent(ctx, llm.BuildCorrectionPrompt(text), llm.TierFor(text))
	if err != nil {
		log.Printf("[correction] %v", &ServiceError{Service: "gemini", Message: "generation failed", Cause: err})
		return text
	}

	corrected := llm.CleanTextResponse(out)
	if corrected == "" {
		return text
	}
	return corrected
}
