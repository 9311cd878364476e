// Package llm - util.go provides helpers for building proofreading prompts and
// cleaning model output.
package llm

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/prompts"
)

// shortTextLimit is the length up to which text is treated as a list item
// (a title, skill or date) rather than prose.
const shortTextLimit = 40

// BuildCorrectionPrompt asks the model to fix spelling and grammar in text
// without changing its meaning or formatting. Short single-line values get a
// stricter prompt that leaves capitalisation and abbreviations alone.
func BuildCorrectionPrompt(text string) string {
	key := "proofread-text"
	if len(text) <= shortTextLimit && !strings.Contains(text, "\n") {
		key = "proofread-list-item"
	}
	return prompts.Format(prompts.MustGet(prompts.CorrectionFile, key), map[string]string{"Text": text})
}

// CleanTextResponse strips wrappers models add around a plain-text answer:
// code fences, a "Corrected text:" label and matching surrounding quotes.
func CleanTextResponse(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	for _, label := range []string{"Corrected text:", "Corrected:", "Text:"} {
		if len(text) >= len(label) && strings.EqualFold(text[:len(label)], label) {
			text = strings.TrimSpace(text[len(label):])
			break
		}
	}

	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}

	return text
}
