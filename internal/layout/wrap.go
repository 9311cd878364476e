package layout

import (
	"strings"
	"unicode/utf8"
)

// charWidth is the estimated advance of every character, independent of font
// and glyph.
const charWidth = 5

// Wrap splits text at whitespace into lines whose estimated width fits
// maxWidth. Tokens are never split: a single token wider than maxWidth is
// placed on its own line and overflows.
func Wrap(text string, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && textWidth(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// textWidth estimates the rendered width of s.
func textWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s) * charWidth)
}
