package rendering

import (
	"strings"
	"unicode"
)

// SanitizeText prepares text for a single PDF text run. Line breaks, tabs and
// other control characters are turned into spaces because a run is drawn on
// one baseline and the core fonts have no glyphs for them.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == ' ':
			result.WriteRune(' ')
		case unicode.IsControl(r):
			result.WriteRune(' ')
		case r == '\ufeff' || r == '\u200b':
			// zero-width, dropped
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
