package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText_EmptyString(t *testing.T) {
	assert.Equal(t, "", SanitizeText(""))
}

func TestSanitizeText_PlainText(t *testing.T) {
	text := "Pioneer of computing."
	assert.Equal(t, text, SanitizeText(text))
}

func TestSanitizeText_ControlCharacters(t *testing.T) {
	assert.Equal(t, "line one line two", SanitizeText("line one\nline two"))
	assert.Equal(t, "a b", SanitizeText("a\tb"))
	assert.Equal(t, "a  b", SanitizeText("a\r\nb"))
}

func TestSanitizeText_ZeroWidth(t *testing.T) {
	assert.Equal(t, "Ada", SanitizeText("\ufeffA\u200bda"))
}

func TestSanitizeText_KeepsNonASCII(t *testing.T) {
	assert.Equal(t, "2020 – Present", SanitizeText("2020 – Present"))
	assert.Equal(t, "Zoë Straße", SanitizeText("Zoë Straße"))
}
