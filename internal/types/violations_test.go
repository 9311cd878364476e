package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolations_HasErrors(t *testing.T) {
	var nilViolations *Violations
	assert.False(t, nilViolations.HasErrors())

	v := &Violations{Violations: []Violation{{Type: "line_too_long", Severity: SeverityWarning}}}
	assert.False(t, v.HasErrors())

	v.Violations = append(v.Violations, Violation{Type: "page_overflow", Severity: SeverityError})
	assert.True(t, v.HasErrors())
}

func TestViolation_OmitsEmptyOptionalFields(t *testing.T) {
	data, err := json.Marshal(Violation{Type: "page_overflow", Severity: SeverityError, Details: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"page_overflow","severity":"error","details":"x"}`, string(data))
}
