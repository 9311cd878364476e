package types

// Violation severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Violation represents a single layout check failure
type Violation struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Details    string `json:"details"`
	Section    string `json:"section,omitempty"`
	LineNumber *int   `json:"line_number,omitempty"`
	CharCount  *int   `json:"char_count,omitempty"`
}

// Violations represents a collection of layout check failures
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity.
func (v *Violations) HasErrors() bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
