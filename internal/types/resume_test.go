package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeDocument_Validate(t *testing.T) {
	tests := []struct {
		name      string
		doc       ResumeDocument
		wantError bool
	}{
		{
			name: "name only",
			doc:  ResumeDocument{Personal: Personal{Name: "Ada Lovelace"}},
		},
		{
			name: "full document",
			doc: ResumeDocument{
				Personal: Personal{Name: "Ada Lovelace", Email: "ada@example.com"},
				Summary:  "Pioneer of computing.",
				Skills:   []string{"Mathematics"},
			},
		},
		{
			name:      "missing name",
			doc:       ResumeDocument{Personal: Personal{Email: "ada@example.com"}},
			wantError: true,
		},
		{
			name:      "empty document",
			doc:       ResumeDocument{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantError {
				require.Error(t, err)
				var missing *MissingFieldError
				require.ErrorAs(t, err, &missing)
				assert.Equal(t, "personal.name", missing.Field)
				assert.Equal(t, "Missing required field: personal.name", err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResumeDocument_JSONFieldNames(t *testing.T) {
	input := `{
		"personal": {"name": "Ada", "email": "ada@example.com", "phone": "555", "address": "London"},
		"summary": "Pioneer.",
		"skills": ["C++", "Rust"],
		"experience": [{"position": "Engineer", "company": "Acme", "startDate": "2020", "endDate": "2021", "description": "Built things."}],
		"education": [{"degree": "BSc", "institution": "Uni", "startDate": "2010", "description": "Studied."}]
	}`

	var doc ResumeDocument
	require.NoError(t, json.Unmarshal([]byte(input), &doc))

	assert.Equal(t, "Ada", doc.Personal.Name)
	assert.Equal(t, "London", doc.Personal.Address)
	assert.Equal(t, []string{"C++", "Rust"}, doc.Skills)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "2020", doc.Experience[0].StartDate)
	assert.Equal(t, "2021", doc.Experience[0].EndDate)
	require.Len(t, doc.Education, 1)
	assert.Equal(t, "Uni", doc.Education[0].Institution)
	assert.Empty(t, doc.Education[0].EndDate)
}

func TestDecodeResume(t *testing.T) {
	value := map[string]any{
		"personal": map[string]any{"name": "Ada"},
		"skills":   []any{"Go"},
		"extra":    "ignored",
	}

	doc, err := DecodeResume(value)
	require.NoError(t, err)
	assert.Equal(t, "Ada", doc.Personal.Name)
	assert.Equal(t, []string{"Go"}, doc.Skills)
}

func TestDecodeResume_WrongShape(t *testing.T) {
	_, err := DecodeResume(map[string]any{"skills": "not-a-list"})
	assert.Error(t, err)
}
