package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(Resume), &v), "schema should be valid JSON")

	_, hasType := v["type"]
	_, hasSchema := v["$schema"]
	_, hasProps := v["properties"]
	assert.True(t, hasType && hasSchema && hasProps)
}

func TestResumeSchema_MatchesFile(t *testing.T) {
	data, err := os.ReadFile("resume.schema.json")
	require.NoError(t, err)
	assert.Equal(t, string(data), Resume)
}

func TestResumeSchema_DocumentsWireNames(t *testing.T) {
	var v struct {
		Properties  map[string]json.RawMessage `json:"properties"`
		Definitions map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(Resume), &v))

	for _, key := range []string{"personal", "summary", "skills", "experience", "education"} {
		assert.Contains(t, v.Properties, key)
	}
	for _, key := range []string{"position", "company", "startDate", "endDate", "description"} {
		assert.Contains(t, v.Definitions["experience"].Properties, key)
	}
	for _, key := range []string{"degree", "institution", "startDate", "endDate", "description"} {
		assert.Contains(t, v.Definitions["education"].Properties, key)
	}
}
