package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-builder/internal/types"
)

func TestSectionsOf(t *testing.T) {
	prims := NewEngine(nil, SolidFill).Layout(&types.ResumeDocument{
		Personal: types.Personal{Name: "Ada", Email: "a@b.c"},
		Summary:  "One line.",
		Skills:   []string{"Go"},
	})

	sections := SectionsOf(prims)

	assert.Len(t, sections, len(prims))
	assert.Equal(t, "", sections[0], "name precedes every section")
	assert.Equal(t, "", sections[1], "contacts precede every section")
	assert.Equal(t, SectionSkills, sections[len(sections)-1])
	assert.Equal(t, []string{SectionSummary, SectionSkills}, SectionTitles(prims))
}

func TestSectionTitles_Empty(t *testing.T) {
	assert.Nil(t, SectionTitles(nil))
	assert.Nil(t, SectionTitles([]Primitive{TextRun{Text: "just text"}}))
}
