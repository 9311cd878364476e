// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a short summary of the document about to be rendered.
func (p *Printer) PrintResume(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:       %s\n", doc.Personal.Name))
	if doc.Personal.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", doc.Personal.Email))
	}
	sb.WriteString(fmt.Sprintf("Summary:    %d chars\n", utf8.RuneCountInString(doc.Summary)))
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", len(doc.Skills)))
	sb.WriteString(fmt.Sprintf("Experience: %d\n", len(doc.Experience)))

	count := min(len(doc.Experience), maxItemsToShow)
	for i := 0; i < count; i++ {
		exp := doc.Experience[i]
		sb.WriteString(fmt.Sprintf("  • %s @ %s\n", exp.Position, exp.Company))
	}
	if len(doc.Experience) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
	}

	sb.WriteString(fmt.Sprintf("Education:  %d", len(doc.Education)))

	p.printBox("RESUME", sb.String())
}

// PrintLayout outputs primitive counts and where the content ends on the page.
func (p *Printer) PrintLayout(prims []layout.Primitive, mode layout.FillMode) {
	if len(prims) == 0 {
		return
	}

	var texts, rects, gradients int
	lowest := layout.LetterHeight
	for _, prim := range prims {
		switch v := prim.(type) {
		case layout.TextRun:
			texts++
			lowest = min(lowest, v.Y)
		case layout.FilledRect:
			rects++
			lowest = min(lowest, v.Y)
			if v.Fill.Gradient != nil {
				gradients++
			}
		}
	}
	headers := layout.SectionTitles(prims)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Divider mode:  %s\n", mode))
	sb.WriteString(fmt.Sprintf("Text runs:     %d\n", texts))
	sb.WriteString(fmt.Sprintf("Rectangles:    %d (%d gradient)\n", rects, gradients))
	if len(headers) > 0 {
		sb.WriteString(fmt.Sprintf("Sections:      %s\n", strings.Join(headers, ", ")))
	}
	sb.WriteString(fmt.Sprintf("Lowest y:      %.0f", lowest))
	if lowest < 0 {
		sb.WriteString("\n⚠ content runs off the page")
	}

	p.printBox("LAYOUT", sb.String())
}

// PrintRecords outputs the most recent stored resumes, newest last.
func (p *Printer) PrintRecords(records []store.Record) {
	if len(records) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Stored resumes: %d\n\n", len(records)))

	start := max(0, len(records)-maxItemsToShow)
	if start > 0 {
		sb.WriteString(fmt.Sprintf("... %d older\n", start))
	}
	for i := start; i < len(records); i++ {
		rec := records[i]
		sb.WriteString(fmt.Sprintf("%s  %s\n", rec.CreatedAt.UTC().Format(time.DateTime), rec.ID))
	}

	p.printBox("RESUMES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGenerated outputs the result of one generation.
func (p *Printer) PrintGenerated(rec *store.Record, path string, elapsed time.Duration) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:      %s\n", rec.ID))
	sb.WriteString(fmt.Sprintf("File:    %s\n", path))
	sb.WriteString(fmt.Sprintf("Elapsed: %v", elapsed.Round(time.Millisecond)))

	p.printBox("GENERATED", sb.String())
}

// PrintViolations outputs any layout violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		label := v.Type
		if v.Section != "" {
			label += " in " + v.Section
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", label, v.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, 50)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LAYOUT VIOLATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
