// Package validation checks laid-out resumes against page constraints. The
// layout engine never paginates or clips, so these checks are how callers find
// out that content ran off the page.
package validation

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
)

// Violation types.
const (
	TypePageOverflow = "page_overflow"
	TypeLineTooLong  = "line_too_long"
)

// estimatedCharWidth matches the estimate the layout engine wraps with.
const estimatedCharWidth = 5.0

// Options configures the checks. The zero value checks against the page edges.
type Options struct {
	// BottomMargin is the lowest y content may reach without a warning.
	BottomMargin float64
	// RightMargin is the space to keep clear on the right of every line.
	RightMargin float64
}

// ValidateLayout checks prims, as produced by layout.Engine.Layout with
// style, and returns every violation found.
func ValidateLayout(prims []layout.Primitive, style layout.Style, opts Options) *types.Violations {
	all := []types.Violation{}
	all = append(all, checkLineWidths(prims, style, opts)...)
	if v := checkOverflow(prims, opts); v != nil {
		all = append(all, *v)
	}
	return &types.Violations{Violations: all}
}

// checkLineWidths flags text runs whose estimated width crosses the right
// margin. Wrapped text only does this when a single token is too wide.
func checkLineWidths(prims []layout.Primitive, style layout.Style, opts Options) []types.Violation {
	sections := layout.SectionsOf(prims)
	var violations []types.Violation
	line := 0
	for i, prim := range prims {
		run, ok := prim.(layout.TextRun)
		if !ok {
			continue
		}
		line++

		chars := utf8.RuneCountInString(run.Text)
		limit := style.PageWidth - opts.RightMargin
		if right := run.X + float64(chars)*estimatedCharWidth; right > limit {
			violations = append(violations, types.Violation{
				Type:       TypeLineTooLong,
				Severity:   types.SeverityWarning,
				Details:    fmt.Sprintf("Line %d is about %.0fpt wide and ends past %.0fpt", line, right-run.X, limit),
				Section:    sections[i],
				LineNumber: intPtr(line),
				CharCount:  intPtr(chars),
			})
		}
	}
	return violations
}

// checkOverflow reports content placed below the bottom margin. Content below
// the page edge is an error; content only inside the margin is a warning.
func checkOverflow(prims []layout.Primitive, opts Options) *types.Violation {
	analysis := AnalyzePageOverflow(prims, opts.BottomMargin)
	if analysis.ExcessPoints <= 0 {
		return nil
	}

	severity := types.SeverityWarning
	where := "into the bottom margin"
	if analysis.OffPage {
		severity = types.SeverityError
		where = "off the page"
	}
	return &types.Violation{
		Type:     TypePageOverflow,
		Severity: severity,
		Details: fmt.Sprintf("Content runs %.0fpt %s (about %d lines, %d primitives affected)",
			analysis.ExcessPoints, where, analysis.ExcessLines, analysis.Affected),
		Section: analysis.FirstSection,
	}
}

// intPtr returns a pointer to an integer
func intPtr(i int) *int {
	return &i
}

// OverflowAnalysis describes how far content extends below the allowed area.
type OverflowAnalysis struct {
	ExcessPoints float64 // Distance from the bottom margin to the lowest primitive
	ExcessLines  int     // ExcessPoints in body lines, rounded up
	Affected     int     // Primitives placed below the bottom margin
	OffPage      bool    // Some primitive is below y = 0
	FirstSection string  // Section of the first primitive below the margin
}

// bodyLineHeight is the vertical advance of one wrapped body line.
const bodyLineHeight = 12.0

// AnalyzePageOverflow measures how far prims extend below bottomMargin.
// Rectangles count from their bottom edge.
func AnalyzePageOverflow(prims []layout.Primitive, bottomMargin float64) *OverflowAnalysis {
	analysis := &OverflowAnalysis{}
	sections := layout.SectionsOf(prims)

	lowest := math.Inf(1)
	for i, prim := range prims {
		var y float64
		switch v := prim.(type) {
		case layout.TextRun:
			y = v.Y
		case layout.FilledRect:
			y = v.Y
		default:
			continue
		}
		if y >= bottomMargin {
			continue
		}
		if analysis.Affected == 0 {
			analysis.FirstSection = sections[i]
		}
		analysis.Affected++
		lowest = math.Min(lowest, y)
	}

	if analysis.Affected == 0 {
		return analysis
	}
	analysis.ExcessPoints = bottomMargin - lowest
	analysis.ExcessLines = int(math.Ceil(analysis.ExcessPoints / bodyLineHeight))
	analysis.OffPage = lowest < 0
	return analysis
}
