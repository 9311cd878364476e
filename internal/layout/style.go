// Package layout lays out a resume on a fixed-size page and emits absolute
// drawing primitives to a Canvas.
//
// Coordinates are PDF points with the origin at the bottom-left corner of the
// page, so the vertical cursor starts near the page height and decreases as
// content is placed.
package layout

import "math"

// Vertical advances, in points. These are fixed offsets rather than values
// derived from font metrics.
const (
	nameAdvance       = 28
	contactAdvance    = 14
	contactsGap       = 12
	headingGap        = 4
	dividerGap        = 2
	headerGap         = 8
	lineAdvance       = 12
	blockGap          = 12
	entryTitleAdvance = 14
	dateAdvance       = 12
	entryGap          = 8
)

// Page and divider geometry.
const (
	LetterWidth  = 612.0
	LetterHeight = 792.0

	DefaultDividerWidth  = 500.0
	DefaultDividerHeight = 3.0

	// WrapWidth is the width budget used for every wrapped body block.
	WrapWidth = 500.0
)

// Color is an RGB color with components in the unit interval.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// RGB255 converts the color to 8-bit channels.
func (c Color) RGB255() (r, g, b int) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Font identifies one of the standard PDF Type 1 fonts.
type Font struct {
	Family string  `json:"family"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Size   float64 `json:"size"`
}

// Name returns the PostScript name, e.g. "Helvetica-BoldOblique".
func (f Font) Name() string {
	switch {
	case f.Bold && f.Italic:
		return f.Family + "-BoldOblique"
	case f.Bold:
		return f.Family + "-Bold"
	case f.Italic:
		return f.Family + "-Oblique"
	default:
		return f.Family
	}
}

// Style holds every visual constant used during a render. A Style is treated
// as read-only once an Engine has been created with it.
type Style struct {
	PageWidth  float64
	PageHeight float64
	LeftMargin float64
	TopMargin  float64

	HeadingColor Color
	BodyColor    Color
	ContactColor Color

	NameFont       Font
	ContactFont    Font
	HeadingFont    Font
	BodyFont       Font
	EntryTitleFont Font
	DateFont       Font

	DividerWidth  float64
	DividerHeight float64
	GradientFrom  Color
	GradientTo    Color
	DividerSolid  Color
}

const helvetica = "Helvetica"

// DefaultStyle returns the black/grey theme with the green-to-blue divider on
// a US Letter page.
func DefaultStyle() Style {
	return Style{
		PageWidth:  LetterWidth,
		PageHeight: LetterHeight,
		LeftMargin: 50,
		TopMargin:  40,

		HeadingColor: Color{0, 0, 0},
		BodyColor:    Color{0.2, 0.2, 0.2},
		ContactColor: Color{0.35, 0.35, 0.35},

		NameFont:       Font{Family: helvetica, Bold: true, Size: 22},
		ContactFont:    Font{Family: helvetica, Size: 10},
		HeadingFont:    Font{Family: helvetica, Bold: true, Size: 14},
		BodyFont:       Font{Family: helvetica, Size: 10},
		EntryTitleFont: Font{Family: helvetica, Bold: true, Size: 12},
		DateFont:       Font{Family: helvetica, Italic: true, Size: 8},

		DividerWidth:  DefaultDividerWidth,
		DividerHeight: DefaultDividerHeight,
		GradientFrom:  Color{0.5, 0.95, 0.75},
		GradientTo:    Color{0.2, 0.6, 1.0},
		DividerSolid:  Color{0.3, 0.8, 0.9},
	}
}
