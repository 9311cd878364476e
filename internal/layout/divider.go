package layout

// FillMode selects how section dividers are painted. It is resolved once, from
// the rendering backend's capabilities, and then passed to every render.
type FillMode int

const (
	// SolidFill paints dividers with a flat color. It is the zero value so
	// that an unresolved mode degrades safely.
	SolidFill FillMode = iota
	// GradientFill paints dividers with a two-stop linear gradient.
	GradientFill
)

// ModeFor maps a gradient capability signal to a FillMode.
func ModeFor(gradientSupported bool) FillMode {
	if gradientSupported {
		return GradientFill
	}
	return SolidFill
}

func (m FillMode) String() string {
	switch m {
	case GradientFill:
		return "gradient"
	default:
		return "solid"
	}
}

// DrawDivider draws the decorative bar whose top edge is at y and returns the
// vertical space consumed (height plus a fixed trailing gap). The return value
// does not depend on mode.
func DrawDivider(c Canvas, mode FillMode, style Style, y, width, height float64) float64 {
	fill := Solid(style.DividerSolid)
	if mode == GradientFill {
		fill = HorizontalGradient(style.GradientFrom, style.GradientTo)
	}
	c.FillRect(FilledRect{
		X:      style.LeftMargin,
		Y:      y - height,
		Width:  width,
		Height: height,
		Fill:   fill,
	})
	return height + dividerGap
}
