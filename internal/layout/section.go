package layout

// AddSectionHeader draws a bold section title at cursor with a divider right
// under it and returns the new cursor. The space consumed is the same for
// every title; long titles are not wrapped.
func AddSectionHeader(c Canvas, mode FillMode, style Style, cursor float64, title string) float64 {
	c.DrawText(TextRun{
		X:     style.LeftMargin,
		Y:     cursor,
		Text:  title,
		Font:  style.HeadingFont,
		Color: style.HeadingColor,
	})
	cursor -= headingGap
	cursor -= DrawDivider(c, mode, style, cursor, style.DividerWidth, style.DividerHeight)
	cursor -= headerGap
	return cursor
}

// SectionHeaderHeight is the vertical space AddSectionHeader consumes with
// the given style.
func SectionHeaderHeight(style Style) float64 {
	return headingGap + style.DividerHeight + dividerGap + headerGap
}
