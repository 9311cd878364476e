package layout

// SectionsOf returns, for every primitive, the title of the section it was
// drawn in. A section starts at a text run immediately followed by a filled
// rectangle (its divider); primitives before the first section get "".
func SectionsOf(prims []Primitive) []string {
	out := make([]string, len(prims))
	current := ""
	for i, prim := range prims {
		if run, ok := prim.(TextRun); ok && i+1 < len(prims) {
			if _, divider := prims[i+1].(FilledRect); divider {
				current = run.Text
			}
		}
		out[i] = current
	}
	return out
}

// SectionTitles returns the section titles in drawing order.
func SectionTitles(prims []Primitive) []string {
	var titles []string
	last := ""
	for _, s := range SectionsOf(prims) {
		if s != "" && s != last {
			titles = append(titles, s)
		}
		last = s
	}
	return titles
}
