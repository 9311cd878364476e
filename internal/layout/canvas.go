package layout

import (
	"encoding/json"
	"fmt"
	"io"
)

// Canvas accepts absolute-positioned primitives and serializes them when the
// render is finished. A Canvas belongs to exactly one render.
type Canvas interface {
	DrawText(run TextRun)
	FillRect(rect FilledRect)
	// Finish writes the document. Errors from earlier draw calls surface here.
	Finish(w io.Writer) error
}

// CanvasFactory creates a fresh canvas for one render.
type CanvasFactory func(style Style) Canvas

// Primitive is either a TextRun or a FilledRect.
type Primitive interface {
	Kind() string
}

// TextRun draws Text with its baseline starting at (X, Y).
type TextRun struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Font  Font    `json:"font"`
	Color Color   `json:"color"`
}

// Kind implements Primitive.
func (TextRun) Kind() string { return "text" }

// MarshalJSON tags the run with its kind.
func (t TextRun) MarshalJSON() ([]byte, error) {
	type alias TextRun
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{Kind: t.Kind(), alias: alias(t)})
}

// FilledRect fills the rectangle whose bottom-left corner is (X, Y).
type FilledRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   Fill    `json:"fill"`
}

// Kind implements Primitive.
func (FilledRect) Kind() string { return "rect" }

// MarshalJSON tags the rectangle with its kind.
func (r FilledRect) MarshalJSON() ([]byte, error) {
	type alias FilledRect
	return json.Marshal(struct {
		Kind string `json:"kind"`
		alias
	}{Kind: r.Kind(), alias: alias(r)})
}

// Fill is a solid color unless Gradient is set.
type Fill struct {
	Color    Color           `json:"color"`
	Gradient *LinearGradient `json:"gradient,omitempty"`
}

// LinearGradient is a two-stop gradient. The vector (X1,Y1)-(X2,Y2) is given
// in the unit square of the filled rectangle; (0,0)-(1,0) runs left to right.
type LinearGradient struct {
	From Color   `json:"from"`
	To   Color   `json:"to"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// Solid returns a flat fill of c.
func Solid(c Color) Fill { return Fill{Color: c} }

// HorizontalGradient returns a left-to-right gradient fill.
func HorizontalGradient(from, to Color) Fill {
	return Fill{
		Color:    from,
		Gradient: &LinearGradient{From: from, To: to, X1: 0, Y1: 0, X2: 1, Y2: 0},
	}
}

// Recorder is a Canvas that keeps every primitive in memory. Finish writes the
// primitives as a JSON array, which makes it usable as a debug sink.
type Recorder struct {
	Primitives []Primitive
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder is a CanvasFactory producing Recorders.
func NewRecorder(Style) Canvas { return &Recorder{} }

// DrawText implements Canvas.
func (r *Recorder) DrawText(run TextRun) { r.Primitives = append(r.Primitives, run) }

// FillRect implements Canvas.
func (r *Recorder) FillRect(rect FilledRect) { r.Primitives = append(r.Primitives, rect) }

// Finish implements Canvas.
func (r *Recorder) Finish(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	prims := r.Primitives
	if prims == nil {
		prims = []Primitive{}
	}
	if err := enc.Encode(prims); err != nil {
		return fmt.Errorf("failed to encode primitives: %w", err)
	}
	return nil
}

// Texts returns the text runs in emission order.
func (r *Recorder) Texts() []TextRun {
	var out []TextRun
	for _, p := range r.Primitives {
		if t, ok := p.(TextRun); ok {
			out = append(out, t)
		}
	}
	return out
}

// Rects returns the filled rectangles in emission order.
func (r *Recorder) Rects() []FilledRect {
	var out []FilledRect
	for _, p := range r.Primitives {
		if rect, ok := p.(FilledRect); ok {
			out = append(out, rect)
		}
	}
	return out
}
