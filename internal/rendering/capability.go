package rendering

import (
	"io"
	"log"
	"strings"
	"sync"

	"codeberg.org/go-pdf/fpdf"

	"github.com/jonathan/resume-builder/internal/layout"
)

// Gradient settings accepted by ResolveFillMode.
const (
	GradientAuto = "auto"
	GradientOn   = "on"
	GradientOff  = "off"
)

// GradientSupport reports whether the PDF backend can paint linear gradients.
// The probe runs at most once per process.
var GradientSupport = sync.OnceValue(probeGradient)

// probeGradient draws a gradient into a throwaway document. Any error or panic
// counts as no support.
func probeGradient() (supported bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[rendering] gradient probe panicked, using solid dividers: %v", r)
			supported = false
		}
	}()

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: 10, Ht: 10},
	})
	pdf.AddPage()
	pdf.LinearGradient(0, 0, 10, 10, 0, 0, 0, 255, 255, 255, 0, 0, 1, 0)
	if err := pdf.Output(io.Discard); err != nil {
		log.Printf("[rendering] gradient probe failed, using solid dividers: %v", err)
		return false
	}
	return true
}

// ResolveFillMode turns a gradient setting into a fill mode. "auto" (or empty)
// consults probe; "on" and "off" force the mode without probing.
func ResolveFillMode(setting string, probe func() bool) (layout.FillMode, error) {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case "", GradientAuto:
		if probe == nil {
			probe = GradientSupport
		}
		return layout.ModeFor(probe()), nil
	case GradientOn:
		return layout.GradientFill, nil
	case GradientOff:
		return layout.SolidFill, nil
	default:
		return layout.SolidFill, &ModeError{Setting: setting}
	}
}

// NewEngine builds a layout engine that writes PDFs, with the divider mode
// resolved from the gradient setting.
func NewEngine(gradient string, opts PDFOptions) (*layout.Engine, error) {
	mode, err := ResolveFillMode(gradient, nil)
	if err != nil {
		return nil, err
	}
	return layout.NewEngine(NewPDFCanvasFactory(opts), mode), nil
}
