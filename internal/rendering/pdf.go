// Package rendering draws laid-out resumes into PDF documents with fpdf and
// decides, once per process, whether dividers may use gradients.
package rendering

import (
	"io"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/jonathan/resume-builder/internal/layout"
)

// PDFOptions controls document metadata and encoding.
type PDFOptions struct {
	Title   string
	Creator string
	// CreationDate fixes the document dates. Zero means the time of rendering.
	CreationDate time.Time
	// Uncompressed disables stream compression, which keeps page content
	// readable when inspecting output.
	Uncompressed bool
}

// PDFCanvas is a layout.Canvas backed by a single fpdf document page.
type PDFCanvas struct {
	pdf       *fpdf.Fpdf
	height    float64
	translate func(string) string
}

var _ layout.Canvas = (*PDFCanvas)(nil)

// NewPDFCanvas creates a one-page document sized by style.
func NewPDFCanvas(style layout.Style, opts PDFOptions) *PDFCanvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: style.PageWidth, Ht: style.PageHeight},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(!opts.Uncompressed)
	pdf.SetCatalogSort(true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
		pdf.SetModificationDate(opts.CreationDate)
	}
	pdf.AddPage()

	return &PDFCanvas{
		pdf:       pdf,
		height:    style.PageHeight,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// NewPDFCanvasFactory returns a layout.CanvasFactory producing PDF canvases.
func NewPDFCanvasFactory(opts PDFOptions) layout.CanvasFactory {
	return func(style layout.Style) layout.Canvas {
		return NewPDFCanvas(style, opts)
	}
}

// DrawText implements layout.Canvas. fpdf measures y from the top of the page
// and places the baseline there, so only the axis is flipped.
func (c *PDFCanvas) DrawText(run layout.TextRun) {
	c.pdf.SetFont(run.Font.Family, fontStyle(run.Font), run.Font.Size)
	r, g, b := run.Color.RGB255()
	c.pdf.SetTextColor(r, g, b)
	c.pdf.Text(run.X, c.height-run.Y, c.translate(SanitizeText(run.Text)))
}

// FillRect implements layout.Canvas.
func (c *PDFCanvas) FillRect(rect layout.FilledRect) {
	top := c.height - (rect.Y + rect.Height)

	if grad := rect.Fill.Gradient; grad != nil {
		r1, g1, b1 := grad.From.RGB255()
		r2, g2, b2 := grad.To.RGB255()
		c.pdf.LinearGradient(rect.X, top, rect.Width, rect.Height,
			r1, g1, b1, r2, g2, b2,
			grad.X1, grad.Y1, grad.X2, grad.Y2)
		return
	}

	r, g, b := rect.Fill.Color.RGB255()
	c.pdf.SetFillColor(r, g, b)
	c.pdf.Rect(rect.X, top, rect.Width, rect.Height, "F")
}

// Finish implements layout.Canvas.
func (c *PDFCanvas) Finish(w io.Writer) error {
	if err := c.pdf.Error(); err != nil {
		return &BackendError{Message: "failed to build document", Cause: err}
	}
	if err := c.pdf.Output(w); err != nil {
		return &BackendError{Message: "failed to write document", Cause: err}
	}
	return nil
}

func fontStyle(f layout.Font) string {
	style := ""
	if f.Bold {
		style += "B"
	}
	if f.Italic {
		style += "I"
	}
	return style
}
