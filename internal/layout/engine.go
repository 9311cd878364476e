package layout

import (
	"bytes"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Section titles, in render order.
const (
	SectionSummary    = "Summary"
	SectionSkills     = "Skills"
	SectionExperience = "Experience"
	SectionEducation  = "Education"
)

// defaultName is drawn when the document carries no name. Callers normally
// reject such documents before they reach the engine.
const defaultName = "Resume"

// Engine renders resume documents. It holds only immutable configuration and
// may be shared between goroutines; each render gets its own canvas and cursor.
type Engine struct {
	style     Style
	mode      FillMode
	newCanvas CanvasFactory
}

// Option configures an Engine.
type Option func(*Engine)

// WithStyle overrides DefaultStyle.
func WithStyle(style Style) Option {
	return func(e *Engine) { e.style = style }
}

// NewEngine creates an engine drawing onto canvases from newCanvas, painting
// dividers according to mode.
func NewEngine(newCanvas CanvasFactory, mode FillMode, opts ...Option) *Engine {
	e := &Engine{
		style:     DefaultStyle(),
		mode:      mode,
		newCanvas: newCanvas,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.newCanvas == nil {
		e.newCanvas = NewRecorder
	}
	return e
}

// Mode returns the divider fill mode.
func (e *Engine) Mode() FillMode { return e.mode }

// Style returns the style used for every render.
func (e *Engine) Style() Style { return e.style }

// Render lays out doc and writes the finished document to w. Nothing is
// written to w unless the whole document was produced.
func (e *Engine) Render(doc *types.ResumeDocument, w io.Writer) error {
	c := e.newCanvas(e.style)
	e.draw(c, doc)

	var buf bytes.Buffer
	if err := c.Finish(&buf); err != nil {
		return &RenderError{Message: "failed to finalize document", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write document", Cause: err}
	}
	return nil
}

// RenderBytes renders doc and returns the document bytes.
func (e *Engine) RenderBytes(doc *types.ResumeDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Render(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Layout runs the same pass as Render against an in-memory Recorder and
// returns the emitted primitives.
func (e *Engine) Layout(doc *types.ResumeDocument) []Primitive {
	rec := &Recorder{}
	e.draw(rec, doc)
	return rec.Primitives
}

// pass is the state of one render. The cursor only ever moves down.
type pass struct {
	c      Canvas
	style  Style
	mode   FillMode
	cursor float64
}

func (e *Engine) draw(c Canvas, doc *types.ResumeDocument) {
	if doc == nil {
		doc = &types.ResumeDocument{}
	}
	p := &pass{
		c:      c,
		style:  e.style,
		mode:   e.mode,
		cursor: e.style.PageHeight - e.style.TopMargin,
	}

	p.personal(doc.Personal)

	if doc.Summary != "" {
		p.header(SectionSummary)
		p.paragraph(doc.Summary)
	}

	if len(doc.Skills) > 0 {
		p.header(SectionSkills)
		p.paragraph(strings.Join(doc.Skills, ", "))
	}

	if len(doc.Experience) > 0 {
		p.header(SectionExperience)
		for _, exp := range doc.Experience {
			end := exp.EndDate
			if end == "" {
				end = "Present"
			}
			p.entry(
				entryTitle(exp.Position, exp.Company),
				dateLine(exp.StartDate, exp.EndDate, end),
				exp.Description,
			)
		}
		p.advance(blockGap)
	}

	if len(doc.Education) > 0 {
		p.header(SectionEducation)
		for _, edu := range doc.Education {
			p.entry(
				entryTitle(edu.Degree, edu.Institution),
				dateLine(edu.StartDate, edu.EndDate, edu.EndDate),
				edu.Description,
			)
		}
		p.advance(blockGap)
	}
}

func (p *pass) advance(dy float64) { p.cursor -= dy }

func (p *pass) text(s string, font Font, color Color) {
	p.c.DrawText(TextRun{
		X:     p.style.LeftMargin,
		Y:     p.cursor,
		Text:  s,
		Font:  font,
		Color: color,
	})
}

func (p *pass) header(title string) {
	p.cursor = AddSectionHeader(p.c, p.mode, p.style, p.cursor, title)
}

func (p *pass) personal(info types.Personal) {
	name := info.Name
	if name == "" {
		name = defaultName
	}
	p.text(name, p.style.NameFont, p.style.HeadingColor)
	p.advance(nameAdvance)

	contacts := []struct{ label, value string }{
		{"Email", info.Email},
		{"Phone", info.Phone},
		{"Address", info.Address},
	}
	for _, contact := range contacts {
		if contact.value == "" {
			continue
		}
		p.text(contact.label+": "+contact.value, p.style.ContactFont, p.style.ContactColor)
		p.advance(contactAdvance)
	}
	p.advance(contactsGap)
}

// paragraph draws wrapped body text followed by the block gap.
func (p *pass) paragraph(text string) {
	p.lines(text)
	p.advance(blockGap)
}

func (p *pass) lines(text string) {
	for _, line := range Wrap(text, WrapWidth) {
		p.text(line, p.style.BodyFont, p.style.BodyColor)
		p.advance(lineAdvance)
	}
}

// entry draws one experience or education item. An empty dates string means
// no date line.
func (p *pass) entry(title, dates, description string) {
	p.text(title, p.style.EntryTitleFont, p.style.BodyColor)
	p.advance(entryTitleAdvance)

	if dates != "" {
		p.text(dates, p.style.DateFont, p.style.BodyColor)
		p.advance(dateAdvance)
	}

	if description != "" {
		p.lines(description)
	}
	p.advance(entryGap)
}

// entryTitle joins the two halves of an entry title. Missing halves are left
// empty, so "Engineer at" or "at Acme" can appear.
func entryTitle(what, where string) string {
	return strings.TrimSpace(what + " at " + where)
}

// dateLine returns "start – end" or "" when neither date was given.
// shownEnd is what is printed in place of the end date.
func dateLine(start, end, shownEnd string) string {
	if start == "" && end == "" {
		return ""
	}
	return strings.TrimSpace(start + " – " + shownEnd)
}
