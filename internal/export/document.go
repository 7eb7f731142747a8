// Package export lays a FitnessPlan out as a paginated document and renders it
// to PDF or XLSX.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"fitness-planner/internal/plan"
)

// Page geometry in millimetres on A4 portrait.
const (
	pageTop      = 20.0
	pageLimit    = 280.0
	wrapWidth    = 180.0
	headingX     = 10.0
	bodyX        = 12.0
	lineAdvance  = 6.0
	headAdvance  = 8.0
	titleAdvance = 10.0
	dayGap       = 4.0
	titleSize    = 16.0
	sectionSize  = 14.0
	bodySize     = 12.0
	documentFont = "Helvetica"
	utf8Font     = "PlanUTF8"
)

type Line struct {
	Text string
	X, Y float64
	Size float64
}

type Page struct {
	Lines []Line
}

// Document is the laid-out plan. Rendering a Document is a pure function of
// its pages.
type Document struct {
	Name  string
	Pages []Page

	font  []byte
	lossy bool
}

// Lossy reports whether some text falls outside the built-in font's cp1252
// range and renders as '.' in the PDF. Documents laid out by an exporter from
// NewUTF8Exporter are never lossy.
func (d *Document) Lossy() bool { return d.lossy }

func (d *Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// Filename is "{name}_fitness_plan.pdf".
func (d *Document) Filename() string {
	return Filename(d.Name, "pdf")
}

// Filename derives the export filename for name with the given extension.
func Filename(name, ext string) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if base == "" {
		return "fitness_plan." + ext
	}
	return base + "_fitness_plan." + ext
}

// WritePDF renders the document.
func (d *Document) WritePDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Fitness Plan for %s", d.Name), true)
	family, tr := documentFont, pdf.UnicodeTranslatorFromDescriptor("")
	if len(d.font) > 0 {
		pdf.AddUTF8FontFromBytes(utf8Font, "", d.font)
		family, tr = utf8Font, identity
	}
	for _, page := range d.Pages {
		pdf.AddPage()
		for _, l := range page.Lines {
			pdf.SetFont(family, "", l.Size)
			pdf.Text(l.X, l.Y, tr(l.Text))
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// Exporter lays plans out. It is not safe for concurrent use.
type Exporter struct {
	measure *fpdf.Fpdf
	tr      func(string) string
	font    []byte
}

// NewExporter lays out with the built-in Helvetica, which covers cp1252 only.
func NewExporter() *Exporter {
	m := fpdf.New("P", "mm", "A4", "")
	m.SetFont(documentFont, "", bodySize)
	return &Exporter{measure: m, tr: m.UnicodeTranslatorFromDescriptor("")}
}

// NewUTF8Exporter lays out and renders with the given TrueType font, so text
// in any script the font covers survives.
func NewUTF8Exporter(font []byte) (*Exporter, error) {
	m := fpdf.New("P", "mm", "A4", "")
	m.AddUTF8FontFromBytes(utf8Font, "", font)
	m.SetFont(utf8Font, "", bodySize)
	if err := m.Error(); err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}
	return &Exporter{measure: m, tr: identity, font: font}, nil
}

func identity(s string) string { return s }

// Export lays out title, workout days, diet, tips and motivation in that
// order, starting a new page whenever the cursor passes the page limit.
func (e *Exporter) Export(p *plan.FitnessPlan, name string) *Document {
	c := &cursor{e: e, doc: &Document{Name: name, font: e.font}, y: pageTop}
	c.newPage()

	c.heading(fmt.Sprintf("Fitness Plan for %s", name), titleSize, titleAdvance)

	c.heading("Workout Plan", sectionSize, headAdvance)
	for _, day := range p.WorkoutPlan {
		c.heading(day.Day, sectionSize, lineAdvance)
		for _, ex := range day.Exercises {
			c.body(fmt.Sprintf("%s - %d sets x %s | %s", ex.Name, ex.Sets, ex.Reps, ex.Description))
		}
		c.y += dayGap
	}

	c.heading("Diet Plan", sectionSize, headAdvance)
	for _, meal := range p.DietPlan.Meals() {
		c.body(fmt.Sprintf("%s: %s", strings.ToUpper(meal.Name), strings.Join(meal.Items, ", ")))
	}

	c.heading("Tips", sectionSize, headAdvance)
	for _, tip := range p.Tips {
		c.body("- " + tip)
	}

	c.heading("Motivation", sectionSize, headAdvance)
	c.body(p.Motivation)

	return c.doc
}

type cursor struct {
	e   *Exporter
	doc *Document
	y   float64
}

func (c *cursor) newPage() {
	c.doc.Pages = append(c.doc.Pages, Page{})
	c.y = pageTop
}

func (c *cursor) put(text string, x, size float64) {
	page := &c.doc.Pages[len(c.doc.Pages)-1]
	page.Lines = append(page.Lines, Line{Text: text, X: x, Y: c.y, Size: size})
	// Unsupported runes come back from the translator as '.'.
	if strings.Count(c.e.tr(text), ".") > strings.Count(text, ".") {
		c.doc.lossy = true
	}
}

func (c *cursor) heading(text string, size, advance float64) {
	if c.y > pageLimit {
		c.newPage()
	}
	c.put(text, headingX, size)
	c.y += advance
}

func (c *cursor) body(text string) {
	for _, l := range c.e.wrap(text, bodySize) {
		c.put(l, bodyX, bodySize)
		c.y += lineAdvance
		if c.y > pageLimit {
			c.newPage()
		}
	}
}

// wrap splits text into lines no wider than wrapWidth at the given font size.
// Words wider than a line are broken by rune.
func (e *Exporter) wrap(text string, size float64) []string {
	e.measure.SetFontSize(size)
	fits := func(s string) bool {
		return e.measure.GetStringWidth(e.tr(s)) <= wrapWidth
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if fits(candidate) {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = ""
		for _, r := range word {
			next := current + string(r)
			if current != "" && !fits(next) {
				lines = append(lines, current)
				next = string(r)
			}
			current = next
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
