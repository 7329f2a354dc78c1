// Package testutil provides in-memory fakes for tests, including a fully
// in-memory implementation of the deck document capability.
package testutil

import (
	"fmt"
	"strings"

	"github.com/luminapower/propdeck/internal/domain/deck"
)

// MemDocument implements deck.Document entirely in memory. Serialize produces
// a deterministic textual dump of the document state, which lets tests assert
// byte-identical output across renders.
type MemDocument struct {
	slides       []*MemSlide
	serializeErr error
}

func NewMemDocument(slides ...*MemSlide) *MemDocument {
	return &MemDocument{slides: slides}
}

func (d *MemDocument) Slides() []deck.Slide {
	slides := make([]deck.Slide, len(d.slides))
	for i, s := range d.slides {
		slides[i] = s
	}
	return slides
}

// FailSerialization makes the next Serialize call return err
func (d *MemDocument) FailSerialization(err error) {
	d.serializeErr = err
}

func (d *MemDocument) Serialize() ([]byte, error) {
	if d.serializeErr != nil {
		return nil, d.serializeErr
	}

	var b strings.Builder
	for si, slide := range d.slides {
		fmt.Fprintf(&b, "slide %d\n", si)
		for hi, shape := range slide.shapes {
			fmt.Fprintf(&b, "  shape %d textbox=%t\n", hi, shape.textBox)
			if shape.frame == nil {
				continue
			}
			for pi, p := range shape.frame.paragraphs {
				fmt.Fprintf(&b, "    paragraph %d text=%q font=%s/%d align=%s\n",
					pi, p.CurrentText(), p.font.Name, p.font.Size, p.alignment)
				for ri, r := range p.runs {
					fmt.Fprintf(&b, "      run %d text=%q font=%s/%d\n",
						ri, r.text, r.font.Name, r.font.Size)
				}
			}
		}
	}
	return []byte(b.String()), nil
}

// MemSlide implements deck.Slide
type MemSlide struct {
	shapes []*MemShape
}

func NewMemSlide(shapes ...*MemShape) *MemSlide {
	return &MemSlide{shapes: shapes}
}

func (s *MemSlide) Shapes() []deck.Shape {
	shapes := make([]deck.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		shapes[i] = sh
	}
	return shapes
}

// MemShape implements deck.Shape
type MemShape struct {
	textBox      bool
	frame        *MemTextFrame
	chart        *MemChart
	textOverride string
}

// NewTextBox creates a text box with one paragraph per line, each holding a
// single run with the line's text
func NewTextBox(lines ...string) *MemShape {
	frame := &MemTextFrame{}
	for _, line := range lines {
		frame.paragraphs = append(frame.paragraphs, &MemParagraph{
			runs: []*MemRun{{text: line}},
		})
	}
	return &MemShape{textBox: true, frame: frame}
}

// NewTextBoxWithoutRuns creates a text box whose paragraphs carry text at the
// paragraph level with no runs, the state of a template shape typed without
// character-level formatting
func NewTextBoxWithoutRuns(lines ...string) *MemShape {
	frame := &MemTextFrame{}
	for _, line := range lines {
		frame.paragraphs = append(frame.paragraphs, &MemParagraph{text: line})
	}
	return &MemShape{textBox: true, frame: frame}
}

// NewMalformedTextBox creates a text box that reports the given text but
// whose frame holds no paragraphs
func NewMalformedTextBox(reportedText string) *MemShape {
	return &MemShape{
		textBox:      true,
		frame:        &MemTextFrame{},
		textOverride: reportedText,
	}
}

// NewPictureShape creates a non-text shape the resolver must ignore
func NewPictureShape() *MemShape {
	return &MemShape{}
}

// NewChartShape creates a shape hosting an empty chart
func NewChartShape() *MemShape {
	return &MemShape{chart: &MemChart{}}
}

func (s *MemShape) IsTextBox() bool {
	return s.textBox
}

func (s *MemShape) Text() string {
	if s.textOverride != "" {
		return s.textOverride
	}
	if s.frame == nil {
		return ""
	}
	lines := make([]string, len(s.frame.paragraphs))
	for i, p := range s.frame.paragraphs {
		lines[i] = p.CurrentText()
	}
	return strings.Join(lines, "\n")
}

func (s *MemShape) TextFrame() deck.TextFrame {
	if s.frame == nil {
		return nil
	}
	return s.frame
}

func (s *MemShape) HasChart() bool {
	return s.chart != nil
}

func (s *MemShape) Chart() deck.Chart {
	if s.chart == nil {
		return nil
	}
	return s.chart
}

// MemChartState exposes the chart's recorded state for assertions
func (s *MemShape) MemChart() *MemChart {
	return s.chart
}

// Paragraph returns the i-th paragraph for assertions
func (s *MemShape) Paragraph(i int) *MemParagraph {
	return s.frame.paragraphs[i]
}

// ParagraphCount returns the number of paragraphs in the shape's frame
func (s *MemShape) ParagraphCount() int {
	if s.frame == nil {
		return 0
	}
	return len(s.frame.paragraphs)
}

// MemTextFrame implements deck.TextFrame
type MemTextFrame struct {
	paragraphs []*MemParagraph
}

func (f *MemTextFrame) Paragraphs() []deck.Paragraph {
	paragraphs := make([]deck.Paragraph, len(f.paragraphs))
	for i, p := range f.paragraphs {
		paragraphs[i] = p
	}
	return paragraphs
}

func (f *MemTextFrame) AddParagraph() deck.Paragraph {
	p := &MemParagraph{}
	f.paragraphs = append(f.paragraphs, p)
	return p
}

// MemParagraph implements deck.Paragraph
type MemParagraph struct {
	runs      []*MemRun
	text      string
	font      deck.Font
	alignment deck.Alignment
}

func (p *MemParagraph) Runs() []deck.Run {
	runs := make([]deck.Run, len(p.runs))
	for i, r := range p.runs {
		runs[i] = r
	}
	return runs
}

func (p *MemParagraph) SetText(text string) {
	p.text = text
}

func (p *MemParagraph) SetFont(font deck.Font) {
	p.font = font
}

func (p *MemParagraph) SetAlignment(alignment deck.Alignment) {
	p.alignment = alignment
}

// CurrentText returns the paragraph's visible text: the concatenated runs
// when present, the paragraph-level text otherwise
func (p *MemParagraph) CurrentText() string {
	if len(p.runs) == 0 {
		return p.text
	}
	var b strings.Builder
	for _, r := range p.runs {
		b.WriteString(r.text)
	}
	return b.String()
}

// Font returns the paragraph-level font for assertions
func (p *MemParagraph) Font() deck.Font {
	return p.font
}

// Alignment returns the paragraph alignment for assertions
func (p *MemParagraph) Alignment() deck.Alignment {
	return p.alignment
}

// Run returns the i-th run for assertions
func (p *MemParagraph) Run(i int) *MemRun {
	return p.runs[i]
}

// MemRun implements deck.Run
type MemRun struct {
	text string
	font deck.Font
}

func (r *MemRun) SetText(text string) {
	r.text = text
}

func (r *MemRun) SetFont(font deck.Font) {
	r.font = font
}

// Text returns the run's text for assertions
func (r *MemRun) Text() string {
	return r.text
}

// Font returns the run's font for assertions
func (r *MemRun) Font() deck.Font {
	return r.font
}

// MemChart implements deck.Chart
type MemChart struct {
	categories []string
	series     []deck.Series
	tickFont   deck.Font
	replaceErr error
}

// FailReplace makes the next ReplaceData call return err
func (c *MemChart) FailReplace(err error) {
	c.replaceErr = err
}

func (c *MemChart) ReplaceData(categories []string, series []deck.Series) error {
	if c.replaceErr != nil {
		return c.replaceErr
	}
	c.categories = categories
	c.series = series
	return nil
}

func (c *MemChart) SetCategoryTickLabelFont(font deck.Font) error {
	c.tickFont = font
	return nil
}

// Categories returns the recorded categories for assertions
func (c *MemChart) Categories() []string {
	return c.categories
}

// SeriesData returns the recorded series for assertions
func (c *MemChart) SeriesData() []deck.Series {
	return c.series
}

// TickLabelFont returns the recorded tick-label font for assertions
func (c *MemChart) TickLabelFont() deck.Font {
	return c.tickFont
}
