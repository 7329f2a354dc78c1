package pptx

import (
	"bytes"
	"strings"

	"github.com/samber/lo"

	"github.com/luminapower/propdeck/internal/domain/deck"
)

// slidePart is one parsed slide XML part. The raw bytes stay authoritative;
// nodes hold absolute offsets into raw plus any pending edits, and render
// applies the edits as splices.
type slidePart struct {
	raw    []byte
	shapes []*shapeNode
}

type shapeNode struct {
	slide      *slidePart
	start, end int
	textBox    bool
	frame      *frameNode
}

type frameNode struct {
	slide      *slidePart
	start, end int
	paras      []*paraNode
	added      []*paraNode
}

type paraNode struct {
	slide      *slidePart
	start, end int
	runs       []*runNode

	newText *string
	newFont *deck.Font
	align   *deck.Alignment
}

type runNode struct {
	slide      *slidePart
	start, end int

	newText *string
	newFont *deck.Font
}

func parseSlide(raw []byte) *slidePart {
	slide := &slidePart{raw: raw}
	pos := 0
	for {
		start := indexFrom(raw, pos, "<p:sp>")
		if start < 0 {
			break
		}
		end := indexFrom(raw, start, "</p:sp>")
		if end < 0 {
			break
		}
		end += len("</p:sp>")
		slide.shapes = append(slide.shapes, parseShape(slide, start, end))
		pos = end
	}
	return slide
}

func parseShape(slide *slidePart, start, end int) *shapeNode {
	shape := &shapeNode{slide: slide, start: start, end: end}
	shape.textBox = bytes.Contains(slide.raw[start:end], []byte(`txBox="1"`))

	bodyStart := indexFrom(slide.raw, start, "<p:txBody>")
	if bodyStart < 0 || bodyStart >= end {
		return shape
	}
	bodyEnd := indexFrom(slide.raw, bodyStart, "</p:txBody>")
	if bodyEnd < 0 || bodyEnd >= end {
		return shape
	}
	bodyEnd += len("</p:txBody>")

	frame := &frameNode{slide: slide, start: bodyStart, end: bodyEnd}
	pos := bodyStart
	for {
		pStart := indexFrom(slide.raw, pos, "<a:p>")
		if pStart < 0 || pStart >= bodyEnd {
			break
		}
		pEnd := indexFrom(slide.raw, pStart, "</a:p>")
		if pEnd < 0 || pEnd >= bodyEnd {
			break
		}
		pEnd += len("</a:p>")
		frame.paras = append(frame.paras, parseParagraph(slide, pStart, pEnd))
		pos = pEnd
	}
	shape.frame = frame
	return shape
}

func parseParagraph(slide *slidePart, start, end int) *paraNode {
	para := &paraNode{slide: slide, start: start, end: end}
	pos := start
	for {
		rStart := indexFrom(slide.raw, pos, "<a:r>")
		if rStart < 0 || rStart >= end {
			break
		}
		rEnd := indexFrom(slide.raw, rStart, "</a:r>")
		if rEnd < 0 || rEnd >= end {
			break
		}
		rEnd += len("</a:r>")
		para.runs = append(para.runs, &runNode{slide: slide, start: rStart, end: rEnd})
		pos = rEnd
	}
	return para
}

func indexFrom(raw []byte, from int, sub string) int {
	i := bytes.Index(raw[from:], []byte(sub))
	if i < 0 {
		return -1
	}
	return from + i
}

// extractText concatenates the contents of every <a:t> element in the
// segment, which covers runs and field placeholders alike
func extractText(segment []byte) string {
	var builder strings.Builder
	pos := 0
	for {
		start := indexFrom(segment, pos, "<a:t>")
		if start < 0 {
			break
		}
		start += len("<a:t>")
		end := indexFrom(segment, start, "</a:t>")
		if end < 0 {
			break
		}
		builder.WriteString(unescapeText(string(segment[start:end])))
		pos = end + len("</a:t>")
	}
	return builder.String()
}

// deck.Slide

func (s *slidePart) Shapes() []deck.Shape {
	return lo.Map(s.shapes, func(n *shapeNode, _ int) deck.Shape {
		return n
	})
}

// deck.Shape

func (s *shapeNode) IsTextBox() bool {
	return s.textBox
}

func (s *shapeNode) Text() string {
	if s.frame == nil {
		return ""
	}
	lines := make([]string, 0, len(s.frame.paras))
	for _, p := range s.frame.paras {
		lines = append(lines, extractText(s.slide.raw[p.start:p.end]))
	}
	return strings.Join(lines, "\n")
}

func (s *shapeNode) TextFrame() deck.TextFrame {
	if s.frame == nil {
		return nil
	}
	return s.frame
}

// Chart shapes live in graphic frames, which this adapter does not edit
func (s *shapeNode) HasChart() bool {
	return false
}

func (s *shapeNode) Chart() deck.Chart {
	return nil
}

// deck.TextFrame

func (f *frameNode) Paragraphs() []deck.Paragraph {
	paras := make([]deck.Paragraph, 0, len(f.paras)+len(f.added))
	for _, p := range f.paras {
		paras = append(paras, p)
	}
	for _, p := range f.added {
		paras = append(paras, p)
	}
	return paras
}

func (f *frameNode) AddParagraph() deck.Paragraph {
	para := &paraNode{slide: f.slide}
	f.added = append(f.added, para)
	return para
}

// deck.Paragraph

func (p *paraNode) Runs() []deck.Run {
	return lo.Map(p.runs, func(r *runNode, _ int) deck.Run {
		return r
	})
}

func (p *paraNode) SetText(text string) {
	p.newText = &text
}

func (p *paraNode) SetFont(font deck.Font) {
	p.newFont = &font
}

func (p *paraNode) SetAlignment(alignment deck.Alignment) {
	p.align = &alignment
}

// deck.Run

func (r *runNode) SetText(text string) {
	r.newText = &text
}

func (r *runNode) SetFont(font deck.Font) {
	r.newFont = &font
}
