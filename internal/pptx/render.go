package pptx

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/luminapower/propdeck/internal/domain/deck"
)

// Font sizes are stored in hundredths of a point in drawingml
const sizeUnitsPerPoint = 100

type splice struct {
	start, end int
	repl       []byte
}

// applySplices rewrites raw with every splice applied. Insertions at the
// same offset keep their append order, so callers control element order.
func applySplices(raw []byte, splices []splice) []byte {
	sort.SliceStable(splices, func(i, j int) bool { return splices[i].start < splices[j].start })
	var out bytes.Buffer
	pos := 0
	for _, s := range splices {
		out.Write(raw[pos:s.start])
		out.Write(s.repl)
		pos = s.end
	}
	out.Write(raw[pos:])
	return out.Bytes()
}

// render produces the slide XML with all pending edits applied. Untouched
// slides come back as the original bytes.
func (s *slidePart) render() []byte {
	var splices []splice
	for _, shape := range s.shapes {
		if shape.frame == nil {
			continue
		}
		frame := shape.frame
		for _, para := range frame.paras {
			splices = append(splices, para.splices()...)
		}
		if len(frame.added) > 0 {
			var buf bytes.Buffer
			for _, para := range frame.added {
				buf.Write(para.renderNew())
			}
			at := frame.end - len("</p:txBody>")
			splices = append(splices, splice{start: at, end: at, repl: buf.Bytes()})
		}
	}
	if len(splices) == 0 {
		return s.raw
	}
	return applySplices(s.raw, splices)
}

// splices returns the edits pending on an existing paragraph. The alignment
// edit targets the pPr region ahead of the runs, so the splices never overlap.
func (p *paraNode) splices() []splice {
	var out []splice
	if p.align != nil && *p.align == deck.AlignCenter {
		out = append(out, p.alignSplice())
	}
	for _, r := range p.runs {
		if r.newText == nil && r.newFont == nil {
			continue
		}
		out = append(out, splice{
			start: r.start,
			end:   r.end,
			repl:  renderRun(p.slide.raw[r.start:r.end], r.newText, r.newFont),
		})
	}
	// Paragraph-level text and font land in a fresh run; the resolver only
	// writes at this level when the paragraph has no run to inherit from
	if p.newText != nil || p.newFont != nil {
		out = append(out, p.insertRunSplice())
	}
	return out
}

func (p *paraNode) alignSplice() splice {
	raw := p.slide.raw
	if i := indexFrom(raw, p.start, "<a:pPr"); i >= 0 && i < p.end {
		j := indexFrom(raw, i, ">") + 1
		return splice{start: i, end: j, repl: setAttr(raw[i:j], "algn", "ctr")}
	}
	at := p.start + len("<a:p>")
	return splice{start: at, end: at, repl: []byte(`<a:pPr algn="ctr"/>`)}
}

func (p *paraNode) insertRunSplice() splice {
	raw := p.slide.raw
	at := p.end - len("</a:p>")
	if i := indexFrom(raw, p.start, "<a:endParaRPr"); i >= 0 && i < p.end {
		at = i
	}
	text := ""
	if p.newText != nil {
		text = *p.newText
	}
	return splice{start: at, end: at, repl: renderNewRun(text, p.newFont)}
}

// renderNew builds the XML for a paragraph created through AddParagraph
func (p *paraNode) renderNew() []byte {
	var buf bytes.Buffer
	buf.WriteString("<a:p>")
	if p.align != nil && *p.align == deck.AlignCenter {
		buf.WriteString(`<a:pPr algn="ctr"/>`)
	}
	if p.newText != nil || p.newFont != nil {
		text := ""
		if p.newText != nil {
			text = *p.newText
		}
		buf.Write(renderNewRun(text, p.newFont))
	}
	buf.WriteString("</a:p>")
	return buf.Bytes()
}

func renderNewRun(text string, font *deck.Font) []byte {
	var buf bytes.Buffer
	buf.WriteString("<a:r>")
	if font != nil {
		fmt.Fprintf(&buf, `<a:rPr lang="pt-BR" sz="%d" dirty="0"><a:latin typeface="%s"/></a:rPr>`,
			font.Size*sizeUnitsPerPoint, font.Name)
	}
	buf.WriteString("<a:t>")
	buf.WriteString(escapeText(text))
	buf.WriteString("</a:t></a:r>")
	return buf.Bytes()
}

func renderRun(segment []byte, newText *string, font *deck.Font) []byte {
	out := append([]byte(nil), segment...)
	if font != nil {
		out = setRunFont(out, *font)
	}
	if newText != nil {
		out = setRunText(out, *newText)
	}
	return out
}

func setRunText(segment []byte, text string) []byte {
	escaped := escapeText(text)

	if start := bytes.Index(segment, []byte("<a:t>")); start >= 0 {
		start += len("<a:t>")
		end := indexFrom(segment, start, "</a:t>")
		if end >= 0 {
			return applySplices(segment, []splice{{start: start, end: end, repl: []byte(escaped)}})
		}
	}
	if i := bytes.Index(segment, []byte("<a:t/>")); i >= 0 {
		repl := []byte("<a:t>" + escaped + "</a:t>")
		return applySplices(segment, []splice{{start: i, end: i + len("<a:t/>"), repl: repl}})
	}
	at := len(segment) - len("</a:r>")
	return applySplices(segment, []splice{{start: at, end: at, repl: []byte("<a:t>" + escaped + "</a:t>")}})
}

// setRunFont rewrites the run's sz attribute and latin typeface, leaving the
// rest of the run properties in place
func setRunFont(segment []byte, font deck.Font) []byte {
	size := strconv.Itoa(font.Size * sizeUnitsPerPoint)
	latin := []byte(`<a:latin typeface="` + font.Name + `"/>`)

	start := bytes.Index(segment, []byte("<a:rPr"))
	if start < 0 {
		repl := append([]byte(`<a:rPr lang="pt-BR" sz="`+size+`">`), latin...)
		repl = append(repl, []byte("</a:rPr>")...)
		at := len("<a:r>")
		return applySplices(segment, []splice{{start: at, end: at, repl: repl}})
	}

	tagEnd := indexFrom(segment, start, ">") + 1
	tag := setAttr(segment[start:tagEnd], "sz", size)

	if bytes.HasSuffix(tag, []byte("/>")) {
		repl := append(bytes.TrimSuffix(tag, []byte("/>")), '>')
		repl = append(repl, latin...)
		repl = append(repl, []byte("</a:rPr>")...)
		return applySplices(segment, []splice{{start: start, end: tagEnd, repl: repl}})
	}

	closeAt := indexFrom(segment, tagEnd, "</a:rPr>")
	splices := []splice{{start: start, end: tagEnd, repl: tag}}
	if i := indexFrom(segment, tagEnd, "<a:latin"); i >= 0 && i < closeAt {
		j := indexFrom(segment, i, ">") + 1
		splices = append(splices, splice{start: i, end: j, repl: setAttr(segment[i:j], "typeface", font.Name)})
	} else {
		splices = append(splices, splice{start: closeAt, end: closeAt, repl: latin})
	}
	return applySplices(segment, splices)
}

// setAttr replaces or inserts an attribute on a single XML open tag
func setAttr(tag []byte, name, value string) []byte {
	needle := []byte(" " + name + `="`)
	if i := bytes.Index(tag, needle); i >= 0 {
		valueStart := i + len(needle)
		valueEnd := valueStart + bytes.IndexByte(tag[valueStart:], '"')
		return applySplices(tag, []splice{{start: valueStart, end: valueEnd, repl: []byte(value)}})
	}

	attr := []byte(` ` + name + `="` + value + `"`)
	at := len(tag) - 1
	if bytes.HasSuffix(tag, []byte("/>")) {
		at = len(tag) - 2
	}
	return applySplices(tag, []splice{{start: at, end: at, repl: attr}})
}

var (
	textEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	textUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

func escapeText(text string) string {
	return textEscaper.Replace(text)
}

func unescapeText(text string) string {
	return textUnescaper.Replace(text)
}
