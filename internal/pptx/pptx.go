// Package pptx adapts an OOXML presentation archive to the document model
// consumed by the resolver. The archive is read once, slide parts are indexed
// for text-shape edits, and serialization rebuilds the zip with every part in
// its original order.
//
// Edits are applied as targeted splices on the slide part XML rather than a
// full parse and re-marshal, so all markup the engine does not understand
// (themes, layouts, media, animations) passes through byte for byte.
package pptx

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/luminapower/propdeck/internal/domain/deck"
	ierr "github.com/luminapower/propdeck/internal/errors"
)

// Opener opens pptx archives. It is stateless; every Open call returns an
// independent document.
type Opener struct{}

func NewOpener() *Opener {
	return &Opener{}
}

type part struct {
	name  string
	data  []byte
	slide *slidePart
}

type document struct {
	parts  []*part
	slides []*slidePart
}

var slideNamePattern = regexp.MustCompile(`^ppt/slides/slide([0-9]+)\.xml$`)

// Zip headers carry a modification time; pinning it keeps repeated
// serializations of the same document byte-identical.
var archiveEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// Open parses the archive and indexes its slide parts in presentation order
func (o *Opener) Open(data []byte) (deck.Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The template is not a valid pptx archive").
			Mark(ierr.ErrValidation)
	}

	doc := &document{}
	type numberedSlide struct {
		number int
		slide  *slidePart
	}
	var slides []numberedSlide
	hasPresentation := false

	for _, file := range reader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to read a part of the pptx archive").
				WithReportableDetails(map[string]any{"part": file.Name}).
				Mark(ierr.ErrValidation)
		}

		p := &part{name: file.Name, data: content}
		if match := slideNamePattern.FindStringSubmatch(file.Name); match != nil {
			number, _ := strconv.Atoi(match[1])
			p.slide = parseSlide(content)
			slides = append(slides, numberedSlide{number: number, slide: p.slide})
		}
		if file.Name == "ppt/presentation.xml" {
			hasPresentation = true
		}
		doc.parts = append(doc.parts, p)
	}

	if !hasPresentation {
		return nil, ierr.NewError("archive does not contain a presentation part").
			WithHint("The template must be a PowerPoint (.pptx) file").
			Mark(ierr.ErrValidation)
	}

	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })
	for _, s := range slides {
		doc.slides = append(doc.slides, s.slide)
	}

	return doc, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (d *document) Slides() []deck.Slide {
	return lo.Map(d.slides, func(s *slidePart, _ int) deck.Slide {
		return s
	})
}

// Serialize rebuilds the archive. Parts keep their original order; slide
// parts with pending edits are re-rendered, everything else is copied as is.
func (d *document) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, p := range d.parts {
		header := &zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: archiveEpoch,
		}
		w, err := writer.CreateHeader(header)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to write the rendered deck archive").
				WithReportableDetails(map[string]any{"part": p.name}).
				Mark(ierr.ErrInternal)
		}

		content := p.data
		if p.slide != nil {
			content = p.slide.render()
		}
		if _, err := w.Write(content); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to write the rendered deck archive").
				WithReportableDetails(map[string]any{"part": p.name}).
				Mark(ierr.ErrInternal)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to finalize the rendered deck archive").
			Mark(ierr.ErrInternal)
	}
	return buf.Bytes(), nil
}
