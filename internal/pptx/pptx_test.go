package pptx_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminapower/propdeck/internal/domain/billing"
	"github.com/luminapower/propdeck/internal/domain/deck"
	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/logger"
	"github.com/luminapower/propdeck/internal/pptx"
	"github.com/luminapower/propdeck/internal/types"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`

const presentationXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`

// Slide with a placeholder run, a run-less paragraph and a plain (non
// text-box) shape.
const slide1XML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld><p:spTree><p:sp><p:nvSpPr><p:cNvPr id="2" name="Savings"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="pt-BR" sz="1800" b="1"/><a:t>R$ EEEE</a:t></a:r></a:p></p:txBody></p:sp><p:sp><p:nvSpPr><p:cNvPr id="3" name="Empty"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:txBody><a:bodyPr/><a:p><a:endParaRPr lang="pt-BR"/></a:p></p:txBody></p:sp><p:sp><p:nvSpPr><p:cNvPr id="4" name="Label"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:txBody><a:bodyPr/><a:p><a:r><a:rPr lang="pt-BR"/><a:t>Energia &amp; Sol</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`

type archivePart struct {
	name string
	data string
}

func buildArchive(t *testing.T, parts []archivePart) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, p := range parts {
		f, err := w.Create(p.name)
		require.NoError(t, err)
		_, err = f.Write([]byte(p.data))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func templateArchive(t *testing.T) []byte {
	t.Helper()
	return buildArchive(t, []archivePart{
		{name: "[Content_Types].xml", data: contentTypesXML},
		{name: "ppt/presentation.xml", data: presentationXML},
		{name: "ppt/slides/slide1.xml", data: slide1XML},
	})
}

func partContent(t *testing.T, archive []byte, name string) string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatalf("part %s not found in archive", name)
	return ""
}

func TestOpenRejectsNonArchive(t *testing.T) {
	opener := pptx.NewOpener()

	doc, err := opener.Open([]byte("definitely not a zip archive"))

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestOpenRequiresPresentationPart(t *testing.T) {
	opener := pptx.NewOpener()
	archive := buildArchive(t, []archivePart{
		{name: "[Content_Types].xml", data: contentTypesXML},
	})

	doc, err := opener.Open(archive)

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestOpenParsesShapes(t *testing.T) {
	opener := pptx.NewOpener()

	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	slides := doc.Slides()
	require.Len(t, slides, 1)

	shapes := slides[0].Shapes()
	require.Len(t, shapes, 3)

	assert.True(t, shapes[0].IsTextBox())
	assert.Equal(t, "R$ EEEE", shapes[0].Text())

	assert.True(t, shapes[1].IsTextBox())
	assert.Equal(t, "", shapes[1].Text())

	assert.False(t, shapes[2].IsTextBox())
	assert.Equal(t, "Energia & Sol", shapes[2].Text())
}

func TestRunEditRoundTrip(t *testing.T) {
	opener := pptx.NewOpener()
	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	shape := doc.Slides()[0].Shapes()[0]
	para := shape.TextFrame().Paragraphs()[0]
	para.SetAlignment(deck.AlignCenter)
	run := para.Runs()[0]
	run.SetText("R$ 8.985,60")
	run.SetFont(deck.Font{Name: "Inter Bold", Size: 37})

	rendered, err := doc.Serialize()
	require.NoError(t, err)

	slideXML := partContent(t, rendered, "ppt/slides/slide1.xml")
	assert.Contains(t, slideXML, `sz="3700"`)
	assert.Contains(t, slideXML, `<a:latin typeface="Inter Bold"/>`)
	assert.Contains(t, slideXML, `<a:pPr algn="ctr"/>`)
	assert.Contains(t, slideXML, "<a:t>R$ 8.985,60</a:t>")
	assert.NotContains(t, slideXML, "R$ EEEE")
	// The run's other properties survive the edit
	assert.Contains(t, slideXML, `b="1"`)

	reopened, err := opener.Open(rendered)
	require.NoError(t, err)
	assert.Equal(t, "R$ 8.985,60", reopened.Slides()[0].Shapes()[0].Text())
}

func TestParagraphLevelEdit(t *testing.T) {
	opener := pptx.NewOpener()
	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	para := doc.Slides()[0].Shapes()[1].TextFrame().Paragraphs()[0]
	require.Empty(t, para.Runs())
	para.SetAlignment(deck.AlignCenter)
	para.SetText("R$ 95,03")
	para.SetFont(deck.Font{Name: "Inter", Size: 21})

	rendered, err := doc.Serialize()
	require.NoError(t, err)

	slideXML := partContent(t, rendered, "ppt/slides/slide1.xml")
	assert.Contains(t, slideXML, `sz="2100"`)
	assert.Contains(t, slideXML, `<a:latin typeface="Inter"/>`)
	assert.Contains(t, slideXML, "<a:t>R$ 95,03</a:t>")
	// The new run lands ahead of the paragraph's closing properties
	runAt := bytes.Index([]byte(slideXML), []byte("<a:t>R$ 95,03</a:t>"))
	endAt := bytes.Index([]byte(slideXML), []byte("<a:endParaRPr"))
	assert.Less(t, runAt, endAt)

	reopened, err := opener.Open(rendered)
	require.NoError(t, err)
	assert.Equal(t, "R$ 95,03", reopened.Slides()[0].Shapes()[1].Text())
}

func TestAddParagraph(t *testing.T) {
	opener := pptx.NewOpener()
	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	frame := doc.Slides()[0].Shapes()[0].TextFrame()
	para := frame.AddParagraph()
	para.SetText("R$ 149,76")
	para.SetFont(deck.Font{Name: "Inter Bold", Size: 21})
	para.SetAlignment(deck.AlignCenter)

	require.Len(t, frame.Paragraphs(), 2)

	rendered, err := doc.Serialize()
	require.NoError(t, err)

	reopened, err := opener.Open(rendered)
	require.NoError(t, err)
	assert.Equal(t, "R$ EEEE\nR$ 149,76", reopened.Slides()[0].Shapes()[0].Text())
}

func TestEditedTextIsEscaped(t *testing.T) {
	opener := pptx.NewOpener()
	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	doc.Slides()[0].Shapes()[0].TextFrame().Paragraphs()[0].Runs()[0].SetText("CLIENTE: P&G <Brasil>")

	rendered, err := doc.Serialize()
	require.NoError(t, err)

	slideXML := partContent(t, rendered, "ppt/slides/slide1.xml")
	assert.Contains(t, slideXML, "<a:t>CLIENTE: P&amp;G &lt;Brasil&gt;</a:t>")

	reopened, err := opener.Open(rendered)
	require.NoError(t, err)
	assert.Equal(t, "CLIENTE: P&G <Brasil>", reopened.Slides()[0].Shapes()[0].Text())
}

func TestSerializeIsDeterministic(t *testing.T) {
	opener := pptx.NewOpener()
	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	doc.Slides()[0].Shapes()[0].TextFrame().Paragraphs()[0].Runs()[0].SetText("R$ 980,30")

	first, err := doc.Serialize()
	require.NoError(t, err)
	second, err := doc.Serialize()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUntouchedPartsPassThrough(t *testing.T) {
	opener := pptx.NewOpener()
	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	rendered, err := doc.Serialize()
	require.NoError(t, err)

	assert.Equal(t, contentTypesXML, partContent(t, rendered, "[Content_Types].xml"))
	assert.Equal(t, presentationXML, partContent(t, rendered, "ppt/presentation.xml"))
	assert.Equal(t, slide1XML, partContent(t, rendered, "ppt/slides/slide1.xml"))
}

func TestResolverRendersPlaceholderShape(t *testing.T) {
	opener := pptx.NewOpener()
	doc, err := opener.Open(templateArchive(t))
	require.NoError(t, err)

	input := billing.ClientInput{
		ClientName:            "Condominio Aurora",
		DiscountPercent:       decimal.NewFromInt(20),
		ConnectionType:        types.ConnectionTypeThreePhase,
		MonthlyConsumptionKWh: decimal.NewFromInt(1000),
		UnitCount:             1,
	}
	before := billing.BillBreakdown{Total: decimal.NewFromFloat(980.30)}
	after := billing.BillBreakdown{Total: decimal.NewFromFloat(830.54)}

	resolver := deck.NewResolver(logger.GetLogger(), func() time.Time {
		return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	})
	report := resolver.ResolveAll(doc, input, before, after)

	assert.Equal(t, 1, report.UpdatedShapes)
	assert.Empty(t, report.SkippedShapes)

	rendered, err := doc.Serialize()
	require.NoError(t, err)

	reopened, err := opener.Open(rendered)
	require.NoError(t, err)
	assert.Equal(t, "R$ 149,76", reopened.Slides()[0].Shapes()[0].Text())
}
