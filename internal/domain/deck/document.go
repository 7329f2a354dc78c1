// Package deck contains the placeholder-resolution engine: it locates
// sentinel text fragments inside a presentation's shapes and rewrites them
// with formatted values while preserving visual formatting.
//
// The presentation document model itself is an external collaborator. The
// package only consumes the narrow capability below; opening a binary deck
// and serializing it back is the adapter's concern.
package deck

// Alignment is the horizontal paragraph alignment
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// Font describes the typeface applied to a run or paragraph
type Font struct {
	Name string
	Size int // points
}

// Document is an open presentation, mutable in place and serializable back
// to bytes. A document instance is exclusively owned by a single render call
// for its duration.
type Document interface {
	Slides() []Slide
	Serialize() ([]byte, error)
}

// Opener opens a presentation from its binary form. Each call must return an
// independent document instance; concurrent renders never share one.
type Opener interface {
	Open(data []byte) (Document, error)
}

// Slide exposes its shapes in collection order
type Slide interface {
	Shapes() []Shape
}

// Shape is a mutable text container. The resolver treats it as opaque except
// for reading its current text and writing text, font and alignment back.
type Shape interface {
	// IsTextBox reports whether the shape is a pure text container
	IsTextBox() bool

	// Text returns the shape's full current text across all paragraphs
	Text() string

	// TextFrame returns the shape's text frame, nil if the shape has none
	TextFrame() TextFrame

	// HasChart reports whether the shape hosts a chart
	HasChart() bool

	// Chart returns the hosted chart, nil if HasChart is false
	Chart() Chart
}

// TextFrame holds the shape's paragraphs
type TextFrame interface {
	Paragraphs() []Paragraph

	// AddParagraph appends an empty paragraph and returns it
	AddParagraph() Paragraph
}

// Paragraph holds zero or more runs. SetText and SetFont operate at the
// paragraph level and are used when no run exists to inherit formatting from.
type Paragraph interface {
	Runs() []Run
	SetText(text string)
	SetFont(font Font)
	SetAlignment(alignment Alignment)
}

// Run is a contiguous stretch of uniformly formatted text
type Run interface {
	SetText(text string)
	SetFont(font Font)
}

// Series is one data series of a category chart
type Series struct {
	Name   string
	Values []float64
}

// Chart is a category chart whose data can be replaced wholesale
type Chart interface {
	ReplaceData(categories []string, series []Series) error
	SetCategoryTickLabelFont(font Font) error
}
