package deck

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/luminapower/propdeck/internal/domain/billing"
	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/logger"
)

const snippetLength = 20

// Report aggregates the per-shape outcome of a resolution pass. A malformed
// shape never aborts the batch; it is recorded here and processing continues.
type Report struct {
	UpdatedShapes int            `json:"updated_shapes"`
	SkippedShapes []SkippedShape `json:"skipped_shapes,omitempty"`
}

// SkippedShape records a shape that matched a placeholder but could not be
// updated, with enough context to locate it in the template
type SkippedShape struct {
	SlideIndex int    `json:"slide_index"`
	ShapeIndex int    `json:"shape_index"`
	Snippet    string `json:"snippet"`
	Reason     string `json:"reason"`
}

// Resolver walks a document's shapes, matches their text against the
// placeholder catalog and rewrites matched shapes in place
type Resolver struct {
	rules []PlaceholderRule
	log   *logger.Logger
	now   func() time.Time
}

// NewResolver creates a resolver over the fixed placeholder catalog. The
// clock is injectable so the date placeholder renders deterministically in
// tests; nil defaults to time.Now.
func NewResolver(log *logger.Logger, now func() time.Time) *Resolver {
	return NewResolverWithRules(Catalog(), log, now)
}

// NewResolverWithRules creates a resolver over a custom rule table, for
// templates that diverge from the standard commercial deck. Rules are
// matched in the order given.
func NewResolverWithRules(rules []PlaceholderRule, log *logger.Logger, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{
		rules: rules,
		log:   log,
		now:   now,
	}
}

// ResolveAll processes every shape of every slide in document order. Shapes
// whose trimmed text matches no catalog pattern are left untouched. The
// document is mutated in place; the returned report lists what was updated
// and what was skipped.
func (r *Resolver) ResolveAll(doc Document, input billing.ClientInput, before, after billing.BillBreakdown) *Report {
	report := &Report{}

	for slideIndex, slide := range doc.Slides() {
		for shapeIndex, shape := range slide.Shapes() {
			if !shape.IsTextBox() {
				continue
			}

			text := strings.TrimSpace(shape.Text())
			rule, ok := r.match(text)
			if !ok {
				continue
			}

			if err := r.apply(shape, rule, input, before, after); err != nil {
				report.SkippedShapes = append(report.SkippedShapes, SkippedShape{
					SlideIndex: slideIndex,
					ShapeIndex: shapeIndex,
					Snippet:    snippet(text),
					Reason:     err.Error(),
				})
				r.log.Warnw("skipping malformed shape",
					"slide_index", slideIndex,
					"shape_index", shapeIndex,
					"snippet", snippet(text),
					"error", err)
				continue
			}

			report.UpdatedShapes++
		}
	}

	return report
}

// match returns the first catalog rule whose pattern is a prefix of text.
// The catalog orders longer patterns first, so the match is deterministic
// even across overlapping sentinel prefixes.
func (r *Resolver) match(text string) (PlaceholderRule, bool) {
	for _, rule := range r.rules {
		if strings.HasPrefix(text, rule.Pattern) {
			return rule, true
		}
	}
	return PlaceholderRule{}, false
}

func (r *Resolver) apply(shape Shape, rule PlaceholderRule, input billing.ClientInput, before, after billing.BillBreakdown) error {
	frame := shape.TextFrame()
	if frame == nil {
		return ierr.NewError("shape has no text frame").
			WithHint("The matched shape is missing its text frame").
			Mark(ierr.ErrInvalidOperation)
	}

	paragraphs := frame.Paragraphs()
	if len(paragraphs) == 0 {
		return ierr.NewError("shape has no paragraphs").
			WithHint("The matched shape's text frame holds no paragraphs").
			Mark(ierr.ErrInvalidOperation)
	}

	primary := r.renderValue(rule.Field, rule.Scale, input, before, after)
	writeParagraph(paragraphs[0], primary, Font{Name: rule.FontName, Size: rule.FontSize}, rule.Centered)

	// A second value goes into the second paragraph, which is created when
	// the shape currently holds a single line
	if rule.Secondary != nil {
		secondary := r.renderValue(rule.Secondary.Field, rule.Secondary.Scale, input, before, after)
		font := Font{Name: rule.Secondary.FontName, Size: rule.Secondary.FontSize}
		if len(paragraphs) > 1 {
			writeParagraph(paragraphs[1], secondary, font, rule.Centered)
		} else {
			p := frame.AddParagraph()
			p.SetText(secondary)
			p.SetFont(font)
			if rule.Centered {
				p.SetAlignment(AlignCenter)
			}
		}
	}

	return nil
}

// writeParagraph rewrites the paragraph's first run when one exists, which
// preserves the run's remaining visual formatting; otherwise it falls back to
// paragraph-level text and font.
func writeParagraph(p Paragraph, text string, font Font, centered bool) {
	if centered {
		p.SetAlignment(AlignCenter)
	}

	if runs := p.Runs(); len(runs) > 0 {
		runs[0].SetText(text)
		runs[0].SetFont(font)
		return
	}

	p.SetText(text)
	p.SetFont(font)
}

func (r *Resolver) renderValue(field FieldSelector, scale decimal.Decimal, input billing.ClientInput, before, after billing.BillBreakdown) string {
	switch field {
	case FieldClientName:
		return "CLIENTE: " + input.ClientName
	case FieldProposalDate:
		return "DATA: " + r.now().Format("02/01/2006")
	case FieldDiscountPercent:
		return input.DiscountPercent.String() + "%"
	}

	var value decimal.Decimal
	switch field {
	case FieldBeforeTotal:
		value = before.Total
	case FieldBeforeEnergyCost:
		value = before.EnergyCost
	case FieldBeforeMinimumCost:
		value = before.MinimumCost
	case FieldBeforePublicIllumination:
		value = before.PublicIlluminationCost
	case FieldBeforeTaxes:
		value = before.Taxes
	case FieldAfterEnergyCost:
		value = after.EnergyCost
	case FieldMonthlySavings:
		value = billing.Savings(before, after)
	}

	if !scale.IsZero() {
		value = value.Mul(scale)
	}
	return "R$ " + FormatMoneyBR(value)
}

func snippet(text string) string {
	if len(text) <= snippetLength {
		return text
	}
	return text[:snippetLength] + "..."
}
