package deck

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FieldSelector tags which computed value a placeholder renders
type FieldSelector string

const (
	FieldClientName               FieldSelector = "client_name"
	FieldProposalDate             FieldSelector = "proposal_date"
	FieldDiscountPercent          FieldSelector = "discount_percent"
	FieldBeforeTotal              FieldSelector = "before_total"
	FieldBeforeEnergyCost         FieldSelector = "before_energy_cost"
	FieldBeforeMinimumCost        FieldSelector = "before_minimum_cost"
	FieldBeforePublicIllumination FieldSelector = "before_public_illumination"
	FieldBeforeTaxes              FieldSelector = "before_taxes"
	FieldAfterEnergyCost          FieldSelector = "after_energy_cost"
	FieldMonthlySavings           FieldSelector = "monthly_savings"
)

// IsCurrency reports whether the field renders as a monetary value with the
// "R$ " literal prepended
func (f FieldSelector) IsCurrency() bool {
	switch f {
	case FieldClientName, FieldProposalDate, FieldDiscountPercent:
		return false
	default:
		return true
	}
}

// SecondaryText renders a second value into the shape's second paragraph,
// for shapes holding a label line and a value line
type SecondaryText struct {
	Field    FieldSelector
	Scale    decimal.Decimal
	FontName string
	FontSize int
}

// PlaceholderRule maps a sentinel text prefix to a render rule. Scale is a
// fixed display multiplier applied to currency fields at format time (ex the
// annual and five-year savings projections).
type PlaceholderRule struct {
	Pattern   string
	Field     FieldSelector
	Scale     decimal.Decimal
	FontName  string
	FontSize  int
	Centered  bool
	Secondary *SecondaryText
}

const (
	fontArial     = "Arial"
	fontInter     = "Inter"
	fontInterBold = "Inter Bold"
)

var (
	scaleMonthly  = decimal.NewFromInt(1)
	scaleAnnual   = decimal.NewFromInt(12)
	scaleFiveYear = decimal.NewFromInt(60)
)

// catalog is the fixed placeholder table of the commercial deck template.
// Patterns are literal prefixes of a shape's trimmed text.
var catalog = []PlaceholderRule{
	{Pattern: "CLIENTE: PPPPPP", Field: FieldClientName, FontName: fontArial, FontSize: 24},
	{Pattern: "DATA: DDDDDDD", Field: FieldProposalDate, FontName: fontArial, FontSize: 24},
	{Pattern: "XX%", Field: FieldDiscountPercent, FontName: fontInterBold, FontSize: 20, Centered: true},
	{Pattern: "YY%", Field: FieldDiscountPercent, FontName: fontInterBold, FontSize: 21, Centered: true},
	{Pattern: "R$ AAAA", Field: FieldBeforeTotal, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 26, Centered: true},
	{Pattern: "R$ AAAB", Field: FieldBeforeTotal, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 21, Centered: true},
	{Pattern: "R$ BBBB", Field: FieldBeforeMinimumCost, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 21, Centered: true},
	{Pattern: "R$ aBBa", Field: FieldBeforeMinimumCost, Scale: scaleMonthly, FontName: fontInter, FontSize: 21, Centered: true},
	{Pattern: "R$ CCCC", Field: FieldAfterEnergyCost, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 21, Centered: true},
	{Pattern: "R$ DDDD", Field: FieldMonthlySavings, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 21, Centered: true},
	{Pattern: "R$ DDDB", Field: FieldMonthlySavings, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 21, Centered: true},
	{Pattern: "R$ EEEE", Field: FieldMonthlySavings, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 37, Centered: true},
	{Pattern: "R$ EEEB", Field: FieldMonthlySavings, Scale: scaleMonthly, FontName: fontInterBold, FontSize: 21, Centered: true},
	{Pattern: "R$ FFFF", Field: FieldMonthlySavings, Scale: scaleAnnual, FontName: fontInterBold, FontSize: 37, Centered: true},
	{Pattern: "R$ GGGG", Field: FieldMonthlySavings, Scale: scaleFiveYear, FontName: fontInterBold, FontSize: 37, Centered: true},
	{Pattern: "R$ HHHH", Field: FieldBeforeEnergyCost, Scale: scaleMonthly, FontName: fontInter, FontSize: 21, Centered: true},
	{Pattern: "R$ IIII", Field: FieldBeforePublicIllumination, Scale: scaleMonthly, FontName: fontInter, FontSize: 21, Centered: true},
	{Pattern: "R$ CDCD", Field: FieldBeforeMinimumCost, Scale: scaleMonthly, FontName: fontInter, FontSize: 21, Centered: true},
	{Pattern: "R$ CICI", Field: FieldBeforeTaxes, Scale: scaleMonthly, FontName: fontInter, FontSize: 21, Centered: true},
}

// Catalog returns the placeholder rules in matching priority order. Rules are
// tried first to last and the first prefix match wins, so longer patterns are
// ordered ahead of shorter ones: a shorter pattern must never shadow a longer
// one that shares its leading characters.
func Catalog() []PlaceholderRule {
	rules := make([]PlaceholderRule, len(catalog))
	copy(rules, catalog)
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].Pattern) > len(rules[j].Pattern)
	})
	return rules
}
