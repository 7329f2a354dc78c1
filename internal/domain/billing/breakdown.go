package billing

import "github.com/shopspring/decimal"

// BillBreakdown is the structured monthly bill produced by the calculator.
// Values are kept at full precision; currency rounding happens only at
// formatting time.
type BillBreakdown struct {
	// EnergyCost is the compensable consumption priced at the real injected
	// tariff. Negative when the client injects more than it consumes.
	EnergyCost decimal.Decimal `json:"energy_cost"`

	// MinimumCost is the availability charge the utility always bills
	MinimumCost decimal.Decimal `json:"minimum_cost"`

	// PublicIlluminationCost is the fixed municipal lighting charge
	PublicIlluminationCost decimal.Decimal `json:"public_illumination_cost"`

	// Taxes is the non-offsettable tax portion on compensable consumption
	Taxes decimal.Decimal `json:"taxes"`

	// Total is the sum of all components
	Total decimal.Decimal `json:"total"`
}

// Savings is the monthly difference between the bill before and after the
// proposed discount. Annual and five-year projections are fixed display
// multiples applied at format time, not stored fields.
func Savings(before, after BillBreakdown) decimal.Decimal {
	return before.Total.Sub(after.Total)
}
