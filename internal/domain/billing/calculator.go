// Package billing derives a client's monthly bill, before and after the
// proposed discount, from the tariff model and the client's consumption
// parameters. Calculations are pure and synchronous; the calculator holds no
// mutable state.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/luminapower/propdeck/internal/domain/tariff"
)

var oneHundred = decimal.NewFromInt(100)

// Calculator applies a tariff model to client consumption parameters
type Calculator struct {
	rates tariff.Rates
}

// NewCalculator creates a calculator for the given tariff model
func NewCalculator(model tariff.Model) *Calculator {
	return &Calculator{rates: model.DeriveRates()}
}

// Rates exposes the derived billing rates the calculator operates with
func (c *Calculator) Rates() tariff.Rates {
	return c.rates
}

// ComputeBefore calculates the bill the client pays the utility today.
//
// Consumption below the aggregate allowance (unit_count * 100 kWh) yields a
// negative energy cost and taxes, representing net injection credit. That is
// intentional domain behavior, not an error.
func (c *Calculator) ComputeBefore(input ClientInput) (BillBreakdown, error) {
	if err := input.ConnectionType.Validate(); err != nil {
		return BillBreakdown{}, err
	}

	unitCount := decimal.NewFromInt(int64(input.UnitCount))
	compensable := input.MonthlyConsumptionKWh.Sub(unitCount.Mul(oneHundred))

	energyCost := compensable.Mul(c.rates.RealInjected)
	minimumCost := input.ConnectionType.BaseAllowanceKWh().
		Mul(unitCount).
		Mul(c.rates.Supplied)
	taxes := compensable.Mul(c.rates.NonOffsettable)

	total := energyCost.
		Add(minimumCost).
		Add(input.PublicIlluminationCost).
		Add(taxes)

	return BillBreakdown{
		EnergyCost:             energyCost,
		MinimumCost:            minimumCost,
		PublicIlluminationCost: input.PublicIlluminationCost,
		Taxes:                  taxes,
		Total:                  total,
	}, nil
}

// ComputeAfter calculates the bill under the proposed discount. Only the
// energy cost is discounted; taxes, minimum cost and public illumination are
// carried over unchanged and the total is recomputed.
func (c *Calculator) ComputeAfter(before BillBreakdown, discountPercent decimal.Decimal) BillBreakdown {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
	discountedEnergy := before.EnergyCost.Mul(factor)

	total := before.Taxes.
		Add(before.PublicIlluminationCost).
		Add(before.MinimumCost).
		Add(discountedEnergy)

	return BillBreakdown{
		EnergyCost:             discountedEnergy,
		MinimumCost:            before.MinimumCost,
		PublicIlluminationCost: before.PublicIlluminationCost,
		Taxes:                  before.Taxes,
		Total:                  total,
	}
}
