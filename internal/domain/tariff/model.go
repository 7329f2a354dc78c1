// Package tariff provides the domain model for utility tariff constants and
// the rates derived from them. All derived values are pure functions of the
// four base constants; the model holds no mutable state.
package tariff

import (
	"github.com/shopspring/decimal"

	ierr "github.com/luminapower/propdeck/internal/errors"
)

// tariffScale is the precision the utility publishes tariffs at
const tariffScale = 4

// Model holds the base tariff constants for a distribution utility.
// EnergyRate is the TE component, DistributionRate the TUSD component;
// ICMSRate and PISCofinsRate are the tax rates applied on top.
type Model struct {
	EnergyRate       decimal.Decimal
	DistributionRate decimal.Decimal
	ICMSRate         decimal.Decimal
	PISCofinsRate    decimal.Decimal
}

// Rates are the four billing rates derived from the base constants.
//
// The rounding mix is deliberate and must not be "fixed": Supplied and
// RealInjected are rounded to 4 places before use, while Applied and
// SharedInjected stay unrounded. Downstream bill totals are calibrated
// against exactly this behavior.
type Rates struct {
	// Applied is the raw tariff without taxes (TE + TUSD), unrounded
	Applied decimal.Decimal

	// Supplied is the tariff with taxes grossed up, rounded to 4 places
	Supplied decimal.Decimal

	// SharedInjected is the compensation rate for shared injected energy,
	// unrounded
	SharedInjected decimal.Decimal

	// RealInjected is SharedInjected rounded to 4 places
	RealInjected decimal.Decimal

	// NonOffsettable is the tax portion that cannot be offset by injected
	// energy: Supplied - RealInjected
	NonOffsettable decimal.Decimal
}

// NewModel creates a tariff model from the base constants.
// Invalid constants are a configuration error, not a runtime condition.
func NewModel(energyRate, distributionRate, icmsRate, pisCofinsRate decimal.Decimal) (Model, error) {
	m := Model{
		EnergyRate:       energyRate,
		DistributionRate: distributionRate,
		ICMSRate:         icmsRate,
		PISCofinsRate:    pisCofinsRate,
	}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Validate checks the constants describe a usable tariff regime
func (m Model) Validate() error {
	if !m.EnergyRate.IsPositive() || !m.DistributionRate.IsPositive() {
		return ierr.NewError("base tariff rates must be positive").
			WithHint("Energy and distribution rates must be positive").
			WithReportableDetails(map[string]any{
				"energy_rate":       m.EnergyRate.String(),
				"distribution_rate": m.DistributionRate.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	one := decimal.NewFromInt(1)
	for name, rate := range map[string]decimal.Decimal{
		"icms_rate":       m.ICMSRate,
		"pis_cofins_rate": m.PISCofinsRate,
	} {
		if rate.IsNegative() || rate.GreaterThanOrEqual(one) {
			return ierr.NewError("tax rates must be in the range [0, 1)").
				WithHint("Tax rates are fractions, ex 0.2 for 20%").
				WithReportableDetails(map[string]any{
					"rate":  name,
					"value": rate.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

// DeriveRates computes the billing rates from the base constants.
// Pure and deterministic.
func (m Model) DeriveRates() Rates {
	one := decimal.NewFromInt(1)

	// (1 - ICMS) * (1 - PIS/COFINS), the combined tax gross-up factor
	taxFactor := one.Sub(m.ICMSRate).Mul(one.Sub(m.PISCofinsRate))

	applied := m.EnergyRate.Add(m.DistributionRate)
	supplied := applied.Div(taxFactor).Round(tariffScale)

	// TE carries both taxes, TUSD only PIS/COFINS
	sharedInjected := m.EnergyRate.Div(taxFactor).
		Add(m.DistributionRate.Div(one.Sub(m.PISCofinsRate)))
	realInjected := sharedInjected.Round(tariffScale)

	return Rates{
		Applied:        applied,
		Supplied:       supplied,
		SharedInjected: sharedInjected,
		RealInjected:   realInjected,
		NonOffsettable: supplied.Sub(realInjected),
	}
}
