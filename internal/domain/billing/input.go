package billing

import (
	"github.com/shopspring/decimal"

	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/types"
)

// ClientInput holds the client-supplied parameters for one proposal.
// Constructed once per rendering request and never mutated.
type ClientInput struct {
	// ClientName is printed on the deck's cover
	ClientName string `json:"client_name"`

	// DiscountPercent is the proposed discount on the energy cost, 0-100
	DiscountPercent decimal.Decimal `json:"discount_percent"`

	// ConnectionType determines the availability allowance billed by the utility
	ConnectionType types.ConnectionType `json:"connection_type"`

	// MonthlyConsumptionKWh is the client's average monthly consumption
	MonthlyConsumptionKWh decimal.Decimal `json:"monthly_consumption_kwh"`

	// UnitCount is the number of consumer units covered by the proposal
	UnitCount int `json:"unit_count"`

	// PublicIlluminationCost is the fixed municipal lighting charge (CIP)
	PublicIlluminationCost decimal.Decimal `json:"public_illumination_cost"`
}

// Validate checks the input describes a computable proposal
func (i ClientInput) Validate() error {
	if i.ClientName == "" {
		return ierr.NewError("client_name is required").
			WithHint("Client name is required").
			Mark(ierr.ErrValidation)
	}
	if err := i.ConnectionType.Validate(); err != nil {
		return err
	}
	if i.DiscountPercent.IsNegative() || i.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("discount_percent must be between 0 and 100").
			WithHint("Discount must be a percentage between 0 and 100").
			WithReportableDetails(map[string]any{
				"discount_percent": i.DiscountPercent.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if i.MonthlyConsumptionKWh.IsNegative() {
		return ierr.NewError("monthly_consumption_kwh must not be negative").
			WithHint("Monthly consumption must be zero or positive").
			WithReportableDetails(map[string]any{
				"monthly_consumption_kwh": i.MonthlyConsumptionKWh.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	if i.UnitCount < 1 {
		return ierr.NewError("unit_count must be at least 1").
			WithHint("At least one consumer unit is required").
			WithReportableDetails(map[string]any{
				"unit_count": i.UnitCount,
			}).
			Mark(ierr.ErrValidation)
	}
	if i.PublicIlluminationCost.IsNegative() {
		return ierr.NewError("public_illumination_cost must not be negative").
			WithHint("Public illumination cost must be zero or positive").
			WithReportableDetails(map[string]any{
				"public_illumination_cost": i.PublicIlluminationCost.String(),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
