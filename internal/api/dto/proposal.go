package dto

import (
	"github.com/shopspring/decimal"

	"github.com/luminapower/propdeck/internal/domain/billing"
	"github.com/luminapower/propdeck/internal/domain/deck"
	"github.com/luminapower/propdeck/internal/types"
	"github.com/luminapower/propdeck/internal/validator"
)

// RenderProposalRequest carries the client parameters of a render request.
// The presentation template itself travels as the "template" multipart file.
type RenderProposalRequest struct {
	// ClientName is printed on the deck's cover
	ClientName string `form:"client_name" json:"client_name" validate:"required"`

	// DiscountPercent is the proposed discount on the energy cost
	DiscountPercent float64 `form:"discount_percent" json:"discount_percent" validate:"gte=0,lte=100"`

	// ConnectionType is the consumer unit's grid connection category
	ConnectionType string `form:"connection_type" json:"connection_type" validate:"required,oneof=single-phase two-phase three-phase"`

	// MonthlyConsumptionKWh is the client's average monthly consumption
	MonthlyConsumptionKWh float64 `form:"monthly_consumption_kwh" json:"monthly_consumption_kwh" validate:"gte=0"`

	// UnitCount is the number of consumer units covered by the proposal
	UnitCount int `form:"unit_count" json:"unit_count" validate:"min=1"`

	// PublicIlluminationCost is the fixed municipal lighting charge
	PublicIlluminationCost float64 `form:"public_illumination_cost" json:"public_illumination_cost" validate:"gte=0"`
}

// Validate checks the request against its validation tags
func (r *RenderProposalRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToClientInput converts the request to the domain input
func (r *RenderProposalRequest) ToClientInput() billing.ClientInput {
	return billing.ClientInput{
		ClientName:             r.ClientName,
		DiscountPercent:        decimal.NewFromFloat(r.DiscountPercent),
		ConnectionType:         types.ConnectionType(r.ConnectionType),
		MonthlyConsumptionKWh:  decimal.NewFromFloat(r.MonthlyConsumptionKWh),
		UnitCount:              r.UnitCount,
		PublicIlluminationCost: decimal.NewFromFloat(r.PublicIlluminationCost),
	}
}

// RenderProposalResponse is the JSON metadata variant of a render outcome,
// returned when the caller asks for the report instead of the binary deck
type RenderProposalResponse struct {
	ProposalID string                `json:"proposal_id"`
	Report     *deck.Report          `json:"report"`
	Before     billing.BillBreakdown `json:"before"`
	After      billing.BillBreakdown `json:"after"`
}
