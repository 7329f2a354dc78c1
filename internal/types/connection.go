package types

import (
	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/shopspring/decimal"
)

// ConnectionType identifies how a consumer unit is wired to the grid.
// The utility charges a minimum availability cost in kWh that depends on it.
type ConnectionType string

const (
	ConnectionTypeSinglePhase ConnectionType = "single-phase"
	ConnectionTypeTwoPhase    ConnectionType = "two-phase"
	ConnectionTypeThreePhase  ConnectionType = "three-phase"
)

func (c ConnectionType) String() string {
	return string(c)
}

// Validate checks that the connection type is one of the supported categories
func (c ConnectionType) Validate() error {
	switch c {
	case ConnectionTypeSinglePhase, ConnectionTypeTwoPhase, ConnectionTypeThreePhase:
		return nil
	default:
		return ierr.NewError("invalid connection type").
			WithHint("Connection type must be one of single-phase, two-phase or three-phase").
			WithReportableDetails(map[string]any{
				"connection_type": string(c),
			}).
			Mark(ierr.ErrValidation)
	}
}

// BaseAllowanceKWh returns the availability allowance billed by the utility
// regardless of consumption: 30 kWh for single-phase, 50 for two-phase and
// 100 for three-phase connections.
func (c ConnectionType) BaseAllowanceKWh() decimal.Decimal {
	switch c {
	case ConnectionTypeSinglePhase:
		return decimal.NewFromInt(30)
	case ConnectionTypeTwoPhase:
		return decimal.NewFromInt(50)
	case ConnectionTypeThreePhase:
		return decimal.NewFromInt(100)
	default:
		return decimal.Zero
	}
}
