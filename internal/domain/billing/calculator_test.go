package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminapower/propdeck/internal/domain/tariff"
	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/types"
)

func enelCECalculator(t *testing.T) *Calculator {
	t.Helper()
	model, err := tariff.NewModel(
		decimal.RequireFromString("0.27291"),
		decimal.RequireFromString("0.44929"),
		decimal.RequireFromString("0.2"),
		decimal.RequireFromString("0.05"),
	)
	require.NoError(t, err)
	return NewCalculator(model)
}

func defaultInput() ClientInput {
	return ClientInput{
		ClientName:             "Condominio Sol Nascente",
		DiscountPercent:        decimal.NewFromInt(20),
		ConnectionType:         types.ConnectionTypeThreePhase,
		MonthlyConsumptionKWh:  decimal.NewFromInt(1000),
		UnitCount:              1,
		PublicIlluminationCost: decimal.NewFromInt(30),
	}
}

func TestComputeBefore(t *testing.T) {
	calc := enelCECalculator(t)

	before, err := calc.ComputeBefore(defaultInput())
	require.NoError(t, err)

	// 900 compensable kWh at the derived ENEL CE rates
	assert.True(t, before.EnergyCost.Equal(decimal.RequireFromString("748.80")),
		"energy cost, got %s", before.EnergyCost)
	assert.True(t, before.MinimumCost.Equal(decimal.RequireFromString("95.03")),
		"minimum cost, got %s", before.MinimumCost)
	assert.True(t, before.Taxes.Equal(decimal.RequireFromString("106.47")),
		"taxes, got %s", before.Taxes)
	assert.True(t, before.PublicIlluminationCost.Equal(decimal.NewFromInt(30)))
	assert.True(t, before.Total.Equal(decimal.RequireFromString("980.30")),
		"total, got %s", before.Total)

	// The total is exactly the sum of its components
	sum := before.EnergyCost.
		Add(before.MinimumCost).
		Add(before.PublicIlluminationCost).
		Add(before.Taxes)
	assert.True(t, before.Total.Equal(sum))
}

func TestComputeBefore_MinimumCostByConnectionType(t *testing.T) {
	calc := enelCECalculator(t)

	tests := []struct {
		name       string
		connection types.ConnectionType
		unitCount  int
		expected   string
	}{
		{name: "single_phase", connection: types.ConnectionTypeSinglePhase, unitCount: 1, expected: "28.509"},
		{name: "two_phase", connection: types.ConnectionTypeTwoPhase, unitCount: 1, expected: "47.515"},
		{name: "three_phase", connection: types.ConnectionTypeThreePhase, unitCount: 1, expected: "95.03"},
		{name: "three_phase_four_units", connection: types.ConnectionTypeThreePhase, unitCount: 4, expected: "380.12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := defaultInput()
			input.ConnectionType = tt.connection
			input.UnitCount = tt.unitCount

			before, err := calc.ComputeBefore(input)
			require.NoError(t, err)
			assert.True(t, before.MinimumCost.Equal(decimal.RequireFromString(tt.expected)),
				"minimum cost, got %s", before.MinimumCost)
		})
	}
}

func TestComputeBefore_InvalidConnectionType(t *testing.T) {
	calc := enelCECalculator(t)

	input := defaultInput()
	input.ConnectionType = types.ConnectionType("dual-phase")

	_, err := calc.ComputeBefore(input)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestComputeBefore_NetInjectionCredit(t *testing.T) {
	calc := enelCECalculator(t)

	// Consumption below the aggregate 100 kWh/unit allowance is valid and
	// yields negative energy cost and taxes (injection credit)
	input := defaultInput()
	input.MonthlyConsumptionKWh = decimal.NewFromInt(150)
	input.UnitCount = 2

	before, err := calc.ComputeBefore(input)
	require.NoError(t, err)
	assert.True(t, before.EnergyCost.IsNegative())
	assert.True(t, before.Taxes.IsNegative())
	assert.True(t, before.EnergyCost.Equal(decimal.RequireFromString("-41.60")),
		"energy cost, got %s", before.EnergyCost)
}

func TestComputeAfter(t *testing.T) {
	calc := enelCECalculator(t)

	before, err := calc.ComputeBefore(defaultInput())
	require.NoError(t, err)

	after := calc.ComputeAfter(before, decimal.NewFromInt(20))

	assert.True(t, after.EnergyCost.Equal(decimal.RequireFromString("599.04")),
		"discounted energy cost, got %s", after.EnergyCost)
	assert.True(t, after.MinimumCost.Equal(before.MinimumCost))
	assert.True(t, after.Taxes.Equal(before.Taxes))
	assert.True(t, after.PublicIlluminationCost.Equal(before.PublicIlluminationCost))
	assert.True(t, after.Total.Equal(decimal.RequireFromString("830.54")),
		"total after discount, got %s", after.Total)
	assert.True(t, after.Total.LessThan(before.Total))
}

func TestComputeAfter_ZeroDiscountIsNoOp(t *testing.T) {
	calc := enelCECalculator(t)

	before, err := calc.ComputeBefore(defaultInput())
	require.NoError(t, err)

	after := calc.ComputeAfter(before, decimal.Zero)
	assert.True(t, after.Total.Equal(before.Total))
	assert.True(t, after.EnergyCost.Equal(before.EnergyCost))
}

func TestComputeAfter_FullDiscountZeroesEnergyCost(t *testing.T) {
	calc := enelCECalculator(t)

	before, err := calc.ComputeBefore(defaultInput())
	require.NoError(t, err)

	after := calc.ComputeAfter(before, decimal.NewFromInt(100))
	assert.True(t, after.EnergyCost.IsZero())
	assert.True(t, after.Total.Equal(
		before.Taxes.Add(before.PublicIlluminationCost).Add(before.MinimumCost)))
}

func TestSavings(t *testing.T) {
	calc := enelCECalculator(t)

	before, err := calc.ComputeBefore(defaultInput())
	require.NoError(t, err)
	after := calc.ComputeAfter(before, decimal.NewFromInt(20))

	// Savings equal the discounted share of the energy cost
	savings := Savings(before, after)
	assert.True(t, savings.Equal(decimal.RequireFromString("149.76")),
		"savings, got %s", savings)
}

func TestClientInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientInput)
	}{
		{name: "missing_client_name", mutate: func(i *ClientInput) { i.ClientName = "" }},
		{name: "invalid_connection", mutate: func(i *ClientInput) { i.ConnectionType = "four-phase" }},
		{name: "negative_discount", mutate: func(i *ClientInput) { i.DiscountPercent = decimal.NewFromInt(-1) }},
		{name: "discount_above_100", mutate: func(i *ClientInput) { i.DiscountPercent = decimal.NewFromInt(101) }},
		{name: "negative_consumption", mutate: func(i *ClientInput) { i.MonthlyConsumptionKWh = decimal.NewFromInt(-10) }},
		{name: "zero_unit_count", mutate: func(i *ClientInput) { i.UnitCount = 0 }},
		{name: "negative_pic", mutate: func(i *ClientInput) { i.PublicIlluminationCost = decimal.NewFromInt(-5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := defaultInput()
			tt.mutate(&input)
			err := input.Validate()
			require.Error(t, err)
			assert.True(t, ierr.IsValidation(err))
		})
	}

	assert.NoError(t, defaultInput().Validate())
}
