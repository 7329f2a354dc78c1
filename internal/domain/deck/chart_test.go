package deck_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminapower/propdeck/internal/domain/deck"
	ierr "github.com/luminapower/propdeck/internal/errors"
	"github.com/luminapower/propdeck/internal/testutil"
)

func TestUpdateChart(t *testing.T) {
	shape := testutil.NewChartShape()

	categories := []string{"Antes", "Depois"}
	series := deck.Series{Name: "Conta mensal", Values: []float64{980.30, 830.54}}

	err := deck.UpdateChart(shape.Chart(), categories, series)
	require.NoError(t, err)

	chart := shape.MemChart()
	assert.Equal(t, categories, chart.Categories())
	require.Len(t, chart.SeriesData(), 1)
	assert.Equal(t, series, chart.SeriesData()[0])

	// Tick labels reset to the template base style
	assert.Equal(t, deck.Font{Name: "Calibri", Size: 10}, chart.TickLabelFont())
}

func TestUpdateChart_NilChart(t *testing.T) {
	err := deck.UpdateChart(nil, []string{"Antes"})
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestUpdateChart_ReplaceFailure(t *testing.T) {
	shape := testutil.NewChartShape()
	shape.MemChart().FailReplace(errors.New("corrupt chart part"))

	err := deck.UpdateChart(shape.Chart(), []string{"Antes"})
	require.Error(t, err)
	assert.True(t, ierr.IsInternal(err))
	assert.Contains(t, err.Error(), "corrupt chart part")
}
