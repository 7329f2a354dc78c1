package deck

import (
	ierr "github.com/luminapower/propdeck/internal/errors"
)

// tick labels are reset to the template's base style after a data replace
var chartTickLabelFont = Font{Name: "Calibri", Size: 10}

// UpdateChart replaces a chart's data with the given categories and series
// and resets the category axis tick-label font. Charts are display-only in
// the rendered deck, so values arrive as plain floats.
func UpdateChart(chart Chart, categories []string, series ...Series) error {
	if chart == nil {
		return ierr.NewError("shape has no chart").
			WithHint("Chart update requested on a shape without a chart").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := chart.ReplaceData(categories, series); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to replace chart data").
			Mark(ierr.ErrInternal)
	}

	if err := chart.SetCategoryTickLabelFont(chartTickLabelFont); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to reset chart tick-label font").
			Mark(ierr.ErrInternal)
	}

	return nil
}
