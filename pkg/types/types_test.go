package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestPriceSeriesValidate(t *testing.T) {
	series := PriceSeries{
		{Timestamp: day("2024-01-05"), Close: 102},
		{Timestamp: day("2024-01-04"), Close: 99.5},
		{Timestamp: day("2024-01-03"), Close: 101.5},
	}
	assert.NoError(t, series.Validate())
}

func TestPriceSeriesValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		series PriceSeries
	}{
		{"empty", PriceSeries{}},
		{"non-positive price", PriceSeries{{Timestamp: day("2024-01-05"), Close: 0}}},
		{"timestamps not decreasing", PriceSeries{
			{Timestamp: day("2024-01-04"), Close: 100},
			{Timestamp: day("2024-01-05"), Close: 101},
		}},
		{"duplicate timestamp", PriceSeries{
			{Timestamp: day("2024-01-04"), Close: 100},
			{Timestamp: day("2024-01-04"), Close: 101},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter))
		})
	}
}

func TestPriceSeriesCloses(t *testing.T) {
	series := PriceSeries{
		{Timestamp: day("2024-01-05"), Close: 102},
		{Timestamp: day("2024-01-04"), Close: 99.5},
	}
	assert.Equal(t, []float64{102, 99.5}, series.Closes())
}

func TestValuation(t *testing.T) {
	v := Valuation{Stock: 1000, Bond: 1000}

	v.ApplyRatios(0.9, 1.0)
	assert.InDelta(t, 900.0, v.Stock, 1e-12)
	assert.InDelta(t, 1000.0, v.Bond, 1e-12)

	v.TransferBondToStock(100)
	assert.InDelta(t, 1000.0, v.Stock, 1e-12)
	assert.InDelta(t, 900.0, v.Bond, 1e-12)
	assert.InDelta(t, 1900.0, v.Total(), 1e-12)
}
