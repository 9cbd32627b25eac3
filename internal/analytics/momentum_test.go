package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/specula/internal/models"
)

func dailySeries(symbol string, start time.Time, closes []float64) models.PriceSeries {
	candles := make([]models.Candle, len(closes))
	for i, c := range closes {
		candles[i] = models.Candle{Date: start.AddDate(0, 0, i), Close: c, AdjClose: c}
	}
	return models.PriceSeries{Symbol: symbol, Candles: candles}
}

func TestComputeMomentumConstantPrice(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 400)
	for i := range closes {
		closes[i] = 100
	}
	series := dailySeries("FLAT", now.AddDate(0, 0, -399), closes)

	got := ComputeMomentum(series, 100, now, StandardHorizons, 5)
	require.Len(t, got, 3)
	for label, pct := range got {
		assert.InDelta(t, 0.0, pct, 1e-12, "horizon %s", label)
	}
}

func TestComputeMomentumShortHistoryOmitsLongHorizons(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}
	series := dailySeries("NEW", now.AddDate(0, 0, -9), closes)

	got := ComputeMomentum(series, 109, now, StandardHorizons, 5)
	assert.Contains(t, got, "1W")
	assert.NotContains(t, got, "1M")
	assert.NotContains(t, got, "1Y")
}

func TestComputeMomentumNearestDateSelection(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, -30)

	// One close 2 days before the ideal date, one 1 day after: the closer
	// one wins even though it is on the far side.
	series := models.PriceSeries{
		Symbol: "PICK",
		Candles: []models.Candle{
			{Date: target.AddDate(0, 0, -2), Close: 90},
			{Date: target.AddDate(0, 0, 1), Close: 80},
		},
	}

	got := ComputeMomentum(series, 100, now, []Horizon{{Label: "1M", Lookback: 30 * 24 * time.Hour}}, 5)
	require.Contains(t, got, "1M")
	assert.InDelta(t, 25.0, got["1M"], 1e-12) // (100-80)/80
}

func TestComputeMomentumOutsideWindowOmitted(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	target := now.AddDate(0, 0, -30)

	series := models.PriceSeries{
		Symbol: "GAP",
		Candles: []models.Candle{
			{Date: target.AddDate(0, 0, -8), Close: 90},
		},
	}

	got := ComputeMomentum(series, 100, now, []Horizon{{Label: "1M", Lookback: 30 * 24 * time.Hour}}, 5)
	assert.NotContains(t, got, "1M")
}

func TestComputeMomentumZeroCurrentPrice(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	series := dailySeries("X", now.AddDate(0, 0, -40), []float64{100, 101})
	got := ComputeMomentum(series, 0, now, StandardHorizons, 5)
	assert.Empty(t, got)
}
