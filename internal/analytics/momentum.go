package analytics

import (
	"time"

	"github.com/ternarybob/specula/internal/models"
)

// Horizon is a labeled trailing-return lookback.
type Horizon struct {
	Label    string
	Lookback time.Duration
}

// StandardHorizons are the lookbacks shown on the ticker screens.
var StandardHorizons = []Horizon{
	{Label: "1W", Lookback: 7 * 24 * time.Hour},
	{Label: "1M", Lookback: 30 * 24 * time.Hour},
	{Label: "1Y", Lookback: 365 * 24 * time.Hour},
}

// ComputeMomentum returns signed percentage returns from the close nearest
// each horizon's lookback date to the current price. The nearest close must
// fall within windowDays of the ideal date; horizons with no such close are
// absent from the result, never zero-filled.
func ComputeMomentum(series models.PriceSeries, currentPrice float64, now time.Time, horizons []Horizon, windowDays int) map[string]float64 {
	result := make(map[string]float64, len(horizons))
	if currentPrice == 0 || series.Len() == 0 {
		return result
	}
	window := time.Duration(windowDays) * 24 * time.Hour
	for _, h := range horizons {
		target := now.Add(-h.Lookback)
		base, ok := series.PriceNearest(target, window)
		if !ok || base == 0 {
			continue
		}
		result[h.Label] = (currentPrice - base) / base * 100
	}
	return result
}
