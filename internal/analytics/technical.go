package analytics

import (
	"github.com/ternarybob/specula/internal/models"
)

// ComputeRSI computes the Relative Strength Index with Wilder smoothing:
// the first average gain/loss is a simple mean over the initial period,
// after which avg = (prev*(period-1) + current) / period. Returns nil when
// fewer than period+1 closes are available. A series with no losses reads
// 100; no gains reads 0.
func ComputeRSI(closes []float64, period int) *float64 {
	if period < 1 || len(closes) < period+1 {
		return nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		var gain, loss float64
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	var rsi float64
	if avgLoss == 0 {
		rsi = 100
	} else {
		rs := avgGain / avgLoss
		rsi = 100 - 100/(1+rs)
	}
	return &rsi
}

// SMA returns the simple moving average of the last period closes, nil when
// the series is shorter than the period.
func SMA(closes []float64, period int) *float64 {
	if period < 1 || len(closes) < period {
		return nil
	}
	avg := Mean(closes[len(closes)-period:])
	return &avg
}

// RangeContext places the current price within the series' high/low range.
type RangeContext struct {
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Position float64 `json:"position"` // 0 at the low, 100 at the high
}

// ComputeRange reports the close high/low of the series and where price
// sits within it. Nil when the series is empty or the range is degenerate.
func ComputeRange(series models.PriceSeries, price float64) *RangeContext {
	if series.Len() == 0 {
		return nil
	}
	high := series.Candles[0].Close
	low := series.Candles[0].Close
	for _, c := range series.Candles[1:] {
		if c.Close > high {
			high = c.Close
		}
		if c.Close < low {
			low = c.Close
		}
	}
	if high == low {
		return nil
	}
	return &RangeContext{
		High:     high,
		Low:      low,
		Position: (price - low) / (high - low) * 100,
	}
}
