package models

import (
	"math"
	"time"
)

// Candle is a single daily bar.
type Candle struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   int64     `json:"volume"`
}

// PriceSeries is a symbol's daily history in ascending date order with
// unique dates. The provider constructs it; callers treat it as read-only.
type PriceSeries struct {
	Symbol  string   `json:"symbol"`
	Candles []Candle `json:"candles"`
}

// Len returns the number of candles.
func (p *PriceSeries) Len() int {
	return len(p.Candles)
}

// Closes returns the close prices in date order.
func (p *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(p.Candles))
	for i, c := range p.Candles {
		closes[i] = c.Close
	}
	return closes
}

// Last returns the most recent candle. The second return is false when the
// series is empty.
func (p *PriceSeries) Last() (Candle, bool) {
	if len(p.Candles) == 0 {
		return Candle{}, false
	}
	return p.Candles[len(p.Candles)-1], true
}

// Returns computes the simple percentage change between consecutive closes.
// Each return is aligned to the later date of its pair, so the result has
// one fewer entry than the series.
func (p *PriceSeries) Returns() ReturnSeries {
	rs := ReturnSeries{Symbol: p.Symbol}
	if len(p.Candles) < 2 {
		return rs
	}
	rs.Dates = make([]time.Time, 0, len(p.Candles)-1)
	rs.Values = make([]float64, 0, len(p.Candles)-1)
	for i := 1; i < len(p.Candles); i++ {
		prev := p.Candles[i-1].Close
		if prev == 0 {
			continue
		}
		rs.Dates = append(rs.Dates, p.Candles[i].Date)
		rs.Values = append(rs.Values, (p.Candles[i].Close-prev)/prev)
	}
	return rs
}

// PriceNearest returns the close nearest the target date within the given
// window. The second return is false when no candle falls inside it.
func (p *PriceSeries) PriceNearest(target time.Time, window time.Duration) (float64, bool) {
	best := -1
	bestDist := window
	for i, c := range p.Candles {
		dist := c.Date.Sub(target)
		if dist < 0 {
			dist = -dist
		}
		if dist <= bestDist {
			best = i
			bestDist = dist
		}
	}
	if best < 0 {
		return 0, false
	}
	return p.Candles[best].Close, true
}

// Slice returns the sub-series of candles on or after from. The symbol is
// preserved; the backing array is shared.
func (p *PriceSeries) Slice(from time.Time) PriceSeries {
	for i, c := range p.Candles {
		if !c.Date.Before(from) {
			return PriceSeries{Symbol: p.Symbol, Candles: p.Candles[i:]}
		}
	}
	return PriceSeries{Symbol: p.Symbol}
}

// ReturnSeries is a sequence of simple returns keyed by date.
type ReturnSeries struct {
	Symbol string      `json:"symbol"`
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

// Len returns the number of observations.
func (r *ReturnSeries) Len() int {
	return len(r.Values)
}

// SameDates reports whether two series cover identical timestamps in the
// same order.
func (r *ReturnSeries) SameDates(other ReturnSeries) bool {
	if len(r.Dates) != len(other.Dates) {
		return false
	}
	for i := range r.Dates {
		if !r.Dates[i].Equal(other.Dates[i]) {
			return false
		}
	}
	return true
}

// TailFrom returns the observations on or after from.
func (r *ReturnSeries) TailFrom(from time.Time) ReturnSeries {
	for i, d := range r.Dates {
		if !d.Before(from) {
			return ReturnSeries{Symbol: r.Symbol, Dates: r.Dates[i:], Values: r.Values[i:]}
		}
	}
	return ReturnSeries{Symbol: r.Symbol}
}

// AlignReturns intersects two return series on their common dates, in
// order. Regression inputs must share timestamps exactly; holidays and
// listing gaps mean raw feed series rarely do.
func AlignReturns(a, b ReturnSeries) (ReturnSeries, ReturnSeries) {
	index := make(map[time.Time]int, len(b.Dates))
	for i, d := range b.Dates {
		index[d.UTC()] = i
	}

	outA := ReturnSeries{Symbol: a.Symbol}
	outB := ReturnSeries{Symbol: b.Symbol}
	for i, d := range a.Dates {
		j, ok := index[d.UTC()]
		if !ok {
			continue
		}
		outA.Dates = append(outA.Dates, d)
		outA.Values = append(outA.Values, a.Values[i])
		outB.Dates = append(outB.Dates, d)
		outB.Values = append(outB.Values, b.Values[j])
	}
	return outA, outB
}

// IsFinite reports whether every value in the series is a finite number.
func (r *ReturnSeries) IsFinite() bool {
	for _, v := range r.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
