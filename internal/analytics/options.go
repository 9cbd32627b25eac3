package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ternarybob/specula/internal/models"
)

// Ratio is a quotient that may be undefined (zero denominator). Undefined
// ratios render as "n/a", never as 0.
type Ratio struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// NewRatio divides num by den, marking the result undefined when den is 0.
func NewRatio(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Value: num / den, Defined: true}
}

// ChainConfig bounds the chain analytics.
type ChainConfig struct {
	UnusualActivityMultiple float64 // volume >= multiple*OI flags a contract (default 2)
	TopStrikes              int     // strikes kept per side in the top lists (default 10)
}

// UnusualContract is a contract whose volume outruns its open interest.
type UnusualContract struct {
	Side     string                `json:"side"` // "CALL" or "PUT"
	Contract models.OptionContract `json:"contract"`
	Ratio    float64               `json:"ratio"` // volume / open interest
}

// ChainAnalytics summarizes positioning, IV structure, and flow for a
// single expiration's chain. IV fields are percentages; pointer fields are
// nil when the required contract is missing from the chain.
type ChainAnalytics struct {
	Symbol     string    `json:"symbol"`
	Spot       float64   `json:"spot"`
	Expiration time.Time `json:"expiration"`

	PCVolume       Ratio `json:"pc_volume"`
	PCOpenInterest Ratio `json:"pc_open_interest"`

	TotalCallVolume int64 `json:"total_call_volume"`
	TotalPutVolume  int64 `json:"total_put_volume"`
	TotalCallOI     int64 `json:"total_call_oi"`
	TotalPutOI      int64 `json:"total_put_oi"`

	CallOIITM int64 `json:"call_oi_itm"`
	CallOIOTM int64 `json:"call_oi_otm"`
	PutOIITM  int64 `json:"put_oi_itm"`
	PutOIOTM  int64 `json:"put_oi_otm"`

	ATMStrike float64  `json:"atm_strike"`
	ATMCallIV *float64 `json:"atm_call_iv,omitempty"`
	ATMPutIV  *float64 `json:"atm_put_iv,omitempty"`
	IVSpread  *float64 `json:"iv_spread,omitempty"` // call - put
	PutSkew   *float64 `json:"put_skew,omitempty"`  // mean OTM put IV - ATM put IV
	CallSkew  *float64 `json:"call_skew,omitempty"`

	MaxPain *float64 `json:"max_pain,omitempty"`

	Unusual []UnusualContract `json:"unusual,omitempty"`

	TopCallsByOI  []models.OptionContract `json:"top_calls_by_oi,omitempty"`
	TopPutsByOI   []models.OptionContract `json:"top_puts_by_oi,omitempty"`
	TopCallsByVol []models.OptionContract `json:"top_calls_by_vol,omitempty"`
	TopPutsByVol  []models.OptionContract `json:"top_puts_by_vol,omitempty"`
}

// ComputeChainAnalytics derives the options screen metrics from one chain
// snapshot. The snapshot needs a positive spot and at least one contract.
func ComputeChainAnalytics(snapshot models.OptionsChainSnapshot, cfg ChainConfig) (*ChainAnalytics, error) {
	if snapshot.Spot <= 0 {
		return nil, fmt.Errorf("%w: no spot price for %s", ErrInsufficientData, snapshot.Symbol)
	}
	if len(snapshot.Calls) == 0 && len(snapshot.Puts) == 0 {
		return nil, fmt.Errorf("%w: empty chain for %s", ErrInsufficientData, snapshot.Symbol)
	}

	a := &ChainAnalytics{
		Symbol:     snapshot.Symbol,
		Spot:       snapshot.Spot,
		Expiration: snapshot.Expiration,
	}

	a.TotalCallVolume = models.TotalVolume(snapshot.Calls)
	a.TotalPutVolume = models.TotalVolume(snapshot.Puts)
	a.TotalCallOI = models.TotalOpenInterest(snapshot.Calls)
	a.TotalPutOI = models.TotalOpenInterest(snapshot.Puts)

	a.PCVolume = NewRatio(float64(a.TotalPutVolume), float64(a.TotalCallVolume))
	a.PCOpenInterest = NewRatio(float64(a.TotalPutOI), float64(a.TotalCallOI))

	// ITM for a call means strike below spot; for a put, above.
	for _, c := range snapshot.Calls {
		if c.Strike < snapshot.Spot {
			a.CallOIITM += c.OpenInterest
		} else {
			a.CallOIOTM += c.OpenInterest
		}
	}
	for _, p := range snapshot.Puts {
		if p.Strike > snapshot.Spot {
			a.PutOIITM += p.OpenInterest
		} else {
			a.PutOIOTM += p.OpenInterest
		}
	}

	a.ATMStrike = atmStrike(snapshot)
	if call, ok := contractAtStrike(snapshot.Calls, a.ATMStrike); ok {
		iv := call.ImpliedVolatility * 100
		a.ATMCallIV = &iv
	}
	if put, ok := contractAtStrike(snapshot.Puts, a.ATMStrike); ok {
		iv := put.ImpliedVolatility * 100
		a.ATMPutIV = &iv
	}
	if a.ATMCallIV != nil && a.ATMPutIV != nil {
		spread := *a.ATMCallIV - *a.ATMPutIV
		a.IVSpread = &spread
	}

	// Skew: mean deep-OTM IV relative to ATM IV on the same side. With no
	// strikes beyond the 10% band the skew collapses to zero.
	if a.ATMPutIV != nil {
		otm := meanIV(snapshot.Puts, func(c models.OptionContract) bool {
			return c.Strike < snapshot.Spot*0.9
		})
		skew := 0.0
		if otm != nil {
			skew = *otm - *a.ATMPutIV
		}
		a.PutSkew = &skew
	}
	if a.ATMCallIV != nil {
		otm := meanIV(snapshot.Calls, func(c models.OptionContract) bool {
			return c.Strike > snapshot.Spot*1.1
		})
		skew := 0.0
		if otm != nil {
			skew = *otm - *a.ATMCallIV
		}
		a.CallSkew = &skew
	}

	a.MaxPain = maxPain(snapshot)

	multiple := cfg.UnusualActivityMultiple
	if multiple <= 0 {
		multiple = 2
	}
	a.Unusual = unusualActivity(snapshot, multiple)

	top := cfg.TopStrikes
	if top <= 0 {
		top = 10
	}
	a.TopCallsByOI = topBy(snapshot.Calls, top, byOpenInterest)
	a.TopPutsByOI = topBy(snapshot.Puts, top, byOpenInterest)
	a.TopCallsByVol = topBy(snapshot.Calls, top, byVolume)
	a.TopPutsByVol = topBy(snapshot.Puts, top, byVolume)

	return a, nil
}

// atmStrike returns the strike closest to spot, preferring the call side
// and falling back to puts when no calls are listed.
func atmStrike(snapshot models.OptionsChainSnapshot) float64 {
	side := snapshot.Calls
	if len(side) == 0 {
		side = snapshot.Puts
	}
	best := side[0].Strike
	bestDist := math.Abs(best - snapshot.Spot)
	for _, c := range side[1:] {
		if d := math.Abs(c.Strike - snapshot.Spot); d < bestDist {
			best = c.Strike
			bestDist = d
		}
	}
	return best
}

func contractAtStrike(contracts []models.OptionContract, strike float64) (models.OptionContract, bool) {
	for _, c := range contracts {
		if c.Strike == strike {
			return c, true
		}
	}
	return models.OptionContract{}, false
}

func meanIV(contracts []models.OptionContract, keep func(models.OptionContract) bool) *float64 {
	var sum float64
	var n int
	for _, c := range contracts {
		if keep(c) {
			sum += c.ImpliedVolatility * 100
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}

// maxPain scans the union of listed strikes for the settlement price that
// minimizes the aggregate intrinsic payout to option holders, weighted by
// open interest. Ties resolve to the lower strike. Nil when the chain
// carries no open interest.
func maxPain(snapshot models.OptionsChainSnapshot) *float64 {
	strikeSet := make(map[float64]struct{})
	var totalOI int64
	for _, c := range snapshot.Calls {
		strikeSet[c.Strike] = struct{}{}
		totalOI += c.OpenInterest
	}
	for _, p := range snapshot.Puts {
		strikeSet[p.Strike] = struct{}{}
		totalOI += p.OpenInterest
	}
	if len(strikeSet) == 0 || totalOI == 0 {
		return nil
	}

	strikes := make([]float64, 0, len(strikeSet))
	for s := range strikeSet {
		strikes = append(strikes, s)
	}
	sort.Float64s(strikes)

	best := strikes[0]
	bestPain := math.Inf(1)
	for _, settle := range strikes {
		var pain float64
		for _, c := range snapshot.Calls {
			if c.Strike < settle {
				pain += (settle - c.Strike) * float64(c.OpenInterest)
			}
		}
		for _, p := range snapshot.Puts {
			if p.Strike > settle {
				pain += (p.Strike - settle) * float64(p.OpenInterest)
			}
		}
		if pain < bestPain {
			bestPain = pain
			best = settle
		}
	}
	return &best
}

func unusualActivity(snapshot models.OptionsChainSnapshot, multiple float64) []UnusualContract {
	var out []UnusualContract
	collect := func(side string, contracts []models.OptionContract) {
		for _, c := range contracts {
			if c.OpenInterest <= 0 {
				continue
			}
			if float64(c.Volume) >= multiple*float64(c.OpenInterest) {
				out = append(out, UnusualContract{
					Side:     side,
					Contract: c,
					Ratio:    float64(c.Volume) / float64(c.OpenInterest),
				})
			}
		}
	}
	collect("CALL", snapshot.Calls)
	collect("PUT", snapshot.Puts)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Ratio > out[j].Ratio
	})
	return out
}

func byOpenInterest(c models.OptionContract) int64 { return c.OpenInterest }
func byVolume(c models.OptionContract) int64       { return c.Volume }

func topBy(contracts []models.OptionContract, n int, key func(models.OptionContract) int64) []models.OptionContract {
	sorted := make([]models.OptionContract, len(contracts))
	copy(sorted, contracts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TermPoint is one expiration's ATM implied volatility.
type TermPoint struct {
	Expiration time.Time `json:"expiration"`
	DTE        int       `json:"dte"`
	ATMCallIV  float64   `json:"atm_call_iv"` // percent
}

// TermStructure orders ATM IV across expirations. Contango is the nearest
// expiration's IV minus the farthest's: positive means near-dated vol is
// richer and priced to compress toward the far expiration; negative means
// the curve is backwardated, with vol expected to rise.
type TermStructure struct {
	Points   []TermPoint `json:"points"`
	Contango float64     `json:"contango"`
}

// ComputeTermStructure extracts an ATM-IV curve from chain snapshots of the
// same underlying at different expirations. At least two usable points are
// required.
func ComputeTermStructure(snapshots []models.OptionsChainSnapshot, now time.Time) (*TermStructure, error) {
	points := make([]TermPoint, 0, len(snapshots))
	for _, s := range snapshots {
		if s.Spot <= 0 || len(s.Calls) == 0 {
			continue
		}
		strike := atmStrike(s)
		call, ok := contractAtStrike(s.Calls, strike)
		if !ok {
			continue
		}
		points = append(points, TermPoint{
			Expiration: s.Expiration,
			DTE:        s.DaysToExpiration(now),
			ATMCallIV:  call.ImpliedVolatility * 100,
		})
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: term structure needs at least 2 expirations", ErrInsufficientData)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Expiration.Before(points[j].Expiration)
	})
	return &TermStructure{
		Points:   points,
		Contango: points[0].ATMCallIV - points[len(points)-1].ATMCallIV,
	}, nil
}

// VolConfig bounds the realized-volatility context computation.
type VolConfig struct {
	PeriodsPerYear float64 // 252 for daily
}

// RealizedVolContext relates current implied volatility to the underlying's
// realized volatility history. All values are annualized percentages.
type RealizedVolContext struct {
	RealizedVol7D  float64 `json:"realized_vol_7d"`
	RealizedVol30D float64 `json:"realized_vol_30d"`
	VolHigh52W     float64 `json:"vol_high_52w"` // highest rolling 30d vol
	VolLow52W      float64 `json:"vol_low_52w"`
	IVRank         float64 `json:"iv_rank"`      // 0-100 within the 52w range
	IVRVSpread     float64 `json:"iv_rv_spread"` // ATM IV - 30d realized
}

// ComputeRealizedVolContext computes trailing realized vol and ranks the
// given ATM IV (percent) within the trailing year's rolling 30-day vol
// range. Requires at least 31 returns for the rolling window.
func ComputeRealizedVolContext(prices models.PriceSeries, atmIV float64, cfg VolConfig) (*RealizedVolContext, error) {
	returns := prices.Returns()
	const window = 30
	if returns.Len() < window+1 {
		return nil, fmt.Errorf("%w: %d returns, need at least %d", ErrInsufficientData, returns.Len(), window+1)
	}

	rolling := RollingVol(returns.Values, window, cfg.PeriodsPerYear)
	high := rolling[0]
	low := rolling[0]
	for _, v := range rolling[1:] {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}

	// Degenerate range centers the rank.
	rank := 50.0
	if high > low {
		rank = (atmIV - low) / (high - low) * 100
	}

	rv7 := AnnualizedVol(tail(returns.Values, 7), cfg.PeriodsPerYear)
	rv30 := AnnualizedVol(tail(returns.Values, window), cfg.PeriodsPerYear)

	return &RealizedVolContext{
		RealizedVol7D:  rv7,
		RealizedVol30D: rv30,
		VolHigh52W:     high,
		VolLow52W:      low,
		IVRank:         rank,
		IVRVSpread:     atmIV - rv30,
	}, nil
}

func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
