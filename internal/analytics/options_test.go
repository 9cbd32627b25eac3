package analytics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/specula/internal/models"
)

var chainCfg = ChainConfig{UnusualActivityMultiple: 2, TopStrikes: 10}

func call(strike float64, volume, oi int64, iv float64) models.OptionContract {
	return models.OptionContract{Strike: strike, Volume: volume, OpenInterest: oi, ImpliedVolatility: iv}
}

func testChain() models.OptionsChainSnapshot {
	return models.OptionsChainSnapshot{
		Symbol:     "TEST",
		Spot:       100,
		Expiration: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Calls: []models.OptionContract{
			call(90, 100, 500, 0.40),
			call(100, 300, 1000, 0.30),
			call(115, 50, 200, 0.35),
		},
		Puts: []models.OptionContract{
			call(85, 200, 400, 0.50),
			call(100, 150, 800, 0.32),
			call(110, 20, 100, 0.28),
		},
	}
}

func TestComputeChainAnalyticsPositioning(t *testing.T) {
	a, err := ComputeChainAnalytics(testChain(), chainCfg)
	require.NoError(t, err)

	assert.Equal(t, int64(450), a.TotalCallVolume)
	assert.Equal(t, int64(370), a.TotalPutVolume)
	assert.Equal(t, int64(1700), a.TotalCallOI)
	assert.Equal(t, int64(1300), a.TotalPutOI)

	require.True(t, a.PCVolume.Defined)
	assert.InDelta(t, 370.0/450.0, a.PCVolume.Value, 1e-12)
	require.True(t, a.PCOpenInterest.Defined)
	assert.InDelta(t, 1300.0/1700.0, a.PCOpenInterest.Value, 1e-12)

	// Calls ITM below spot, puts ITM above
	assert.Equal(t, int64(500), a.CallOIITM)
	assert.Equal(t, int64(1200), a.CallOIOTM)
	assert.Equal(t, int64(100), a.PutOIITM)
	assert.Equal(t, int64(1200), a.PutOIOTM)
}

func TestComputeChainAnalyticsIVStructure(t *testing.T) {
	a, err := ComputeChainAnalytics(testChain(), chainCfg)
	require.NoError(t, err)

	assert.Equal(t, 100.0, a.ATMStrike)
	require.NotNil(t, a.ATMCallIV)
	assert.InDelta(t, 30.0, *a.ATMCallIV, 1e-12)
	require.NotNil(t, a.ATMPutIV)
	assert.InDelta(t, 32.0, *a.ATMPutIV, 1e-12)
	require.NotNil(t, a.IVSpread)
	assert.InDelta(t, -2.0, *a.IVSpread, 1e-12)

	// OTM puts below 90: only the 85 strike (50% IV); skew vs ATM put 32%
	require.NotNil(t, a.PutSkew)
	assert.InDelta(t, 18.0, *a.PutSkew, 1e-12)
	// OTM calls above 110: only the 115 strike (35% IV); skew vs ATM call 30%
	require.NotNil(t, a.CallSkew)
	assert.InDelta(t, 5.0, *a.CallSkew, 1e-12)
}

func TestComputeChainAnalyticsSkewFallsBackToZero(t *testing.T) {
	chain := models.OptionsChainSnapshot{
		Symbol: "NARROW",
		Spot:   100,
		Calls:  []models.OptionContract{call(100, 10, 100, 0.30)},
		Puts:   []models.OptionContract{call(100, 10, 100, 0.31)},
	}
	a, err := ComputeChainAnalytics(chain, chainCfg)
	require.NoError(t, err)

	require.NotNil(t, a.PutSkew)
	assert.Equal(t, 0.0, *a.PutSkew)
	require.NotNil(t, a.CallSkew)
	assert.Equal(t, 0.0, *a.CallSkew)
}

func TestComputeChainAnalyticsUndefinedRatios(t *testing.T) {
	chain := models.OptionsChainSnapshot{
		Symbol: "DEAD",
		Spot:   100,
		Calls:  []models.OptionContract{call(100, 0, 0, 0.30)},
		Puts:   []models.OptionContract{call(95, 10, 50, 0.35)},
	}
	a, err := ComputeChainAnalytics(chain, chainCfg)
	require.NoError(t, err)

	assert.False(t, a.PCVolume.Defined)
	assert.False(t, a.PCOpenInterest.Defined)
}

func TestComputeChainAnalyticsEmptyChain(t *testing.T) {
	_, err := ComputeChainAnalytics(models.OptionsChainSnapshot{Symbol: "X", Spot: 100}, chainCfg)
	assert.True(t, errors.Is(err, ErrInsufficientData))

	noSpot := testChain()
	noSpot.Spot = 0
	_, err = ComputeChainAnalytics(noSpot, chainCfg)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestMaxPainHandComputed(t *testing.T) {
	// Pin at 100: heavy OI on both sides of 100 makes settlement there
	// cheapest for sellers.
	chain := models.OptionsChainSnapshot{
		Symbol: "PIN",
		Spot:   102,
		Calls: []models.OptionContract{
			call(95, 0, 100, 0.3),
			call(100, 0, 1000, 0.3),
			call(105, 0, 100, 0.3),
		},
		Puts: []models.OptionContract{
			call(95, 0, 100, 0.3),
			call(100, 0, 1000, 0.3),
			call(105, 0, 100, 0.3),
		},
	}

	a, err := ComputeChainAnalytics(chain, chainCfg)
	require.NoError(t, err)
	require.NotNil(t, a.MaxPain)

	// Hand check: pain at 95 = puts(100)*5 + puts(105)*10 = 6000
	//             pain at 100 = calls(95)*5 + puts(105)*5 = 1000
	//             pain at 105 = calls(95)*10 + calls(100)*5 = 6000
	assert.Equal(t, 100.0, *a.MaxPain)
}

func TestMaxPainMatchesBruteForce(t *testing.T) {
	chain := testChain()
	a, err := ComputeChainAnalytics(chain, chainCfg)
	require.NoError(t, err)
	require.NotNil(t, a.MaxPain)

	// Independent brute force over the same strike grid
	strikes := map[float64]struct{}{}
	for _, c := range chain.Calls {
		strikes[c.Strike] = struct{}{}
	}
	for _, p := range chain.Puts {
		strikes[p.Strike] = struct{}{}
	}

	best := math.Inf(1)
	var bestStrike float64
	for settle := range strikes {
		var pain float64
		for _, c := range chain.Calls {
			if settle > c.Strike {
				pain += (settle - c.Strike) * float64(c.OpenInterest)
			}
		}
		for _, p := range chain.Puts {
			if settle < p.Strike {
				pain += (p.Strike - settle) * float64(p.OpenInterest)
			}
		}
		if pain < best || (pain == best && settle < bestStrike) {
			best = pain
			bestStrike = settle
		}
	}
	assert.Equal(t, bestStrike, *a.MaxPain)
}

func TestMaxPainNoOpenInterest(t *testing.T) {
	chain := models.OptionsChainSnapshot{
		Symbol: "GHOST",
		Spot:   100,
		Calls:  []models.OptionContract{call(100, 10, 0, 0.3)},
	}
	a, err := ComputeChainAnalytics(chain, chainCfg)
	require.NoError(t, err)
	assert.Nil(t, a.MaxPain)
}

func TestUnusualActivityThresholds(t *testing.T) {
	chain := models.OptionsChainSnapshot{
		Symbol: "FLOW",
		Spot:   100,
		Calls: []models.OptionContract{
			call(100, 200, 100, 0.3), // exactly 2x: flagged
			call(105, 199, 100, 0.3), // just under: not flagged
			call(110, 500, 100, 0.3), // 5x: flagged, ranks first
			call(115, 50, 0, 0.3),    // zero OI: never flagged
		},
		Puts: []models.OptionContract{
			call(95, 300, 100, 0.3), // 3x: flagged
		},
	}

	a, err := ComputeChainAnalytics(chain, chainCfg)
	require.NoError(t, err)

	require.Len(t, a.Unusual, 3)
	// Sorted by volume/OI descending
	assert.Equal(t, 110.0, a.Unusual[0].Contract.Strike)
	assert.Equal(t, "CALL", a.Unusual[0].Side)
	assert.Equal(t, 95.0, a.Unusual[1].Contract.Strike)
	assert.Equal(t, "PUT", a.Unusual[1].Side)
	assert.Equal(t, 100.0, a.Unusual[2].Contract.Strike)
}

func TestTopStrikesLimited(t *testing.T) {
	chain := testChain()
	a, err := ComputeChainAnalytics(chain, ChainConfig{UnusualActivityMultiple: 2, TopStrikes: 2})
	require.NoError(t, err)

	require.Len(t, a.TopCallsByOI, 2)
	assert.Equal(t, 100.0, a.TopCallsByOI[0].Strike) // OI 1000 first
	assert.Equal(t, 90.0, a.TopCallsByOI[1].Strike)  // then OI 500

	require.Len(t, a.TopCallsByVol, 2)
	assert.Equal(t, 100.0, a.TopCallsByVol[0].Strike) // volume 300 first
}

func TestComputeTermStructure(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	mk := func(daysOut int, iv float64) models.OptionsChainSnapshot {
		return models.OptionsChainSnapshot{
			Symbol:     "TERM",
			Spot:       100,
			Expiration: now.AddDate(0, 0, daysOut),
			Calls:      []models.OptionContract{call(100, 10, 100, iv)},
		}
	}

	// Deliberately out of order on input
	ts, err := ComputeTermStructure([]models.OptionsChainSnapshot{
		mk(90, 0.25), mk(7, 0.40), mk(30, 0.32),
	}, now)
	require.NoError(t, err)

	require.Len(t, ts.Points, 3)
	assert.Equal(t, 7, ts.Points[0].DTE)
	assert.Equal(t, 30, ts.Points[1].DTE)
	assert.Equal(t, 90, ts.Points[2].DTE)
	// Near 40% minus far 25%
	assert.InDelta(t, 15.0, ts.Contango, 1e-9)
}

func TestComputeTermStructureNeedsTwoPoints(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	single := []models.OptionsChainSnapshot{{
		Symbol:     "ONE",
		Spot:       100,
		Expiration: now.AddDate(0, 0, 7),
		Calls:      []models.OptionContract{call(100, 10, 100, 0.3)},
	}}
	_, err := ComputeTermStructure(single, now)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestComputeRealizedVolContext(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 260)
	closes[0] = 100
	// Alternating moves give a stable, non-degenerate vol
	for i := 1; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] * 1.01
		} else {
			closes[i] = closes[i-1] * 0.99
		}
	}
	series := dailySeries("VOL", now.AddDate(0, 0, -259), closes)

	ctx, err := ComputeRealizedVolContext(series, 25, VolConfig{PeriodsPerYear: 252})
	require.NoError(t, err)

	assert.Greater(t, ctx.RealizedVol30D, 0.0)
	assert.GreaterOrEqual(t, ctx.VolHigh52W, ctx.VolLow52W)
	assert.InDelta(t, 25-ctx.RealizedVol30D, ctx.IVRVSpread, 1e-9)
}

func TestComputeRealizedVolContextShortHistory(t *testing.T) {
	now := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	series := dailySeries("SHORT", now.AddDate(0, 0, -10), []float64{100, 101, 102})
	_, err := ComputeRealizedVolContext(series, 25, VolConfig{PeriodsPerYear: 252})
	assert.True(t, errors.Is(err, ErrInsufficientData))
}
