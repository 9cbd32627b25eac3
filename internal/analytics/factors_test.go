package analytics

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/specula/internal/models"
)

var testCfg = RegressionConfig{MinObservations: 30, PeriodsPerYear: 252}

func tradingDates(n int) []time.Time {
	dates := make([]time.Time, n)
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		dates[i] = d
		d = d.AddDate(0, 0, 1)
	}
	return dates
}

func returnSeries(symbol string, dates []time.Time, values []float64) models.ReturnSeries {
	return models.ReturnSeries{Symbol: symbol, Dates: dates, Values: values}
}

func TestComputeFactorModelExactRecovery(t *testing.T) {
	n := 60
	dates := tradingDates(n)
	rng := rand.New(rand.NewSource(7))

	market := make([]float64, n)
	security := make([]float64, n)
	for i := 0; i < n; i++ {
		market[i] = rng.NormFloat64() * 0.01
		security[i] = 0.0004 + 1.5*market[i] // zero noise
	}

	model, err := ComputeFactorModel(
		returnSeries("TEST", dates, security),
		map[string]models.ReturnSeries{"market": returnSeries("^GSPC", dates, market)},
		testCfg,
	)
	require.NoError(t, err)

	assert.InDelta(t, 0.0004, model.Alpha, 1e-10)
	assert.InDelta(t, 1.5, model.Loadings["market"], 1e-10)
	require.NotNil(t, model.RSquared)
	assert.InDelta(t, 1.0, *model.RSquared, 1e-10)
	assert.InDelta(t, 0.0, model.IdioVol, 1e-6)
	assert.Equal(t, n, model.Observations)
	assert.Equal(t, dates[0], model.Start)
	assert.Equal(t, dates[n-1], model.End)
}

func TestComputeFactorModelNoisyRecovery(t *testing.T) {
	n := 252
	dates := tradingDates(n)
	rng := rand.New(rand.NewSource(42))

	market := make([]float64, n)
	security := make([]float64, n)
	for i := 0; i < n; i++ {
		market[i] = rng.NormFloat64() * 0.012
		security[i] = 1.5*market[i] + rng.NormFloat64()*0.004
	}

	model, err := ComputeFactorModel(
		returnSeries("TEST", dates, security),
		map[string]models.ReturnSeries{"market": returnSeries("^GSPC", dates, market)},
		testCfg,
	)
	require.NoError(t, err)

	assert.InDelta(t, 1.5, model.Loadings["market"], 0.1)
	require.NotNil(t, model.RSquared)
	assert.Greater(t, *model.RSquared, 0.8)
	assert.Greater(t, model.TotalVol, model.IdioVol)
}

func TestComputeFactorModelMultiFactor(t *testing.T) {
	n := 120
	dates := tradingDates(n)
	rng := rand.New(rand.NewSource(11))

	f1 := make([]float64, n)
	f2 := make([]float64, n)
	security := make([]float64, n)
	for i := 0; i < n; i++ {
		f1[i] = rng.NormFloat64() * 0.01
		f2[i] = rng.NormFloat64() * 0.008
		security[i] = 0.0002 + 0.9*f1[i] - 0.4*f2[i]
	}

	model, err := ComputeFactorModel(
		returnSeries("TEST", dates, security),
		map[string]models.ReturnSeries{
			"market": returnSeries("^GSPC", dates, f1),
			"rates":  returnSeries("^TNX", dates, f2),
		},
		testCfg,
	)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, model.Loadings["market"], 1e-9)
	assert.InDelta(t, -0.4, model.Loadings["rates"], 1e-9)
}

func TestComputeFactorModelInsufficientData(t *testing.T) {
	n := 10
	dates := tradingDates(n)
	values := make([]float64, n)

	_, err := ComputeFactorModel(
		returnSeries("TEST", dates, values),
		map[string]models.ReturnSeries{"market": returnSeries("^GSPC", dates, values)},
		testCfg,
	)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestComputeFactorModelNoFactors(t *testing.T) {
	n := 60
	dates := tradingDates(n)
	_, err := ComputeFactorModel(
		returnSeries("TEST", dates, make([]float64, n)),
		nil,
		testCfg,
	)
	assert.True(t, errors.Is(err, ErrInsufficientData))
}

func TestComputeFactorModelMisaligned(t *testing.T) {
	n := 60
	dates := tradingDates(n)
	shifted := make([]time.Time, n)
	for i, d := range dates {
		shifted[i] = d.AddDate(0, 0, 1)
	}
	values := make([]float64, n)

	_, err := ComputeFactorModel(
		returnSeries("TEST", dates, values),
		map[string]models.ReturnSeries{"market": returnSeries("^GSPC", shifted, values)},
		testCfg,
	)
	assert.True(t, errors.Is(err, ErrMisalignedSeries))
}

func TestComputeFactorModelZeroVariance(t *testing.T) {
	n := 60
	dates := tradingDates(n)
	rng := rand.New(rand.NewSource(3))

	market := make([]float64, n)
	flat := make([]float64, n)
	for i := range market {
		market[i] = rng.NormFloat64() * 0.01
		flat[i] = 0.001 // constant security return
	}

	model, err := ComputeFactorModel(
		returnSeries("FLAT", dates, flat),
		map[string]models.ReturnSeries{"market": returnSeries("^GSPC", dates, market)},
		testCfg,
	)
	require.NoError(t, err)
	assert.Nil(t, model.RSquared)
}

func TestComputeFactorModelDeterministic(t *testing.T) {
	n := 80
	dates := tradingDates(n)
	rng := rand.New(rand.NewSource(5))

	market := make([]float64, n)
	security := make([]float64, n)
	for i := 0; i < n; i++ {
		market[i] = rng.NormFloat64() * 0.01
		security[i] = 1.2*market[i] + rng.NormFloat64()*0.002
	}
	factors := map[string]models.ReturnSeries{"market": returnSeries("^GSPC", dates, market)}

	first, err := ComputeFactorModel(returnSeries("TEST", dates, security), factors, testCfg)
	require.NoError(t, err)
	second, err := ComputeFactorModel(returnSeries("TEST", dates, security), factors, testCfg)
	require.NoError(t, err)

	assert.Equal(t, first.Alpha, second.Alpha)
	assert.Equal(t, first.Loadings, second.Loadings)
	assert.Equal(t, *first.RSquared, *second.RSquared)
	assert.Equal(t, first.IdioVol, second.IdioVol)
}

func TestAttribute(t *testing.T) {
	model := &FactorModel{
		Alpha:    0.001,
		Loadings: map[string]float64{"market": 1.5, "rates": -0.3},
	}

	attr, err := Attribute(model, 0.02, map[string]float64{"market": 0.01, "rates": 0.005})
	require.NoError(t, err)

	predicted := 0.001 + 1.5*0.01 - 0.3*0.005
	assert.InDelta(t, predicted, attr.Predicted, 1e-12)
	assert.InDelta(t, 0.02-predicted, attr.Residual, 1e-12)
	assert.InDelta(t, 0.015, attr.Contributions["market"], 1e-12)

	_, err = Attribute(model, 0.02, map[string]float64{"market": 0.01})
	assert.Error(t, err)
}

func TestCompareRegimes(t *testing.T) {
	cfg := RegimeConfig{BetaRatio: 2, MinObservations: 15}

	long := &FactorModel{Loadings: map[string]float64{"market": 0.3}, Observations: 250}
	short := &FactorModel{Loadings: map[string]float64{"market": 1.5}, Observations: 20}

	cmp, err := CompareRegimes(long, short, "market", cfg)
	require.NoError(t, err)
	require.NotNil(t, cmp.Ratio)
	assert.InDelta(t, 5.0, *cmp.Ratio, 1e-12)
	assert.True(t, cmp.Shifted)

	// Same shift but too few short-window observations: not flagged
	short.Observations = 10
	cmp, err = CompareRegimes(long, short, "market", cfg)
	require.NoError(t, err)
	assert.False(t, cmp.Shifted)

	// Below the ratio threshold: not flagged
	short = &FactorModel{Loadings: map[string]float64{"market": 0.5}, Observations: 20}
	cmp, err = CompareRegimes(long, short, "market", cfg)
	require.NoError(t, err)
	assert.False(t, cmp.Shifted)

	// Zero long beta: ratio undefined
	long = &FactorModel{Loadings: map[string]float64{"market": 0}, Observations: 250}
	cmp, err = CompareRegimes(long, short, "market", cfg)
	require.NoError(t, err)
	assert.Nil(t, cmp.Ratio)
	assert.False(t, cmp.Shifted)

	_, err = CompareRegimes(long, short, "gold", cfg)
	assert.Error(t, err)
}

func TestSolveLinearSingular(t *testing.T) {
	_, err := solveLinear([][]float64{{1, 1}, {2, 2}}, []float64{1, 2})
	assert.Error(t, err)
}

func TestSolveLinearKnownSystem(t *testing.T) {
	// 2x + y = 5, x - y = 1  =>  x = 2, y = 1
	x, err := solveLinear([][]float64{{2, 1}, {1, -1}}, []float64{5, 1})
	require.NoError(t, err)
	assert.InDelta(t, 2, x[0], 1e-12)
	assert.InDelta(t, 1, x[1], 1e-12)
	assert.False(t, math.IsNaN(x[0]))
}
