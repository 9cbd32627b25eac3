package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ternarybob/specula/internal/models"
)

// RegressionConfig bounds the factor regression.
type RegressionConfig struct {
	MinObservations int     // absolute floor on observations (default 30)
	PeriodsPerYear  float64 // annualization factor (252 for daily)
}

// FactorModel is a fitted linear decomposition of a security's returns.
// Volatilities are annualized and in percent. RSquared is nil when the
// security's return variance is zero.
type FactorModel struct {
	Symbol       string             `json:"symbol"`
	Alpha        float64            `json:"alpha"`
	Loadings     map[string]float64 `json:"loadings"`
	RSquared     *float64           `json:"r_squared,omitempty"`
	TotalVol     float64            `json:"total_vol"`
	IdioVol      float64            `json:"idio_vol"`
	Observations int                `json:"observations"`
	Start        time.Time          `json:"start"`
	End          time.Time          `json:"end"`
}

// ComputeFactorModel fits security returns against the given factor return
// series by ordinary least squares. Every factor series must share the
// security's timestamps exactly, and the observation count must exceed both
// the configured floor and the parameter count.
func ComputeFactorModel(security models.ReturnSeries, factors map[string]models.ReturnSeries, cfg RegressionConfig) (*FactorModel, error) {
	n := security.Len()
	k := len(factors)
	if k == 0 {
		return nil, fmt.Errorf("%w: no factors given", ErrInsufficientData)
	}
	if n < cfg.MinObservations || n <= k+1 {
		return nil, fmt.Errorf("%w: %d observations, need at least %d", ErrInsufficientData, n, maxInt(cfg.MinObservations, k+2))
	}

	// Deterministic factor ordering
	names := make([]string, 0, k)
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := factors[name]
		if !f.SameDates(security) {
			return nil, fmt.Errorf("%w: factor %s does not share security dates", ErrMisalignedSeries, name)
		}
	}

	// Design matrix with intercept column, solved via normal equations.
	p := k + 1
	xtx := make([][]float64, p)
	for i := range xtx {
		xtx[i] = make([]float64, p)
	}
	xty := make([]float64, p)

	row := make([]float64, p)
	for t := 0; t < n; t++ {
		row[0] = 1
		for j, name := range names {
			row[j+1] = factors[name].Values[t]
		}
		y := security.Values[t]
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * y
		}
	}

	coef, err := solveLinear(xtx, xty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInsufficientData, err)
	}

	// Residuals and fit quality
	residuals := make([]float64, n)
	meanY := Mean(security.Values)
	var ssRes, ssTot float64
	for t := 0; t < n; t++ {
		pred := coef[0]
		for j, name := range names {
			pred += coef[j+1] * factors[name].Values[t]
		}
		residuals[t] = security.Values[t] - pred
		ssRes += residuals[t] * residuals[t]
		d := security.Values[t] - meanY
		ssTot += d * d
	}

	// A constant series leaves rounding noise in ssTot rather than an exact
	// zero, so the variance is judged against the scale of the mean.
	var rSquared *float64
	if ssTot > 0 && ssTot > 1e-12*float64(n)*meanY*meanY {
		r2 := 1 - ssRes/ssTot
		rSquared = &r2
	}

	loadings := make(map[string]float64, k)
	for j, name := range names {
		loadings[name] = coef[j+1]
	}

	return &FactorModel{
		Symbol:       security.Symbol,
		Alpha:        coef[0],
		Loadings:     loadings,
		RSquared:     rSquared,
		TotalVol:     AnnualizedVol(security.Values, cfg.PeriodsPerYear),
		IdioVol:      StdDev(residuals) * math.Sqrt(cfg.PeriodsPerYear) * 100,
		Observations: n,
		Start:        security.Dates[0],
		End:          security.Dates[n-1],
	}, nil
}

// Attribution decomposes one day's return through a fitted model.
type Attribution struct {
	Predicted     float64            `json:"predicted"`
	Residual      float64            `json:"residual"`
	Contributions map[string]float64 `json:"contributions"`
}

// Attribute applies a fitted model to a single day's factor returns. It
// never refits; an error is returned when a model factor is missing from
// the input.
func Attribute(model *FactorModel, actual float64, factorReturns map[string]float64) (*Attribution, error) {
	contributions := make(map[string]float64, len(model.Loadings))
	predicted := model.Alpha
	for name, beta := range model.Loadings {
		r, ok := factorReturns[name]
		if !ok {
			return nil, fmt.Errorf("missing return for factor %s", name)
		}
		contributions[name] = beta * r
		predicted += beta * r
	}
	return &Attribution{
		Predicted:     predicted,
		Residual:      actual - predicted,
		Contributions: contributions,
	}, nil
}

// RegimeConfig sets the criterion for flagging a loading shift between a
// long and a short estimation window.
type RegimeConfig struct {
	BetaRatio       float64 // flag when |short|/|long| meets this (default 2)
	MinObservations int     // short window must have at least this many
}

// RegimeComparison reports how a factor loading moved between two fitted
// windows. Ratio is nil when the long-window loading is zero.
type RegimeComparison struct {
	Factor    string   `json:"factor"`
	LongBeta  float64  `json:"long_beta"`
	ShortBeta float64  `json:"short_beta"`
	Ratio     *float64 `json:"ratio,omitempty"`
	Shifted   bool     `json:"shifted"`
}

// CompareRegimes flags a regime shift when the short-window loading is at
// least cfg.BetaRatio times the long-window loading in magnitude and the
// short window carries enough observations to be trusted.
func CompareRegimes(long, short *FactorModel, factor string, cfg RegimeConfig) (*RegimeComparison, error) {
	longBeta, ok := long.Loadings[factor]
	if !ok {
		return nil, fmt.Errorf("factor %s not in long-window model", factor)
	}
	shortBeta, ok := short.Loadings[factor]
	if !ok {
		return nil, fmt.Errorf("factor %s not in short-window model", factor)
	}

	cmp := &RegimeComparison{
		Factor:    factor,
		LongBeta:  longBeta,
		ShortBeta: shortBeta,
	}
	if longBeta != 0 {
		ratio := math.Abs(shortBeta) / math.Abs(longBeta)
		cmp.Ratio = &ratio
		cmp.Shifted = ratio >= cfg.BetaRatio && short.Observations >= cfg.MinObservations
	}
	return cmp, nil
}

// solveLinear solves a b = y by Gaussian elimination with partial pivoting.
func solveLinear(a [][]float64, y []float64) ([]float64, error) {
	n := len(a)
	// Work on copies; callers keep their matrices.
	m := make([][]float64, n)
	for i := range a {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = y[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular design matrix")
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := m[i][n]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}
	return x, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
