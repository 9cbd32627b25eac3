package formatters

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/specula/internal/analytics"
	"github.com/ternarybob/specula/internal/models"
)

func TestFmtRatio(t *testing.T) {
	assert.Equal(t, "n/a", fmtRatio(analytics.Ratio{}))
	assert.Equal(t, "0.85", fmtRatio(analytics.Ratio{Value: 0.85, Defined: true}))
}

func TestFmtSignedPct(t *testing.T) {
	v := 12.34
	assert.Equal(t, "  +12.3%", fmtSignedPct(&v, 8))
	assert.Equal(t, strings.Repeat(" ", 8), fmtSignedPct(nil, 8))

	neg := -3.2
	assert.Contains(t, fmtSignedPct(&neg, 7), "-3.2%")
}

func TestFmtMarketCap(t *testing.T) {
	assert.Equal(t, "n/a", fmtMarketCap(nil))
	cap := int64(2_500_000_000_000)
	assert.Equal(t, "2500.0B", fmtMarketCap(&cap))
}

func TestFmtCount(t *testing.T) {
	assert.Equal(t, "1,234,567", fmtCount(1234567))
}

func TestFooterUsesEasternTime(t *testing.T) {
	now := time.Date(2026, 8, 18, 15, 0, 0, 0, time.UTC)
	f := footer(now)
	assert.Contains(t, f, "Data as of 2026-08-18 11:00 EDT")
	assert.Contains(t, f, "Source: Yahoo Finance")
}

func TestRangeBar(t *testing.T) {
	assert.Equal(t, "===============.....", rangeBar(75, 20))
	assert.Equal(t, strings.Repeat(".", 20), rangeBar(0, 20))
	assert.Equal(t, strings.Repeat("=", 20), rangeBar(100, 20))
	// clamped outside 0-100
	assert.Equal(t, strings.Repeat("=", 20), rangeBar(130, 20))
}

func TestRenderMarketsColumns(t *testing.T) {
	oneMonth := 4.2
	view := MarketsView{
		Now: time.Date(2026, 8, 18, 15, 0, 0, 0, time.UTC),
		Sections: []MarketSection{
			{
				Title:        "MARKET",
				Status:       "Open",
				ShowMomentum: true,
				Rows: []MarketRow{
					{DisplayName: "S&P 500", Price: 6100.25, ChangePct: 0.42, OneMonth: &oneMonth},
				},
			},
			{
				Title: "MARKET FUTURES",
				Rows: []MarketRow{
					{DisplayName: "S&P 500", Price: 6105.00, ChangePct: 0.12},
				},
			},
			{Title: "EMPTY"},
		},
	}

	out := RenderMarkets(view)
	assert.Contains(t, out, "MARKETS | Tue 2026-08-18 11:00 EDT")
	assert.Contains(t, out, "MARKET (OPEN)")
	assert.Contains(t, out, "1M")
	assert.Contains(t, out, "6100.25")
	assert.Contains(t, out, "+4.2%")
	// no-momentum section drops the trailing columns
	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "MARKET FUTURES") {
			assert.NotContains(t, line, "1M")
		}
	}
	// sections without rows vanish entirely
	assert.NotContains(t, out, "EMPTY")
}

func TestRenderMarketsErrorRow(t *testing.T) {
	view := MarketsView{
		Now: time.Now(),
		Sections: []MarketSection{
			{Title: "VOLATILITY", ShowMomentum: true, Rows: []MarketRow{
				{DisplayName: "VIX", Err: "no quote"},
			}},
		},
	}
	out := RenderMarkets(view)
	assert.Contains(t, out, "ERROR - no quote")
}

func TestRenderSector(t *testing.T) {
	change := 0.8
	view := SectorView{
		Name:      "Technology",
		Symbol:    "XLK",
		ChangePct: 1.25,
		Now:       time.Date(2026, 8, 18, 15, 0, 0, 0, time.UTC),
		Holdings: []HoldingRow{
			{Symbol: "MSFT", Name: "Microsoft", WeightPct: 13.6, ChangePct: &change},
			{Symbol: "ORCL", Name: "Oracle", WeightPct: 3.1},
		},
	}

	out := RenderSector(view)
	assert.Contains(t, out, "SECTOR TECHNOLOGY")
	assert.Contains(t, out, "XLK")
	assert.Contains(t, out, "+1.25%")
	assert.Contains(t, out, "TOP HOLDINGS")
	assert.Contains(t, out, "MSFT")
	assert.Contains(t, out, "13.6%")
	// holding without a quote renders a blank change cell
	assert.Contains(t, out, "ORCL")
}

func TestRenderTickerWithoutModel(t *testing.T) {
	view := TickerView{
		Symbol: "NEWCO",
		Now:    time.Now(),
	}
	out := RenderTicker(view)
	assert.Contains(t, out, "TICKER NEWCO")
	assert.NotContains(t, out, "FACTOR EXPOSURES")
	assert.NotContains(t, out, "VALUATION")
	assert.NotContains(t, out, "OPTIONS POSITIONING")
}

func TestRenderTickerAnnotations(t *testing.T) {
	r2 := 0.82
	rsi := 74.0
	model := &analytics.FactorModel{
		Symbol:   "TSLA",
		Loadings: map[string]float64{"^GSPC": 1.9},
		RSquared: &r2,
		IdioVol:  42.0,
		TotalVol: 55.0,
	}
	view := TickerView{
		Symbol:    "TSLA",
		Benchmark: "^GSPC",
		Model:     model,
		RSI:       &rsi,
		Now:       time.Now(),
	}

	out := RenderTicker(view)
	assert.Contains(t, out, "Beta (GSPC)")
	assert.Contains(t, out, "High sensitivity")
	assert.Contains(t, out, "High stock-specific risk")
	assert.Contains(t, out, "Overbought")
}

func TestRenderCompareEmpty(t *testing.T) {
	out := RenderCompare(nil, time.Now())
	assert.Contains(t, out, "ERROR: no tickers provided")
}

func TestRenderOptionsRatioNA(t *testing.T) {
	view := OptionsView{
		Analytics: &analytics.ChainAnalytics{
			Symbol:     "AAPL",
			Spot:       230,
			Expiration: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
			// zero call volume and OI leave both ratios undefined
		},
		Now: time.Now(),
	}
	out := RenderOptions(view)
	assert.Contains(t, out, "P/C Ratio (Vol)   n/a")
	assert.Contains(t, out, "P/C Ratio (OI)    n/a")
	assert.NotContains(t, out, "MAX PAIN")
	assert.NotContains(t, out, "TERM STRUCTURE")
}

func TestRenderOptionsTermShapeLabels(t *testing.T) {
	exp := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	view := OptionsView{
		Analytics: &analytics.ChainAnalytics{Symbol: "AAPL", Spot: 230, Expiration: exp},
		Term: &analytics.TermStructure{
			Points: []analytics.TermPoint{
				{Expiration: exp, DTE: 30, ATMCallIV: 40},
				{Expiration: exp.AddDate(0, 2, 0), DTE: 90, ATMCallIV: 25},
			},
			Contango: 15,
		},
		Now: time.Now(),
	}

	out := RenderOptions(view)
	assert.Contains(t, out, "Near-Far Spread   +15.0%  CONTANGO (market expects compression)")

	view.Term.Contango = -4
	out = RenderOptions(view)
	assert.Contains(t, out, "Near-Far Spread   -4.0%  BACKWARDATION (vol expected to rise)")

	view.Term.Contango = 0.2
	out = RenderOptions(view)
	assert.Contains(t, out, "FLAT")
}

func TestRenderOptionsUnusualHeaderUsesMultiple(t *testing.T) {
	view := OptionsView{
		Analytics: &analytics.ChainAnalytics{
			Symbol:     "AAPL",
			Spot:       230,
			Expiration: time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
			Unusual: []analytics.UnusualContract{
				{Side: "CALL", Contract: models.OptionContract{Strike: 250, Volume: 900, OpenInterest: 300}, Ratio: 3},
			},
		},
		UnusualMultiple: 1.5,
		Now:             time.Now(),
	}

	out := RenderOptions(view)
	assert.Contains(t, out, "UNUSUAL ACTIVITY (volume >= 1.5x open interest)")
}

func TestRenderMarketsAnnotation(t *testing.T) {
	view := MarketsView{
		Now: time.Date(2026, 8, 18, 15, 0, 0, 0, time.UTC),
		Sections: []MarketSection{
			{Title: "VOLATILITY", ShowMomentum: true, Rows: []MarketRow{
				{DisplayName: "VIX", Ticker: "^VIX", Price: 15.2, ChangePct: -1.1, Annotation: "Fear gauge"},
			}},
			{Title: "RATES", ShowMomentum: true, Rows: []MarketRow{
				{DisplayName: "US 10Y", Ticker: "^TNX", Price: 4.2, ChangePct: 0.3},
			}},
		},
	}

	out := RenderMarkets(view)
	assert.Contains(t, out, "Fear gauge")
	lines := strings.Split(out, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "US 10Y") {
			assert.False(t, strings.HasSuffix(line, "gauge"))
		}
	}
}
