package tickers

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specula/internal/analytics"
	"github.com/ternarybob/specula/internal/common"
	"github.com/ternarybob/specula/internal/formatters"
	"github.com/ternarybob/specula/internal/models"
)

// The one-month regime window carries far fewer trading days than the
// twelve-month estimation window, so it gets its own observation floor.
const shortWindowMinObs = 15

// DataProvider is the slice of the series provider this service needs.
type DataProvider interface {
	Benchmark() string
	GetQuotes(ctx context.Context, symbols ...string) (map[string]models.Quote, error)
	GetTickerAndBenchmark(ctx context.Context, symbol string) (security, benchmark *models.PriceSeries, err error)
	GetPriceSeriesMulti(ctx context.Context, symbols []string) (map[string]*models.PriceSeries, map[string]error)
	GetOptionsChain(ctx context.Context, symbol, expiration string) (*models.OptionsChainSnapshot, error)
}

// Service renders the single-ticker and batch comparison screens.
type Service struct {
	provider DataProvider
	cfg      *common.Config
	logger   arbor.ILogger
	now      func() time.Time
}

// NewService creates the tickers screen service.
func NewService(provider DataProvider, cfg *common.Config, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Screen renders the deep-dive view for one symbol: quote, factor
// decomposition against the benchmark, momentum, technicals, and a brief
// options positioning block. Analytics that cannot be computed (thin
// history, no listed options) drop off the screen rather than failing it.
func (s *Service) Screen(ctx context.Context, symbol string) (string, error) {
	normalized := common.NormalizeSymbol(symbol)
	if normalized == "" {
		return "", fmt.Errorf("empty symbol")
	}

	quotes, err := s.provider.GetQuotes(ctx, normalized)
	if err != nil {
		return "", fmt.Errorf("fetching quote for %s: %w", normalized, err)
	}
	quote, ok := quotes[normalized]
	if !ok {
		return "", fmt.Errorf("no quote for %s", normalized)
	}

	security, benchmark, err := s.provider.GetTickerAndBenchmark(ctx, normalized)
	if err != nil {
		return "", err
	}

	now := s.now()
	view := formatters.TickerView{
		Symbol:    normalized,
		Quote:     quote,
		Benchmark: s.provider.Benchmark(),
		Now:       now,
	}

	view.Model, view.Regime = s.fitModels(security, benchmark, now)

	view.Momentum = analytics.ComputeMomentum(*security, quote.Price, now,
		analytics.StandardHorizons, s.cfg.Analytics.MomentumWindowDays)

	closes := security.Closes()
	view.RSI = analytics.ComputeRSI(closes, s.cfg.Analytics.RSIPeriod)
	view.SMA50 = analytics.SMA(closes, 50)
	view.SMA200 = analytics.SMA(closes, 200)
	view.Range = analytics.ComputeRange(*security, quote.Price)

	view.Options = s.optionsSummary(ctx, normalized, now)

	return formatters.RenderTicker(view), nil
}

// fitModels fits the full-window factor model and, when the long fit
// succeeds, a one-month model for regime comparison. Either fit failing is
// logged and absent, never fatal.
func (s *Service) fitModels(security, benchmark *models.PriceSeries, now time.Time) (*analytics.FactorModel, *analytics.RegimeComparison) {
	secReturns, benchReturns := models.AlignReturns(security.Returns(), benchmark.Returns())
	factor := s.provider.Benchmark()

	longModel, err := analytics.ComputeFactorModel(secReturns,
		map[string]models.ReturnSeries{factor: benchReturns},
		analytics.RegressionConfig{
			MinObservations: s.cfg.Analytics.MinRegressionObs,
			PeriodsPerYear:  s.cfg.Analytics.PeriodsPerYear,
		})
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", security.Symbol).Msg("No factor model")
		return nil, nil
	}

	oneMonthAgo := now.AddDate(0, -1, 0)
	shortModel, err := analytics.ComputeFactorModel(secReturns.TailFrom(oneMonthAgo),
		map[string]models.ReturnSeries{factor: benchReturns.TailFrom(oneMonthAgo)},
		analytics.RegressionConfig{
			MinObservations: shortWindowMinObs,
			PeriodsPerYear:  s.cfg.Analytics.PeriodsPerYear,
		})
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", security.Symbol).Msg("No short-window model")
		return longModel, nil
	}

	regime, err := analytics.CompareRegimes(longModel, shortModel, factor, analytics.RegimeConfig{
		BetaRatio:       s.cfg.Analytics.RegimeBetaRatio,
		MinObservations: shortWindowMinObs,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", security.Symbol).Msg("Regime comparison failed")
		return longModel, nil
	}
	return longModel, regime
}

func (s *Service) optionsSummary(ctx context.Context, symbol string, now time.Time) *formatters.OptionsSummary {
	snapshot, err := s.provider.GetOptionsChain(ctx, symbol, "nearest")
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("No options chain")
		return nil
	}
	chain, err := analytics.ComputeChainAnalytics(*snapshot, analytics.ChainConfig{
		UnusualActivityMultiple: s.cfg.Analytics.UnusualActivityMultiple,
		TopStrikes:              s.cfg.Screens.TopStrikes,
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Chain analytics failed")
		return nil
	}
	return &formatters.OptionsSummary{
		PCRatioOI:  chain.PCOpenInterest,
		ATMCallIV:  chain.ATMCallIV,
		ATMPutIV:   chain.ATMPutIV,
		Expiration: chain.Expiration,
		DTE:        snapshot.DaysToExpiration(now),
	}
}

// CompareScreen renders the side-by-side table for several symbols. Bad
// symbols render as error rows; the screen fails only when every fetch does
// or when the batch exceeds the configured limit.
func (s *Service) CompareScreen(ctx context.Context, symbols []string) (string, error) {
	normalized := common.NormalizeSymbols(symbols)
	if len(normalized) == 0 {
		return "", fmt.Errorf("no symbols given")
	}
	if limit := s.cfg.Screens.BatchLimit; len(normalized) > limit {
		return "", fmt.Errorf("%d symbols exceeds the batch limit of %d", len(normalized), limit)
	}

	quotes, err := s.provider.GetQuotes(ctx, normalized...)
	if err != nil {
		return "", fmt.Errorf("fetching quotes: %w", err)
	}

	factor := s.provider.Benchmark()
	histories, failures := s.provider.GetPriceSeriesMulti(ctx, append(append([]string{}, normalized...), factor))
	for symbol, ferr := range failures {
		s.logger.Warn().Err(ferr).Str("symbol", symbol).Msg("No history")
	}
	benchReturns := models.ReturnSeries{}
	if bench, ok := histories[factor]; ok {
		benchReturns = bench.Returns()
	}

	now := s.now()
	rows := make([]formatters.CompareRow, 0, len(normalized))
	for _, symbol := range normalized {
		row := formatters.CompareRow{Symbol: symbol}

		quote, ok := quotes[symbol]
		if !ok {
			row.Err = "no quote"
			rows = append(rows, row)
			continue
		}
		row.Name = quote.ShortName
		price := quote.Price
		change := quote.ChangePercent
		row.Price = &price
		row.ChangePct = &change
		row.PE = quote.TrailingPE

		series, ok := histories[symbol]
		if !ok {
			rows = append(rows, row)
			continue
		}

		if benchReturns.Len() > 0 {
			sec, bench := models.AlignReturns(series.Returns(), benchReturns)
			model, err := analytics.ComputeFactorModel(sec,
				map[string]models.ReturnSeries{factor: bench},
				analytics.RegressionConfig{
					MinObservations: s.cfg.Analytics.MinRegressionObs,
					PeriodsPerYear:  s.cfg.Analytics.PeriodsPerYear,
				})
			if err == nil {
				beta := model.Loadings[factor]
				idio := model.IdioVol
				row.Beta = &beta
				row.IdioVol = &idio
			}
		}

		row.Momentum = analytics.ComputeMomentum(*series, quote.Price, now,
			analytics.StandardHorizons, s.cfg.Analytics.MomentumWindowDays)
		row.RSI = analytics.ComputeRSI(series.Closes(), s.cfg.Analytics.RSIPeriod)

		rows = append(rows, row)
	}

	return formatters.RenderCompare(rows, now), nil
}
