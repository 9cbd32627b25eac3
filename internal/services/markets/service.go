package markets

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

// DataProvider is the slice of the series provider this service needs.
type DataProvider interface {
	GetQuotes(ctx context.Context, symbols ...string) (map[string]models.Quote, error)
	GetPriceSeriesMulti(ctx context.Context, symbols []string) (map[string]*models.PriceSeries, map[string]error)
}

// Service renders the market overview screen.
type Service struct {
	provider DataProvider
	cfg      *common.Config
	logger   arbor.ILogger
	now      func() time.Time
}

// NewService creates the markets screen service.
func NewService(provider DataProvider, cfg *common.Config, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Screen fetches quotes and momentum for every overview row and renders
// the screen. Rows that fail to fetch render as errors; the screen itself
// only fails when the quote batch does.
func (s *Service) Screen(ctx context.Context) (string, error) {
	now := s.now()
	marketOpen := common.IsUSMarketOpen(now)
	futuresOpen := common.IsFuturesOpen(now)

	keys := s.visibleKeys(marketOpen, futuresOpen)

	symbols := make([]string, 0, len(keys))
	for _, key := range keys {
		symbols = append(symbols, common.MarketSymbols[key])
	}

	quotes, err := s.provider.GetQuotes(ctx, symbols...)
	if err != nil {
		return "", fmt.Errorf("fetching market quotes: %w", err)
	}

	// Momentum history for all non-futures rows in one parallel pass
	var momentumSymbols []string
	for _, key := range keys {
		if !isFuturesKey(key) {
			momentumSymbols = append(momentumSymbols, common.MarketSymbols[key])
		}
	}
	histories, failures := s.provider.GetPriceSeriesMulti(ctx, momentumSymbols)
	for symbol, ferr := range failures {
		s.logger.Warn().Err(ferr).Str("symbol", symbol).Msg("No momentum history")
	}

	horizons := []analytics.Horizon{
		{Label: "1M", Lookback: 30 * 24 * time.Hour},
		{Label: "1Y", Lookback: 365 * 24 * time.Hour},
	}

	view := formatters.MarketsView{Now: now}
	for _, section := range common.MarketSections {
		if section.Title == "MARKET" && !marketOpen {
			continue
		}
		if section.Title == "MARKET FUTURES" && (marketOpen || !futuresOpen) {
			continue
		}

		out := formatters.MarketSection{
			Title:        section.Title,
			Status:       common.MarketStatus(common.SectionRegions[section.Title], now),
			ShowTicker:   section.Title == "SECTORS" || section.Title == "STYLE FACTORS",
			ShowMomentum: section.Title != "MARKET FUTURES",
		}

		for _, key := range section.Keys {
			symbol := common.MarketSymbols[key]
			quote, ok := quotes[symbol]
			if !ok {
				out.Rows = append(out.Rows, formatters.MarketRow{
					DisplayName: common.DisplayNames[key],
					Err:         "no quote",
				})
				continue
			}

			row := formatters.MarketRow{
				DisplayName: common.DisplayNames[key],
				Ticker:      symbol,
				Price:       quote.Price,
				ChangePct:   quote.ChangePercent,
				Annotation:  common.FactorAnnotations[key],
			}
			if series, ok := histories[symbol]; ok {
				momentum := analytics.ComputeMomentum(*series, quote.Price, now, horizons, s.cfg.Analytics.MomentumWindowDays)
				if pct, ok := momentum["1M"]; ok {
					row.OneMonth = &pct
				}
				if pct, ok := momentum["1Y"]; ok {
					row.OneYear = &pct
				}
			}
			out.Rows = append(out.Rows, row)
		}
		view.Sections = append(view.Sections, out)
	}

	return formatters.RenderMarkets(view), nil
}

// visibleKeys returns the snapshot keys the current session state shows.
func (s *Service) visibleKeys(marketOpen, futuresOpen bool) []string {
	var keys []string
	for _, section := range common.MarketSections {
		if section.Title == "MARKET" && !marketOpen {
			continue
		}
		if section.Title == "MARKET FUTURES" && (marketOpen || !futuresOpen) {
			continue
		}
		keys = append(keys, section.Keys...)
	}
	return keys
}

func isFuturesKey(key string) bool {
	switch key {
	case "es_futures", "nq_futures", "ym_futures", "rty_futures":
		return true
	}
	return false
}
