package sectors

import (
	"context"
	"fmt"
	"strings"
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

// Service renders the sector drill-down screen.
type Service struct {
	provider DataProvider
	cfg      *common.Config
	logger   arbor.ILogger
	now      func() time.Time
}

// NewService creates the sectors screen service.
func NewService(provider DataProvider, cfg *common.Config, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Screen renders a sector ETF's performance with its top holdings.
func (s *Service) Screen(ctx context.Context, name string) (string, error) {
	etf, ok := common.ResolveSector(name)
	if !ok {
		return "", fmt.Errorf("unknown sector %q, try one of: %s", name, strings.Join(common.SectorNames(), ", "))
	}

	holdings := sectorHoldings[etf]
	if limit := s.cfg.Screens.SectorHoldings; limit > 0 && len(holdings) > limit {
		holdings = holdings[:limit]
	}

	symbols := make([]string, 0, len(holdings)+1)
	symbols = append(symbols, etf)
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}

	quotes, err := s.provider.GetQuotes(ctx, symbols...)
	if err != nil {
		return "", fmt.Errorf("fetching sector quotes: %w", err)
	}

	etfQuote, ok := quotes[etf]
	if !ok {
		return "", fmt.Errorf("no quote for sector ETF %s", etf)
	}

	histories, failures := s.provider.GetPriceSeriesMulti(ctx, symbols)
	for symbol, ferr := range failures {
		s.logger.Warn().Err(ferr).Str("symbol", symbol).Msg("No holding history")
	}

	now := s.now()
	horizons := []analytics.Horizon{
		{Label: "1M", Lookback: 30 * 24 * time.Hour},
		{Label: "1Y", Lookback: 365 * 24 * time.Hour},
	}

	momentumFor := func(symbol string, price float64) (oneMonth, oneYear *float64) {
		series, ok := histories[symbol]
		if !ok {
			return nil, nil
		}
		momentum := analytics.ComputeMomentum(*series, price, now, horizons, s.cfg.Analytics.MomentumWindowDays)
		if pct, ok := momentum["1M"]; ok {
			oneMonth = &pct
		}
		if pct, ok := momentum["1Y"]; ok {
			oneYear = &pct
		}
		return oneMonth, oneYear
	}

	view := formatters.SectorView{
		Name:      common.SectorDisplayNames[etf],
		Symbol:    etf,
		ChangePct: etfQuote.ChangePercent,
		Now:       now,
	}
	view.OneMonth, view.OneYear = momentumFor(etf, etfQuote.Price)

	for _, h := range holdings {
		row := formatters.HoldingRow{
			Symbol:    h.Symbol,
			Name:      h.Name,
			WeightPct: h.Weight,
		}
		if quote, ok := quotes[h.Symbol]; ok {
			pct := quote.ChangePercent
			row.ChangePct = &pct
			row.OneMonth, row.OneYear = momentumFor(h.Symbol, quote.Price)
		}
		view.Holdings = append(view.Holdings, row)
	}

	return formatters.RenderSector(view), nil
}
