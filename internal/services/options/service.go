package options

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specula/internal/analytics"
	"github.com/ternarybob/specula/internal/common"
	"github.com/ternarybob/specula/internal/formatters"
	"github.com/ternarybob/specula/internal/models"
)

// DataProvider is the slice of the series provider this service needs.
type DataProvider interface {
	GetOptionsChain(ctx context.Context, symbol, expiration string) (*models.OptionsChainSnapshot, error)
	GetChainsForExpirations(ctx context.Context, symbol string, expirations []time.Time) ([]models.OptionsChainSnapshot, error)
	GetPriceSeries(ctx context.Context, symbol string) (*models.PriceSeries, error)
}

// Service renders the options analysis screen.
type Service struct {
	provider DataProvider
	cfg      *common.Config
	logger   arbor.ILogger
	now      func() time.Time
}

// NewService creates the options screen service.
func NewService(provider DataProvider, cfg *common.Config, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Screen renders the full chain analysis for one symbol and expiration.
// The expiration argument accepts "nearest" (or empty) or YYYY-MM-DD. The
// primary chain must resolve; the term structure, all-expirations table,
// and realized-vol context are best-effort extras.
func (s *Service) Screen(ctx context.Context, symbol, expiration string) (string, error) {
	normalized := common.NormalizeSymbol(symbol)
	if normalized == "" {
		return "", fmt.Errorf("empty symbol")
	}

	snapshot, err := s.provider.GetOptionsChain(ctx, normalized, expiration)
	if err != nil {
		return "", err
	}

	chain, err := analytics.ComputeChainAnalytics(*snapshot, analytics.ChainConfig{
		UnusualActivityMultiple: s.cfg.Analytics.UnusualActivityMultiple,
		TopStrikes:              s.cfg.Screens.TopStrikes,
	})
	if err != nil {
		return "", fmt.Errorf("analyzing chain for %s: %w", normalized, err)
	}

	now := s.now()
	view := formatters.OptionsView{
		Analytics:       chain,
		DTE:             snapshot.DaysToExpiration(now),
		UnusualMultiple: s.cfg.Analytics.UnusualActivityMultiple,
		Now:             now,
	}

	if others := s.fetchOtherChains(ctx, normalized, snapshot); len(others) > 0 {
		all := append([]models.OptionsChainSnapshot{*snapshot}, others...)

		term, err := analytics.ComputeTermStructure(s.nearestChains(all), now)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", normalized).Msg("No term structure")
		} else {
			view.Term = term
		}

		view.AllExpirations = s.summarizeExpirations(all, now)
	}

	view.VolContext = s.volContext(ctx, normalized, chain)

	return formatters.RenderOptions(view), nil
}

// fetchOtherChains fetches every other listed expiration's chain in
// parallel. Failures here degrade the screen, they never fail it.
func (s *Service) fetchOtherChains(ctx context.Context, symbol string, primary *models.OptionsChainSnapshot) []models.OptionsChainSnapshot {
	var others []time.Time
	for _, exp := range primary.Expirations {
		if !exp.Equal(primary.Expiration) {
			others = append(others, exp)
		}
	}
	if len(others) == 0 {
		return nil
	}

	chains, err := s.provider.GetChainsForExpirations(ctx, symbol, others)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("No additional expirations")
		return nil
	}
	return chains
}

// nearestChains returns the configured number of nearest expirations for
// the term structure, in date order.
func (s *Service) nearestChains(all []models.OptionsChainSnapshot) []models.OptionsChainSnapshot {
	sorted := make([]models.OptionsChainSnapshot, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Expiration.Before(sorted[j].Expiration)
	})
	if n := s.cfg.Screens.TermStructure; len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func (s *Service) summarizeExpirations(all []models.OptionsChainSnapshot, now time.Time) []formatters.ExpirationSummary {
	summaries := make([]formatters.ExpirationSummary, 0, len(all))
	for i := range all {
		snap := all[i]
		summary := formatters.ExpirationSummary{
			Expiration:  snap.Expiration,
			DTE:         snap.DaysToExpiration(now),
			CallOI:      models.TotalOpenInterest(snap.Calls),
			PutOI:       models.TotalOpenInterest(snap.Puts),
			TotalVolume: models.TotalVolume(snap.Calls) + models.TotalVolume(snap.Puts),
		}
		if chain, err := analytics.ComputeChainAnalytics(snap, analytics.ChainConfig{
			UnusualActivityMultiple: s.cfg.Analytics.UnusualActivityMultiple,
			TopStrikes:              s.cfg.Screens.TopStrikes,
		}); err == nil {
			summary.ATMIV = chain.ATMCallIV
		}
		summaries = append(summaries, summary)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Expiration.Before(summaries[j].Expiration)
	})
	return summaries
}

// volContext ranks the chain's ATM call IV within the underlying's trailing
// realized-vol range. Needs a year of history and an ATM call quote.
func (s *Service) volContext(ctx context.Context, symbol string, chain *analytics.ChainAnalytics) *analytics.RealizedVolContext {
	if chain.ATMCallIV == nil {
		return nil
	}
	prices, err := s.provider.GetPriceSeries(ctx, symbol)
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("No history for vol context")
		return nil
	}
	volCtx, err := analytics.ComputeRealizedVolContext(*prices, *chain.ATMCallIV, analytics.VolConfig{
		PeriodsPerYear: s.cfg.Analytics.PeriodsPerYear,
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("No vol context")
		return nil
	}
	return volCtx
}
