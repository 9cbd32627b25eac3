package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specula/internal/common"
	"github.com/ternarybob/specula/internal/models"
	"github.com/ternarybob/specula/internal/workers"
)

// MarketAPI is the slice of the Yahoo client the provider needs. Tests
// substitute a fake.
type MarketAPI interface {
	GetChart(ctx context.Context, symbol string, from, to time.Time) (*models.PriceSeries, error)
	GetOptions(ctx context.Context, symbol string, expiration time.Time) (*models.OptionsChainSnapshot, error)
	GetQuote(ctx context.Context, symbols ...string) (map[string]models.Quote, error)
}

// Service fetches and normalizes market data series. It holds no cache;
// every call goes to the feed.
type Service struct {
	client MarketAPI
	cfg    common.ProviderConfig
	logger arbor.ILogger
}

// NewService creates a series provider.
func NewService(client MarketAPI, cfg common.ProviderConfig, logger arbor.ILogger) *Service {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 10
	}
	if cfg.HistoryMonths <= 0 {
		cfg.HistoryMonths = 12
	}
	if cfg.BenchmarkSymbol == "" {
		cfg.BenchmarkSymbol = "^GSPC"
	}
	return &Service{client: client, cfg: cfg, logger: logger}
}

// Benchmark returns the configured benchmark symbol.
func (s *Service) Benchmark() string {
	return s.cfg.BenchmarkSymbol
}

// GetPriceSeries fetches the configured history window of daily candles.
func (s *Service) GetPriceSeries(ctx context.Context, symbol string) (*models.PriceSeries, error) {
	now := time.Now()
	return s.GetPriceSeriesRange(ctx, symbol, now.AddDate(0, -s.cfg.HistoryMonths, 0), now)
}

// GetPriceSeriesRange fetches daily candles for an explicit window.
func (s *Service) GetPriceSeriesRange(ctx context.Context, symbol string, from, to time.Time) (*models.PriceSeries, error) {
	normalized := common.NormalizeSymbol(symbol)
	if normalized == "" {
		return nil, fmt.Errorf("empty symbol")
	}
	series, err := s.client.GetChart(ctx, normalized, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetching history for %s: %w", normalized, err)
	}
	return series, nil
}

// GetPriceSeriesMulti fetches several symbols in parallel through the
// worker pool. The result maps normalized symbol to series; failed symbols
// appear in the error map instead, so one bad ticker never sinks a batch.
func (s *Service) GetPriceSeriesMulti(ctx context.Context, symbols []string) (map[string]*models.PriceSeries, map[string]error) {
	normalized := common.NormalizeSymbols(symbols)

	results := make(map[string]*models.PriceSeries, len(normalized))
	failures := make(map[string]error)
	var mu sync.Mutex

	pool := workers.NewPool(s.cfg.MaxWorkers, s.logger)
	pool.Start()

	now := time.Now()
	from := now.AddDate(0, -s.cfg.HistoryMonths, 0)

	for _, symbol := range normalized {
		symbol := symbol
		err := pool.Submit(func(jobCtx context.Context) error {
			series, err := s.client.GetChart(ctx, symbol, from, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[symbol] = err
				return nil // collected per-symbol, not a pool failure
			}
			results[symbol] = series
			return nil
		})
		if err != nil {
			mu.Lock()
			failures[symbol] = err
			mu.Unlock()
		}
	}
	pool.Wait()

	return results, failures
}

// GetTickerAndBenchmark fetches the security and the benchmark in parallel
// for factor regression. Both must succeed.
func (s *Service) GetTickerAndBenchmark(ctx context.Context, symbol string) (security, benchmark *models.PriceSeries, err error) {
	results, failures := s.GetPriceSeriesMulti(ctx, []string{symbol, s.cfg.BenchmarkSymbol})

	normalized := common.NormalizeSymbol(symbol)
	if ferr, ok := failures[normalized]; ok {
		return nil, nil, fmt.Errorf("fetching %s: %w", normalized, ferr)
	}
	if ferr, ok := failures[s.cfg.BenchmarkSymbol]; ok {
		return nil, nil, fmt.Errorf("fetching benchmark %s: %w", s.cfg.BenchmarkSymbol, ferr)
	}
	return results[normalized], results[s.cfg.BenchmarkSymbol], nil
}

// GetOptionsChain fetches one expiration's chain. The expiration argument
// accepts "nearest" or a YYYY-MM-DD date.
func (s *Service) GetOptionsChain(ctx context.Context, symbol, expiration string) (*models.OptionsChainSnapshot, error) {
	normalized := common.NormalizeSymbol(symbol)
	if normalized == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	var expTime time.Time
	if expiration != "" && !strings.EqualFold(expiration, "nearest") {
		parsed, err := time.Parse("2006-01-02", expiration)
		if err != nil {
			return nil, fmt.Errorf("invalid expiration %q, want 'nearest' or YYYY-MM-DD", expiration)
		}
		expTime = parsed
	}

	snapshot, err := s.client.GetOptions(ctx, normalized, expTime)
	if err != nil {
		return nil, fmt.Errorf("fetching options for %s: %w", normalized, err)
	}

	// An explicit expiration must be one the exchange actually lists, and
	// the feed must have honored it; a chain for another date is worse than
	// no chain at all.
	if !expTime.IsZero() && !sameDay(snapshot.Expiration, expTime) {
		if !listedDay(snapshot.Expirations, expTime) {
			return nil, fmt.Errorf("expiration %s not listed for %s", expiration, normalized)
		}
		return nil, fmt.Errorf("feed returned expiration %s for %s, wanted %s",
			snapshot.Expiration.Format("2006-01-02"), normalized, expiration)
	}

	return snapshot, nil
}

// GetChainsForExpirations fetches chains for the given expirations in
// parallel, preserving no particular order.
func (s *Service) GetChainsForExpirations(ctx context.Context, symbol string, expirations []time.Time) ([]models.OptionsChainSnapshot, error) {
	normalized := common.NormalizeSymbol(symbol)
	if normalized == "" {
		return nil, fmt.Errorf("empty symbol")
	}

	var mu sync.Mutex
	var snapshots []models.OptionsChainSnapshot

	pool := workers.NewPool(s.cfg.MaxWorkers, s.logger)
	pool.Start()
	for _, exp := range expirations {
		exp := exp
		_ = pool.Submit(func(jobCtx context.Context) error {
			snapshot, err := s.client.GetOptions(ctx, normalized, exp)
			if err != nil {
				return err
			}
			mu.Lock()
			snapshots = append(snapshots, *snapshot)
			mu.Unlock()
			return nil
		})
	}
	pool.Wait()

	if len(snapshots) == 0 && len(pool.Errors()) > 0 {
		return nil, fmt.Errorf("fetching chains for %s: %w", normalized, pool.Errors()[0])
	}
	return snapshots, nil
}

// ListExpirations returns the listed expiration dates for a symbol.
func (s *Service) ListExpirations(ctx context.Context, symbol string) ([]time.Time, error) {
	snapshot, err := s.GetOptionsChain(ctx, symbol, "nearest")
	if err != nil {
		return nil, err
	}
	return snapshot.Expirations, nil
}

// GetQuotes fetches quotes for the given symbols after normalization.
func (s *Service) GetQuotes(ctx context.Context, symbols ...string) (map[string]models.Quote, error) {
	normalized := common.NormalizeSymbols(symbols)
	if len(normalized) == 0 {
		return map[string]models.Quote{}, nil
	}
	return s.client.GetQuote(ctx, normalized...)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func listedDay(listed []time.Time, want time.Time) bool {
	for _, d := range listed {
		if sameDay(d, want) {
			return true
		}
	}
	return false
}
