package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specula/internal/common"
	"github.com/ternarybob/specula/internal/provider"
	"github.com/ternarybob/specula/internal/services/markets"
	"github.com/ternarybob/specula/internal/services/options"
	"github.com/ternarybob/specula/internal/services/sectors"
	"github.com/ternarybob/specula/internal/services/tickers"
	"github.com/ternarybob/specula/internal/yahoo"
)

var (
	screenFlag     = flag.String("screen", "markets", "Screen to render: markets, sector, ticker, options")
	nameFlag       = flag.String("name", "", "Sector name for -screen sector (e.g. tech, energy)")
	symbolFlag     = flag.String("symbol", "", "Ticker symbol for -screen ticker or options; comma-separate several for a comparison table")
	expirationFlag = flag.String("expiration", "nearest", "Options expiration: 'nearest' or YYYY-MM-DD")
	configFlag     = flag.String("config", "specula.toml", "Configuration file path")
	showVersion    = flag.Bool("version", false, "Print version information")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Specula version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	config, err := common.LoadFromFile(*configFlag)
	if err != nil {
		arbor.NewLogger().Fatal().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger := common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	client := yahoo.NewClient(
		yahoo.WithBaseURL(config.Yahoo.BaseURL),
		yahoo.WithHTTPClient(&http.Client{Timeout: config.Yahoo.RequestTimeout}),
		yahoo.WithRateLimit(config.Yahoo.RateLimit),
		yahoo.WithUserAgent(config.Yahoo.UserAgent),
		yahoo.WithLogger(logger),
	)
	dataProvider := provider.NewService(client, config.Provider, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	screen, err := renderScreen(ctx, dataProvider, config, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("screen", *screenFlag).Msg("Screen failed")
		os.Exit(1)
	}

	fmt.Println(screen)
}

func renderScreen(ctx context.Context, dataProvider *provider.Service, config *common.Config, logger arbor.ILogger) (string, error) {
	switch *screenFlag {
	case "markets":
		return markets.NewService(dataProvider, config, logger).Screen(ctx)

	case "sector":
		if *nameFlag == "" {
			return "", fmt.Errorf("-screen sector requires -name")
		}
		return sectors.NewService(dataProvider, config, logger).Screen(ctx, *nameFlag)

	case "ticker":
		symbols := splitSymbols(*symbolFlag)
		if len(symbols) == 0 {
			return "", fmt.Errorf("-screen ticker requires -symbol")
		}
		svc := tickers.NewService(dataProvider, config, logger)
		if len(symbols) > 1 {
			return svc.CompareScreen(ctx, symbols)
		}
		return svc.Screen(ctx, symbols[0])

	case "options":
		if *symbolFlag == "" {
			return "", fmt.Errorf("-screen options requires -symbol")
		}
		return options.NewService(dataProvider, config, logger).Screen(ctx, *symbolFlag, *expirationFlag)

	default:
		return "", fmt.Errorf("unknown screen %q, want markets, sector, ticker, or options", *screenFlag)
	}
}

func splitSymbols(arg string) []string {
	var out []string
	for _, s := range strings.Split(arg, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
