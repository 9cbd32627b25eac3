package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ternarybob/specula/internal/common"
	"github.com/ternarybob/specula/internal/provider"
	"github.com/ternarybob/specula/internal/services/markets"
	"github.com/ternarybob/specula/internal/services/options"
	"github.com/ternarybob/specula/internal/services/sectors"
	"github.com/ternarybob/specula/internal/services/tickers"
	"github.com/ternarybob/specula/internal/yahoo"
)

func main() {
	configPath := os.Getenv("SPECULA_CONFIG")
	if configPath == "" {
		configPath = "specula.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Console-only logger at warn: stdout belongs to the MCP protocol.
	logger := common.StdioLogger("")

	client := yahoo.NewClient(
		yahoo.WithBaseURL(config.Yahoo.BaseURL),
		yahoo.WithHTTPClient(&http.Client{Timeout: config.Yahoo.RequestTimeout}),
		yahoo.WithRateLimit(config.Yahoo.RateLimit),
		yahoo.WithUserAgent(config.Yahoo.UserAgent),
		yahoo.WithLogger(logger),
	)
	dataProvider := provider.NewService(client, config.Provider, logger)

	marketsService := markets.NewService(dataProvider, config, logger)
	sectorsService := sectors.NewService(dataProvider, config, logger)
	tickersService := tickers.NewService(dataProvider, config, logger)
	optionsService := options.NewService(dataProvider, config, logger)

	mcpServer := server.NewMCPServer(
		"specula",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(createMarketsTool(), handleMarkets(marketsService, logger))
	mcpServer.AddTool(createSectorTool(), handleSector(sectorsService, logger))
	mcpServer.AddTool(createTickerTool(), handleTicker(tickersService, logger))
	mcpServer.AddTool(createTickerOptionsTool(), handleTickerOptions(optionsService, logger))

	// Blocks on stdio until the client disconnects
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
