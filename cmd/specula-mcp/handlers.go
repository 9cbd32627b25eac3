package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/specula/internal/interfaces"
)

// textResult wraps screen text as a tool result. Failures are reported as
// text content, never as protocol errors, so the client always gets
// something it can show.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return textResult(fmt.Sprintf("ERROR: %v", err))
}

// handleMarkets implements the markets tool
func handleMarkets(service interfaces.MarketsService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()
		logger.Debug().Str("request_id", requestID).Msg("markets screen requested")

		screen, err := service.Screen(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("request_id", requestID).Msg("markets screen failed")
			return errorResult(err), nil
		}
		return textResult(screen), nil
	}
}

// handleSector implements the sector tool
func handleSector(service interfaces.SectorsService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()

		name, err := request.RequireString("name")
		if err != nil || name == "" {
			return textResult("ERROR: name parameter is required"), nil
		}
		logger.Debug().Str("request_id", requestID).Str("sector", name).Msg("sector screen requested")

		screen, err := service.Screen(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Str("request_id", requestID).Msg("sector screen failed")
			return errorResult(err), nil
		}
		return textResult(screen), nil
	}
}

// handleTicker implements the ticker tool. An array of symbols renders the
// comparison table; a single symbol renders the deep-dive screen.
func handleTicker(service interfaces.TickersService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()

		if symbols := request.GetStringSlice("symbols", nil); len(symbols) > 0 {
			logger.Debug().Str("request_id", requestID).Int("count", len(symbols)).Msg("ticker comparison requested")
			screen, err := service.CompareScreen(ctx, symbols)
			if err != nil {
				logger.Warn().Err(err).Str("request_id", requestID).Msg("ticker comparison failed")
				return errorResult(err), nil
			}
			return textResult(screen), nil
		}

		symbol := request.GetString("symbol", "")
		if symbol == "" {
			return textResult("ERROR: provide symbol or symbols"), nil
		}
		logger.Debug().Str("request_id", requestID).Str("symbol", symbol).Msg("ticker screen requested")

		screen, err := service.Screen(ctx, symbol)
		if err != nil {
			logger.Warn().Err(err).Str("request_id", requestID).Msg("ticker screen failed")
			return errorResult(err), nil
		}
		return textResult(screen), nil
	}
}

// handleTickerOptions implements the ticker_options tool
func handleTickerOptions(service interfaces.OptionsService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.New().String()

		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return textResult("ERROR: symbol parameter is required"), nil
		}
		expiration := request.GetString("expiration", "nearest")
		logger.Debug().Str("request_id", requestID).Str("symbol", symbol).Str("expiration", expiration).Msg("options screen requested")

		screen, err := service.Screen(ctx, symbol, expiration)
		if err != nil {
			logger.Warn().Err(err).Str("request_id", requestID).Msg("options screen failed")
			return errorResult(err), nil
		}
		return textResult(screen), nil
	}
}
