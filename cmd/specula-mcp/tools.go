package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createMarketsTool returns the markets tool definition
func createMarketsTool() mcp.Tool {
	return mcp.NewTool("markets",
		mcp.WithDescription("Market overview screen: indices or futures by session, volatility, commodities, rates, sector and style-factor ETFs, crypto, global indices, and currencies, with 1M/1Y momentum"),
	)
}

// createSectorTool returns the sector tool definition
func createSectorTool() mcp.Tool {
	return mcp.NewTool("sector",
		mcp.WithDescription("Sector drill-down screen: the GICS sector ETF's performance and momentum plus its top holdings"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Sector name: tech, financials, healthcare, energy, consumer_disc, industrials, materials, utilities, consumer_stpl, real_estate, communication"),
		),
	)
}

// createTickerTool returns the ticker tool definition
func createTickerTool() mcp.Tool {
	return mcp.NewTool("ticker",
		mcp.WithDescription("Ticker screen: quote, beta and idiosyncratic vol against the benchmark, momentum, RSI, moving averages, 52-week range, and options positioning. Pass symbols for a side-by-side comparison table instead"),
		mcp.WithString("symbol",
			mcp.Description("Single ticker symbol (e.g. AAPL, BRK.B, ^GSPC, BTC-USD)"),
		),
		mcp.WithArray("symbols",
			mcp.WithStringItems(),
			mcp.Description("Several symbols for a comparison table"),
		),
	)
}

// createTickerOptionsTool returns the ticker_options tool definition
func createTickerOptionsTool() mcp.Tool {
	return mcp.NewTool("ticker_options",
		mcp.WithDescription("Options chain analysis screen: put/call ratios, ATM IV and skew, top strikes by open interest, term structure, max pain, unusual activity, and IV vs realized vol"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Underlying ticker symbol"),
		),
		mcp.WithString("expiration",
			mcp.Description("Expiration to analyze: 'nearest' (default) or YYYY-MM-DD"),
		),
	)
}
