package common

import (
	"strings"
)

// Known exchange suffixes use a dot (BHP.AX, 0700.HK). Share classes on US
// exchanges use a dot in common usage but Yahoo wants a hyphen (BRK.B -> BRK-B).
// A suffix is treated as an exchange code when it is two or more characters,
// or a single letter in the small set Yahoo actually uses.
var singleLetterExchanges = map[string]bool{
	"L": true, // London
	"F": true, // Frankfurt
	"P": true, // Paris
}

// NormalizeSymbol converts common ticker notation to Yahoo Finance notation.
// It uppercases, converts slashes to hyphens, and rewrites share-class dots
// as hyphens while preserving exchange-suffix dots.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return s
	}

	// BRK/B style class notation
	s = strings.ReplaceAll(s, "/", "-")

	// Index, futures, and FX symbols pass through untouched
	if strings.HasPrefix(s, "^") || strings.Contains(s, "=") {
		return s
	}

	idx := strings.LastIndex(s, ".")
	if idx <= 0 || idx == len(s)-1 {
		return s
	}

	suffix := s[idx+1:]
	if len(suffix) >= 2 || singleLetterExchanges[suffix] {
		// Exchange suffix (e.g. .TO, .HK, .L): keep the dot
		return s
	}

	// Single-letter share class: BRK.B -> BRK-B
	return s[:idx] + "-" + suffix
}

// NormalizeSymbols normalizes a batch of symbols, dropping empties.
func NormalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if n := NormalizeSymbol(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// MarketSymbols maps snapshot keys to Yahoo symbols.
var MarketSymbols = map[string]string{
	// US indices
	"sp500":       "^GSPC",
	"nasdaq":      "^IXIC",
	"dow":         "^DJI",
	"russell2000": "^RUT",

	// Futures
	"es_futures":  "ES=F",
	"nq_futures":  "NQ=F",
	"ym_futures":  "YM=F",
	"rty_futures": "RTY=F",

	// European indices
	"stoxx50": "^STOXX50E",
	"dax":     "^GDAXI",
	"ftse":    "^FTSE",
	"cac40":   "^FCHI",

	// Asian indices
	"nikkei":   "^N225",
	"hangseng": "^HSI",
	"shanghai": "000001.SS",

	// Crypto
	"btc": "BTC-USD",
	"eth": "ETH-USD",
	"sol": "SOL-USD",

	// Commodities
	"gold":    "GC=F",
	"silver":  "SI=F",
	"oil_wti": "CL=F",
	"natgas":  "NG=F",

	// Rates
	"us10y": "^TNX",
	"us2y":  "^IRX",
	"us30y": "^TYX",

	// Volatility
	"vix": "^VIX",

	// Currencies
	"eurusd": "EURUSD=X",
	"usdjpy": "JPY=X",
	"usdcny": "CNY=X",
	"gbpusd": "GBPUSD=X",
	"usdcad": "CAD=X",
	"audusd": "AUDUSD=X",

	// GICS sector ETFs
	"tech":          "XLK",
	"financials":    "XLF",
	"energy":        "XLE",
	"healthcare":    "XLV",
	"consumer_disc": "XLY",
	"consumer_stpl": "XLP",
	"industrials":   "XLI",
	"utilities":     "XLU",
	"materials":     "XLB",
	"real_estate":   "XLRE",
	"communication": "XLC",

	// Style factor ETFs
	"momentum":  "MTUM",
	"value":     "VTV",
	"growth":    "VUG",
	"quality":   "QUAL",
	"small_cap": "IWM",
}

// ScreenSection groups snapshot keys under a screen heading.
type ScreenSection struct {
	Title string
	Keys  []string
}

// MarketSections defines the ordering of the markets screen. MARKET is shown
// during US trading hours, MARKET FUTURES outside them.
var MarketSections = []ScreenSection{
	{Title: "MARKET", Keys: []string{"sp500", "nasdaq", "dow", "russell2000"}},
	{Title: "MARKET FUTURES", Keys: []string{"es_futures", "nq_futures", "ym_futures"}},
	{Title: "VOLATILITY", Keys: []string{"vix"}},
	{Title: "COMMODITIES", Keys: []string{"gold", "oil_wti", "natgas"}},
	{Title: "RATES", Keys: []string{"us10y"}},
	{Title: "SECTORS", Keys: []string{
		"tech", "financials", "healthcare", "energy", "consumer_disc",
		"industrials", "materials", "utilities", "consumer_stpl", "real_estate", "communication",
	}},
	{Title: "STYLE FACTORS", Keys: []string{"momentum", "value", "growth", "quality", "small_cap"}},
	{Title: "CRYPTO", Keys: []string{"btc", "eth", "sol"}},
	{Title: "EUROPE", Keys: []string{"stoxx50", "dax", "ftse", "cac40"}},
	{Title: "ASIA", Keys: []string{"nikkei", "hangseng", "shanghai"}},
	{Title: "CURRENCIES", Keys: []string{"eurusd", "usdjpy", "usdcny", "gbpusd", "usdcad", "audusd"}},
}

// SectionRegions maps a section title to the region whose trading hours
// determine its Open/Closed tag on the markets screen.
var SectionRegions = map[string]string{
	"MARKET":         "us",
	"MARKET FUTURES": "us",
	"EUROPE":         "europe",
	"ASIA":           "asia",
}

// DisplayNames maps snapshot keys to terminal-friendly labels.
var DisplayNames = map[string]string{
	"sp500": "S&P 500", "nasdaq": "Nasdaq", "dow": "Dow", "russell2000": "Russell 2000",
	"es_futures": "S&P 500", "nq_futures": "Nasdaq", "ym_futures": "Dow",
	"vix":  "VIX",
	"gold": "Gold", "oil_wti": "Oil WTI", "natgas": "Nat Gas",
	"us10y": "US 10Y",
	"btc":   "Bitcoin", "eth": "Ethereum", "sol": "Solana",
	"stoxx50": "EU Stoxx50", "dax": "DE DAX", "ftse": "UK FTSE", "cac40": "FR CAC40",
	"nikkei": "JP Nikkei", "hangseng": "HK HSI", "shanghai": "CN Shanghai",
	"eurusd": "EUR/USD", "usdjpy": "USD/JPY", "usdcny": "USD/CNY",
	"gbpusd": "GBP/USD", "usdcad": "USD/CAD", "audusd": "AUD/USD",
	"tech": "Technology", "financials": "Financials", "healthcare": "Healthcare",
	"energy": "Energy", "consumer_disc": "Cons Discr", "industrials": "Industrials",
	"materials": "Materials", "utilities": "Utilities", "consumer_stpl": "Cons Staples",
	"real_estate": "Real Estate", "communication": "Communication",
	"momentum": "Momentum", "value": "Value", "growth": "Growth",
	"quality": "Quality", "small_cap": "Small Cap",
}

// FactorAnnotations are short risk notes shown beside factor rows.
var FactorAnnotations = map[string]string{
	"gold":      "Safe haven",
	"btc":       "Risk-on",
	"vix":       "Fear gauge",
	"us10y":     "Risk-free rate",
	"momentum":  "Winners keep winning (tail risk)",
	"value":     "Cheap stocks (quality trap risk)",
	"growth":    "Expensive promise (multiple compression risk)",
	"quality":   "Stable moats (rate sensitive)",
	"small_cap": "Size premium (liquidity risk)",
}

// SectorSymbols maps user-facing sector names (and common aliases) to their
// GICS sector ETF.
var SectorSymbols = map[string]string{
	"tech":                   "XLK",
	"technology":             "XLK",
	"financials":             "XLF",
	"healthcare":             "XLV",
	"health":                 "XLV",
	"energy":                 "XLE",
	"consumer_disc":          "XLY",
	"consumer_discretionary": "XLY",
	"industrials":            "XLI",
	"materials":              "XLB",
	"utilities":              "XLU",
	"consumer_stpl":          "XLP",
	"consumer_staples":       "XLP",
	"real_estate":            "XLRE",
	"realestate":             "XLRE",
	"communication":          "XLC",
	"communications":         "XLC",
	"comm":                   "XLC",
}

// SectorDisplayNames maps sector ETF symbols to screen headers.
var SectorDisplayNames = map[string]string{
	"XLK":  "Technology",
	"XLF":  "Financials",
	"XLV":  "Healthcare",
	"XLE":  "Energy",
	"XLY":  "Consumer Discretionary",
	"XLI":  "Industrials",
	"XLB":  "Materials",
	"XLU":  "Utilities",
	"XLP":  "Consumer Staples",
	"XLRE": "Real Estate",
	"XLC":  "Communication Services",
}

// ResolveSector returns the ETF symbol for a sector name or alias. The name
// is matched case-insensitively with spaces and hyphens collapsed to
// underscores. The second return is false when the sector is unknown.
func ResolveSector(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	symbol, ok := SectorSymbols[key]
	return symbol, ok
}

// SectorNames returns the canonical sector names for error messages.
func SectorNames() []string {
	return []string{
		"tech", "financials", "healthcare", "energy", "consumer_disc",
		"industrials", "materials", "utilities", "consumer_stpl",
		"real_estate", "communication",
	}
}
