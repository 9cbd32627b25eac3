package sectors

import (
	"github.com/ternarybob/specula/internal/models"
)

// Top-10 holdings per GICS sector ETF. Yahoo exposes no JSON endpoint for
// fund constituents, so the tables are maintained here; weights are
// approximate fund percentages and only drive display ordering.
var sectorHoldings = map[string][]models.Holding{
	"XLK": {
		{Symbol: "MSFT", Name: "Microsoft", Weight: 13.6},
		{Symbol: "AAPL", Name: "Apple", Weight: 13.1},
		{Symbol: "NVDA", Name: "NVIDIA", Weight: 12.8},
		{Symbol: "AVGO", Name: "Broadcom", Weight: 5.2},
		{Symbol: "ORCL", Name: "Oracle", Weight: 3.1},
		{Symbol: "CRM", Name: "Salesforce", Weight: 2.4},
		{Symbol: "CSCO", Name: "Cisco Systems", Weight: 2.2},
		{Symbol: "AMD", Name: "Advanced Micro", Weight: 2.1},
		{Symbol: "ADBE", Name: "Adobe", Weight: 1.9},
		{Symbol: "ACN", Name: "Accenture", Weight: 1.8},
	},
	"XLF": {
		{Symbol: "BRK-B", Name: "Berkshire Hath", Weight: 12.9},
		{Symbol: "JPM", Name: "JPMorgan Chase", Weight: 10.1},
		{Symbol: "V", Name: "Visa", Weight: 7.3},
		{Symbol: "MA", Name: "Mastercard", Weight: 6.2},
		{Symbol: "BAC", Name: "Bank of America", Weight: 4.5},
		{Symbol: "WFC", Name: "Wells Fargo", Weight: 3.6},
		{Symbol: "GS", Name: "Goldman Sachs", Weight: 2.9},
		{Symbol: "MS", Name: "Morgan Stanley", Weight: 2.5},
		{Symbol: "AXP", Name: "American Expres", Weight: 2.4},
		{Symbol: "SPGI", Name: "S&P Global", Weight: 2.3},
	},
	"XLV": {
		{Symbol: "LLY", Name: "Eli Lilly", Weight: 11.8},
		{Symbol: "UNH", Name: "UnitedHealth", Weight: 8.4},
		{Symbol: "JNJ", Name: "Johnson&Johnson", Weight: 7.6},
		{Symbol: "ABBV", Name: "AbbVie", Weight: 6.3},
		{Symbol: "MRK", Name: "Merck", Weight: 4.8},
		{Symbol: "TMO", Name: "Thermo Fisher", Weight: 3.9},
		{Symbol: "ABT", Name: "Abbott Labs", Weight: 3.7},
		{Symbol: "ISRG", Name: "Intuitive Surg", Weight: 3.4},
		{Symbol: "AMGN", Name: "Amgen", Weight: 2.9},
		{Symbol: "PFE", Name: "Pfizer", Weight: 2.7},
	},
	"XLE": {
		{Symbol: "XOM", Name: "Exxon Mobil", Weight: 22.3},
		{Symbol: "CVX", Name: "Chevron", Weight: 16.9},
		{Symbol: "COP", Name: "ConocoPhillips", Weight: 7.8},
		{Symbol: "WMB", Name: "Williams Cos", Weight: 4.5},
		{Symbol: "EOG", Name: "EOG Resources", Weight: 4.3},
		{Symbol: "SLB", Name: "Schlumberger", Weight: 4.0},
		{Symbol: "MPC", Name: "Marathon Petrol", Weight: 3.8},
		{Symbol: "PSX", Name: "Phillips 66", Weight: 3.6},
		{Symbol: "KMI", Name: "Kinder Morgan", Weight: 3.4},
		{Symbol: "OKE", Name: "ONEOK", Weight: 3.3},
	},
	"XLY": {
		{Symbol: "AMZN", Name: "Amazon", Weight: 22.1},
		{Symbol: "TSLA", Name: "Tesla", Weight: 13.8},
		{Symbol: "HD", Name: "Home Depot", Weight: 8.7},
		{Symbol: "MCD", Name: "McDonald's", Weight: 4.2},
		{Symbol: "BKNG", Name: "Booking Hldgs", Weight: 3.9},
		{Symbol: "LOW", Name: "Lowe's", Weight: 3.3},
		{Symbol: "TJX", Name: "TJX Companies", Weight: 3.1},
		{Symbol: "SBUX", Name: "Starbucks", Weight: 2.4},
		{Symbol: "NKE", Name: "Nike", Weight: 2.2},
		{Symbol: "CMG", Name: "Chipotle", Weight: 2.0},
	},
	"XLI": {
		{Symbol: "GE", Name: "GE Aerospace", Weight: 4.9},
		{Symbol: "CAT", Name: "Caterpillar", Weight: 4.4},
		{Symbol: "RTX", Name: "RTX Corp", Weight: 4.2},
		{Symbol: "UBER", Name: "Uber", Weight: 3.9},
		{Symbol: "HON", Name: "Honeywell", Weight: 3.6},
		{Symbol: "UNP", Name: "Union Pacific", Weight: 3.4},
		{Symbol: "ETN", Name: "Eaton", Weight: 3.2},
		{Symbol: "ADP", Name: "ADP", Weight: 2.9},
		{Symbol: "DE", Name: "Deere", Weight: 2.8},
		{Symbol: "LMT", Name: "Lockheed Martin", Weight: 2.5},
	},
	"XLB": {
		{Symbol: "LIN", Name: "Linde", Weight: 16.2},
		{Symbol: "SHW", Name: "Sherwin-William", Weight: 7.1},
		{Symbol: "APD", Name: "Air Products", Weight: 5.8},
		{Symbol: "ECL", Name: "Ecolab", Weight: 5.4},
		{Symbol: "FCX", Name: "Freeport-McMoRa", Weight: 5.0},
		{Symbol: "NEM", Name: "Newmont", Weight: 4.6},
		{Symbol: "CTVA", Name: "Corteva", Weight: 4.2},
		{Symbol: "DOW", Name: "Dow", Weight: 3.3},
		{Symbol: "DD", Name: "DuPont", Weight: 3.2},
		{Symbol: "PPG", Name: "PPG Industries", Weight: 3.0},
	},
	"XLU": {
		{Symbol: "NEE", Name: "NextEra Energy", Weight: 11.4},
		{Symbol: "SO", Name: "Southern Co", Weight: 8.2},
		{Symbol: "DUK", Name: "Duke Energy", Weight: 7.4},
		{Symbol: "CEG", Name: "Constellation", Weight: 6.8},
		{Symbol: "SRE", Name: "Sempra", Weight: 4.5},
		{Symbol: "AEP", Name: "American Electr", Weight: 4.3},
		{Symbol: "VST", Name: "Vistra", Weight: 4.1},
		{Symbol: "D", Name: "Dominion Energy", Weight: 3.9},
		{Symbol: "PCG", Name: "PG&E", Weight: 3.5},
		{Symbol: "EXC", Name: "Exelon", Weight: 3.3},
	},
	"XLP": {
		{Symbol: "PG", Name: "Procter&Gamble", Weight: 14.1},
		{Symbol: "COST", Name: "Costco", Weight: 13.8},
		{Symbol: "WMT", Name: "Walmart", Weight: 11.2},
		{Symbol: "KO", Name: "Coca-Cola", Weight: 8.9},
		{Symbol: "PM", Name: "Philip Morris", Weight: 5.4},
		{Symbol: "PEP", Name: "PepsiCo", Weight: 4.9},
		{Symbol: "MDLZ", Name: "Mondelez", Weight: 3.7},
		{Symbol: "MO", Name: "Altria", Weight: 3.5},
		{Symbol: "CL", Name: "Colgate-Palmoli", Weight: 3.2},
		{Symbol: "TGT", Name: "Target", Weight: 2.3},
	},
	"XLRE": {
		{Symbol: "PLD", Name: "Prologis", Weight: 9.1},
		{Symbol: "AMT", Name: "American Tower", Weight: 8.8},
		{Symbol: "EQIX", Name: "Equinix", Weight: 7.2},
		{Symbol: "WELL", Name: "Welltower", Weight: 6.9},
		{Symbol: "SPG", Name: "Simon Property", Weight: 4.8},
		{Symbol: "DLR", Name: "Digital Realty", Weight: 4.6},
		{Symbol: "PSA", Name: "Public Storage", Weight: 4.3},
		{Symbol: "O", Name: "Realty Income", Weight: 4.1},
		{Symbol: "CCI", Name: "Crown Castle", Weight: 3.5},
		{Symbol: "CBRE", Name: "CBRE Group", Weight: 3.3},
	},
	"XLC": {
		{Symbol: "META", Name: "Meta Platforms", Weight: 21.8},
		{Symbol: "GOOGL", Name: "Alphabet A", Weight: 12.4},
		{Symbol: "GOOG", Name: "Alphabet C", Weight: 10.3},
		{Symbol: "NFLX", Name: "Netflix", Weight: 7.1},
		{Symbol: "TMUS", Name: "T-Mobile US", Weight: 4.8},
		{Symbol: "DIS", Name: "Walt Disney", Weight: 4.5},
		{Symbol: "CMCSA", Name: "Comcast", Weight: 3.6},
		{Symbol: "VZ", Name: "Verizon", Weight: 3.4},
		{Symbol: "T", Name: "AT&T", Weight: 3.3},
		{Symbol: "EA", Name: "Electronic Arts", Weight: 2.2},
	},
}
