package models

// Quote is a real-time (or last-close) snapshot for one symbol, as reported
// by the quote endpoint. Optional fields are pointers; absence means the
// feed did not report them for this asset class.
type Quote struct {
	Symbol           string   `json:"symbol"`
	ShortName        string   `json:"short_name,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	Price            float64  `json:"price"`
	Change           float64  `json:"change"`
	ChangePercent    float64  `json:"change_percent"`
	PreviousClose    float64  `json:"previous_close"`
	Volume           int64    `json:"volume"`
	MarketCap        *int64   `json:"market_cap,omitempty"`
	TrailingPE       *float64 `json:"trailing_pe,omitempty"`
	ForwardPE        *float64 `json:"forward_pe,omitempty"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high,omitempty"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low,omitempty"`
}

// Holding is a constituent of a sector ETF.
type Holding struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"` // pct of fund
}
