package models

import (
	"time"
)

// OptionContract is one strike on one side of a chain.
type OptionContract struct {
	ContractSymbol    string  `json:"contract_symbol"`
	Strike            float64 `json:"strike"`
	LastPrice         float64 `json:"last_price"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	Volume            int64   `json:"volume"`
	OpenInterest      int64   `json:"open_interest"`
	ImpliedVolatility float64 `json:"implied_volatility"` // fraction, e.g. 0.35
	InTheMoney        bool    `json:"in_the_money"`
}

// OptionsChainSnapshot is the full chain for one underlying and expiration.
// Strikes are unique per side; volume and open interest are non-negative.
// The provider enforces both when building the snapshot.
type OptionsChainSnapshot struct {
	Symbol      string           `json:"symbol"`
	Spot        float64          `json:"spot"`
	Expiration  time.Time        `json:"expiration"`
	Expirations []time.Time      `json:"expirations,omitempty"` // all listed expirations
	Calls       []OptionContract `json:"calls"`
	Puts        []OptionContract `json:"puts"`
}

// DaysToExpiration returns whole days from now to the snapshot expiration,
// floored at zero.
func (s *OptionsChainSnapshot) DaysToExpiration(now time.Time) int {
	d := int(s.Expiration.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// TotalVolume sums contract volume across one side.
func TotalVolume(contracts []OptionContract) int64 {
	var total int64
	for _, c := range contracts {
		total += c.Volume
	}
	return total
}

// TotalOpenInterest sums open interest across one side.
func TotalOpenInterest(contracts []OptionContract) int64 {
	var total int64
	for _, c := range contracts {
		total += c.OpenInterest
	}
	return total
}
