package formatters

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ternarybob/specula/internal/analytics"
)

const sourceName = "Yahoo Finance"

// screenTime renders the shared screen timestamp in US eastern time.
func screenTime(now time.Time) string {
	if loc, err := time.LoadLocation("America/New_York"); err == nil {
		now = now.In(loc)
	}
	return now.Format("2006-01-02 15:04 MST")
}

func footer(now time.Time) string {
	return fmt.Sprintf("Data as of %s | Source: %s", screenTime(now), sourceName)
}

// fmtRatio renders a ratio or "n/a" when undefined.
func fmtRatio(r analytics.Ratio) string {
	if !r.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", r.Value)
}

// fmtSignedPct renders a signed percentage or blanks of the given width.
func fmtSignedPct(v *float64, width int) string {
	if v == nil {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%+*.1f%%", width-1, *v)
}

func fmtCount(n int64) string {
	return humanize.Comma(n)
}

// fmtMarketCap renders a market cap in billions.
func fmtMarketCap(cap *int64) string {
	if cap == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1fB", float64(*cap)/1e9)
}
