package formatters

import (
	"fmt"
	"strings"
	"time"
)

// MarketRow is one rendered line of the overview screen.
type MarketRow struct {
	DisplayName string
	Ticker      string
	Price       float64
	ChangePct   float64
	OneMonth    *float64
	OneYear     *float64
	Annotation  string // short risk note, e.g. "Safe haven"
	Err         string
}

// MarketSection is a titled group of rows.
type MarketSection struct {
	Title        string
	Status       string // "Open"/"Closed", empty when not applicable
	ShowTicker   bool
	ShowMomentum bool
	Rows         []MarketRow
}

// MarketsView is everything the overview screen needs.
type MarketsView struct {
	Now      time.Time
	Sections []MarketSection
}

// RenderMarkets renders the full market overview.
func RenderMarkets(v MarketsView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MARKETS | %s %s\n\n", v.Now.Format("Mon"), screenTime(v.Now))

	for _, section := range v.Sections {
		if len(section.Rows) == 0 {
			continue
		}

		title := section.Title
		if section.Status != "" {
			title = fmt.Sprintf("%s (%s)", title, strings.ToUpper(section.Status))
		}
		if section.ShowMomentum {
			fmt.Fprintf(&b, "%-28s PRICE     CHANGE       1M         1Y\n", title)
		} else {
			fmt.Fprintf(&b, "%-28s PRICE     CHANGE\n", title)
		}

		for _, row := range section.Rows {
			if row.Err != "" {
				fmt.Fprintf(&b, "%-16s ERROR - %s\n", row.DisplayName, row.Err)
				continue
			}

			ticker := ""
			if section.ShowTicker {
				ticker = row.Ticker
			}
			fmt.Fprintf(&b, "%-16s %-8s %10.2f   %+6.2f%%", row.DisplayName, ticker, row.Price, row.ChangePct)
			if section.ShowMomentum {
				fmt.Fprintf(&b, "   %s   %s", fmtSignedPct(row.OneMonth, 7), fmtSignedPct(row.OneYear, 8))
			}
			if row.Annotation != "" {
				fmt.Fprintf(&b, "   %s", row.Annotation)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(footer(v.Now))
	return b.String()
}
