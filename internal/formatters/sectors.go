package formatters

import (
	"fmt"
	"strings"
	"time"
)

// HoldingRow is one constituent line of the sector screen.
type HoldingRow struct {
	Symbol    string
	Name      string
	WeightPct float64
	ChangePct *float64
	OneMonth  *float64
	OneYear   *float64
}

// SectorView is everything the sector screen needs.
type SectorView struct {
	Name      string
	Symbol    string
	ChangePct float64
	OneMonth  *float64
	OneYear   *float64
	Holdings  []HoldingRow
	Now       time.Time
}

// RenderSector renders the sector drill-down.
func RenderSector(v SectorView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "SECTOR %s\n\n", strings.ToUpper(v.Name))

	b.WriteString("TICKER    CHANGE       1M         1Y\n")
	fmt.Fprintf(&b, "%-6s  %+6.2f%%   %s   %s\n\n",
		v.Symbol, v.ChangePct, fmtSignedPct(v.OneMonth, 7), fmtSignedPct(v.OneYear, 8))

	if len(v.Holdings) > 0 {
		b.WriteString("TOP HOLDINGS     SYMBOL    WEIGHT   CHANGE       1M         1Y\n")
		for _, h := range v.Holdings {
			name := h.Name
			if len(name) > 16 {
				name = name[:16]
			}
			change := "        "
			if h.ChangePct != nil {
				change = fmt.Sprintf("%+7.2f%%", *h.ChangePct)
			}
			fmt.Fprintf(&b, "%-16s %-8s  %5.1f%%  %s   %s   %s\n",
				name, h.Symbol, h.WeightPct, change,
				fmtSignedPct(h.OneMonth, 7), fmtSignedPct(h.OneYear, 8))
		}
		b.WriteString("\n")
	}

	b.WriteString(footer(v.Now))
	return b.String()
}
