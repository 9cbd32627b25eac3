package formatters

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/specula/internal/analytics"
	"github.com/ternarybob/specula/internal/models"
)

// Screen annotation thresholds, as shown beside factor and RSI readings.
const (
	betaHighThreshold    = 1.2
	betaLowThreshold     = 0.8
	idioVolHighThreshold = 30.0
	idioVolLowThreshold  = 15.0
	rsiOverbought        = 70.0
	rsiOversold          = 30.0
)

// OptionsSummary is the brief positioning block on the ticker screen.
type OptionsSummary struct {
	PCRatioOI  analytics.Ratio
	ATMCallIV  *float64
	ATMPutIV   *float64
	Expiration time.Time
	DTE        int
}

// TickerView is everything the single-ticker screen needs.
type TickerView struct {
	Symbol    string
	Quote     models.Quote
	Benchmark string
	Model     *analytics.FactorModel
	Regime    *analytics.RegimeComparison
	Momentum  map[string]float64
	RSI       *float64
	SMA50     *float64
	SMA200    *float64
	Range     *analytics.RangeContext
	Options   *OptionsSummary
	Now       time.Time
}

// RenderTicker renders the deep-dive ticker screen.
func RenderTicker(v TickerView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TICKER %s\n\n", v.Symbol)

	fmt.Fprintf(&b, "LAST PRICE  %.2f %+.2f  %+.2f%%\n\n", v.Quote.Price, v.Quote.Change, v.Quote.ChangePercent)

	name := v.Quote.ShortName
	if name == "" {
		name = v.Symbol
	}
	if len(name) > 40 {
		name = name[:40]
	}
	fmt.Fprintf(&b, "%-40s MKT CAP  %8s    VOLUME %s\n\n", name, fmtMarketCap(v.Quote.MarketCap), fmtCount(v.Quote.Volume))

	if v.Model != nil {
		b.WriteString("FACTOR EXPOSURES\n")
		beta := v.Model.Loadings[v.Benchmark]
		sensitivity := ""
		if beta > betaHighThreshold {
			sensitivity = "(High sensitivity)"
		} else if beta < betaLowThreshold {
			sensitivity = "(Low sensitivity)"
		}
		fmt.Fprintf(&b, "Beta (%s)      %5.2f    %s\n", strings.TrimPrefix(v.Benchmark, "^"), beta, sensitivity)

		risk := ""
		if v.Model.IdioVol > idioVolHighThreshold {
			risk = "(High stock-specific risk)"
		} else if v.Model.IdioVol < idioVolLowThreshold {
			risk = "(Low stock-specific risk)"
		}
		fmt.Fprintf(&b, "Idio Vol         %4.1f%%   %s\n", v.Model.IdioVol, risk)
		fmt.Fprintf(&b, "Total Vol        %4.1f%%\n", v.Model.TotalVol)
		if v.Model.RSquared != nil {
			fmt.Fprintf(&b, "R-Squared        %4.2f\n", *v.Model.RSquared)
		} else {
			b.WriteString("R-Squared         n/a\n")
		}

		if v.Regime != nil && v.Regime.Shifted && v.Regime.Ratio != nil {
			fmt.Fprintf(&b, "REGIME SHIFT: 1M beta %.2f vs 12M beta %.2f (%.1fx)\n",
				v.Regime.ShortBeta, v.Regime.LongBeta, *v.Regime.Ratio)
		}
		b.WriteString("\n")
	}

	if v.Quote.TrailingPE != nil || v.Quote.ForwardPE != nil {
		b.WriteString("VALUATION\n")
		if v.Quote.TrailingPE != nil {
			fmt.Fprintf(&b, "P/E Ratio        %6.2f\n", *v.Quote.TrailingPE)
		}
		if v.Quote.ForwardPE != nil {
			fmt.Fprintf(&b, "Forward P/E      %6.2f\n", *v.Quote.ForwardPE)
		}
		b.WriteString("\n")
	}

	b.WriteString("MOMENTUM & TECHNICALS\n")
	for _, h := range []struct{ label, display string }{
		{"1W", "1-Week"}, {"1M", "1-Month"}, {"1Y", "1-Year"},
	} {
		if pct, ok := v.Momentum[h.label]; ok {
			fmt.Fprintf(&b, "%-16s %+6.1f%%\n", h.display, pct)
		}
	}
	if v.SMA50 != nil {
		fmt.Fprintf(&b, "50-Day MA        %7.2f\n", *v.SMA50)
	}
	if v.SMA200 != nil {
		fmt.Fprintf(&b, "200-Day MA       %7.2f\n", *v.SMA200)
	}
	if v.RSI != nil {
		signal := ""
		if *v.RSI > rsiOverbought {
			signal = "(Overbought)"
		} else if *v.RSI < rsiOversold {
			signal = "(Oversold)"
		}
		fmt.Fprintf(&b, "RSI (14D)        %5.1f    %s\n", *v.RSI, signal)
	}
	b.WriteString("\n")

	if v.Range != nil {
		b.WriteString("52-WEEK RANGE\n")
		fmt.Fprintf(&b, "High             %7.2f\n", v.Range.High)
		fmt.Fprintf(&b, "Low              %7.2f\n", v.Range.Low)
		fmt.Fprintf(&b, "Current          %7.2f  [%s]  %.0f%% of range\n\n",
			v.Quote.Price, rangeBar(v.Range.Position, 20), v.Range.Position)
	}

	if v.Options != nil {
		b.WriteString("OPTIONS POSITIONING\n")
		sentiment := "NEUTRAL"
		if v.Options.PCRatioOI.Defined {
			if v.Options.PCRatioOI.Value < 0.8 {
				sentiment = "BULLISH"
			} else if v.Options.PCRatioOI.Value > 1.2 {
				sentiment = "BEARISH"
			}
		}
		fmt.Fprintf(&b, "P/C Ratio (OI):  %s    <- %s\n", fmtRatio(v.Options.PCRatioOI), sentiment)
		if v.Options.ATMCallIV != nil && v.Options.ATMPutIV != nil {
			fmt.Fprintf(&b, "ATM IV:  %.1f%% (calls)  %.1f%% (puts)\n", *v.Options.ATMCallIV, *v.Options.ATMPutIV)
		}
		fmt.Fprintf(&b, "Nearest Exp:  %s (%dd)\n\n", v.Options.Expiration.Format("2006-01-02"), v.Options.DTE)
	}

	b.WriteString(footer(v.Now))
	return b.String()
}

// CompareRow is one line of the batch comparison table. Pointer fields
// render blank when absent; Err replaces the whole row.
type CompareRow struct {
	Symbol    string
	Name      string
	Err       string
	Price     *float64
	ChangePct *float64
	Beta      *float64
	IdioVol   *float64
	Momentum  map[string]float64
	PE        *float64
	RSI       *float64
}

// RenderCompare renders the side-by-side batch table.
func RenderCompare(rows []CompareRow, now time.Time) string {
	if len(rows) == 0 {
		return "ERROR: no tickers provided"
	}

	symbols := make([]string, len(rows))
	for i, r := range rows {
		symbols[i] = r.Symbol
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TICKERS %s\n\n", strings.Join(symbols, ", "))

	header := fmt.Sprintf("%-8s %-30s %10s %8s %6s %6s %8s %8s %8s %8s %6s",
		"SYMBOL", "NAME", "PRICE", "CHG%", "BETA", "IDIO", "MOM1W", "MOM1M", "MOM1Y", "P/E", "RSI")
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("-", len(header)) + "\n")

	for _, r := range rows {
		if r.Err != "" {
			fmt.Fprintf(&b, "%-8s ERROR: %s\n", r.Symbol, r.Err)
			continue
		}
		name := r.Name
		if len(name) > 30 {
			name = name[:30]
		}
		fmt.Fprintf(&b, "%-8s %-30s %s %s %s %s %s %s %s %s %s\n",
			r.Symbol, name,
			blankFloat(r.Price, "%10.2f", 10),
			blankFloat(r.ChangePct, "%+7.2f%%", 8),
			blankFloat(r.Beta, "%6.2f", 6),
			blankFloat(r.IdioVol, "%5.1f%%", 6),
			momCell(r.Momentum, "1W"),
			momCell(r.Momentum, "1M"),
			momCell(r.Momentum, "1Y"),
			blankFloat(r.PE, "%8.2f", 8),
			blankFloat(r.RSI, "%6.1f", 6))
	}
	b.WriteString("\n")
	b.WriteString(footer(now))
	return b.String()
}

func blankFloat(v *float64, format string, width int) string {
	if v == nil {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf(format, *v)
}

func momCell(momentum map[string]float64, label string) string {
	if pct, ok := momentum[label]; ok {
		return fmt.Sprintf("%+7.1f%%", pct)
	}
	return strings.Repeat(" ", 8)
}

func rangeBar(positionPct float64, width int) string {
	if positionPct < 0 {
		positionPct = 0
	}
	if positionPct > 100 {
		positionPct = 100
	}
	filled := int(positionPct / 100 * float64(width))
	return strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
}
