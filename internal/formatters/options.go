package formatters

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/specula/internal/analytics"
	"github.com/ternarybob/specula/internal/models"
)

// ExpirationSummary is one line of the all-expirations table.
type ExpirationSummary struct {
	Expiration  time.Time
	DTE         int
	ATMIV       *float64
	CallOI      int64
	PutOI       int64
	TotalVolume int64
}

// OptionsView is everything the options screen needs.
type OptionsView struct {
	Analytics       *analytics.ChainAnalytics
	DTE             int
	Term            *analytics.TermStructure
	AllExpirations  []ExpirationSummary
	VolContext      *analytics.RealizedVolContext
	UnusualMultiple float64
	Now             time.Time
}

// RenderOptions renders the full options analysis screen.
func RenderOptions(v OptionsView) string {
	a := v.Analytics

	var b strings.Builder
	fmt.Fprintf(&b, "OPTIONS %s | EXP %s (%dd) | SPOT %.2f\n\n",
		a.Symbol, a.Expiration.Format("2006-01-02"), v.DTE, a.Spot)

	b.WriteString("POSITIONING\n")
	fmt.Fprintf(&b, "P/C Ratio (Vol)   %s\n", fmtRatio(a.PCVolume))
	fmt.Fprintf(&b, "P/C Ratio (OI)    %s\n", fmtRatio(a.PCOpenInterest))
	fmt.Fprintf(&b, "Call Vol/OI       %s / %s\n", fmtCount(a.TotalCallVolume), fmtCount(a.TotalCallOI))
	fmt.Fprintf(&b, "Put Vol/OI        %s / %s\n", fmtCount(a.TotalPutVolume), fmtCount(a.TotalPutOI))
	fmt.Fprintf(&b, "Call OI ITM/OTM   %s / %s\n", fmtCount(a.CallOIITM), fmtCount(a.CallOIOTM))
	fmt.Fprintf(&b, "Put OI ITM/OTM    %s / %s\n\n", fmtCount(a.PutOIITM), fmtCount(a.PutOIOTM))

	b.WriteString("IV STRUCTURE\n")
	fmt.Fprintf(&b, "ATM Strike        %.2f\n", a.ATMStrike)
	if a.ATMCallIV != nil {
		fmt.Fprintf(&b, "ATM Call IV       %.1f%%\n", *a.ATMCallIV)
	}
	if a.ATMPutIV != nil {
		fmt.Fprintf(&b, "ATM Put IV        %.1f%%\n", *a.ATMPutIV)
	}
	if a.IVSpread != nil {
		fmt.Fprintf(&b, "IV Spread (C-P)   %+.1f%%\n", *a.IVSpread)
	}
	if a.PutSkew != nil {
		fmt.Fprintf(&b, "Put Skew          %+.1f%%\n", *a.PutSkew)
	}
	if a.CallSkew != nil {
		fmt.Fprintf(&b, "Call Skew         %+.1f%%\n", *a.CallSkew)
	}
	b.WriteString("\n")

	if len(a.TopCallsByOI) > 0 || len(a.TopPutsByOI) > 0 {
		b.WriteString("TOP STRIKES BY OPEN INTEREST\n")
		writeStrikeTable(&b, "CALLS", a.TopCallsByOI)
		writeStrikeTable(&b, "PUTS", a.TopPutsByOI)
		b.WriteString("\n")
	}

	if v.Term != nil {
		b.WriteString("TERM STRUCTURE\n")
		for _, p := range v.Term.Points {
			fmt.Fprintf(&b, "%s  (%3dd)   ATM IV %5.1f%%\n", p.Expiration.Format("2006-01-02"), p.DTE, p.ATMCallIV)
		}
		shape := "FLAT"
		if v.Term.Contango > 0.5 {
			shape = "CONTANGO (market expects compression)"
		} else if v.Term.Contango < -0.5 {
			shape = "BACKWARDATION (vol expected to rise)"
		}
		fmt.Fprintf(&b, "Near-Far Spread   %+.1f%%  %s\n\n", v.Term.Contango, shape)
	}

	if len(v.AllExpirations) > 0 {
		b.WriteString("ALL EXPIRATIONS   DTE    ATM IV     CALL OI      PUT OI      VOLUME\n")
		for _, e := range v.AllExpirations {
			iv := "   n/a"
			if e.ATMIV != nil {
				iv = fmt.Sprintf("%5.1f%%", *e.ATMIV)
			}
			fmt.Fprintf(&b, "%s        %4d    %s  %10s  %10s  %10s\n",
				e.Expiration.Format("2006-01-02"), e.DTE, iv,
				fmtCount(e.CallOI), fmtCount(e.PutOI), fmtCount(e.TotalVolume))
		}
		b.WriteString("\n")
	}

	if a.MaxPain != nil {
		fmt.Fprintf(&b, "MAX PAIN          %.2f  (spot %+.1f%% away)\n\n",
			*a.MaxPain, (a.Spot-*a.MaxPain)/(*a.MaxPain)*100)
	}

	if len(a.Unusual) > 0 {
		fmt.Fprintf(&b, "UNUSUAL ACTIVITY (volume >= %gx open interest)\n", v.UnusualMultiple)
		for _, u := range a.Unusual {
			fmt.Fprintf(&b, "%-4s %8.2f   vol %s / oi %s   (%.1fx)\n",
				u.Side, u.Contract.Strike, fmtCount(u.Contract.Volume), fmtCount(u.Contract.OpenInterest), u.Ratio)
		}
		b.WriteString("\n")
	}

	if v.VolContext != nil {
		b.WriteString("IV CONTEXT\n")
		fmt.Fprintf(&b, "Realized Vol 7D   %5.1f%%\n", v.VolContext.RealizedVol7D)
		fmt.Fprintf(&b, "Realized Vol 30D  %5.1f%%\n", v.VolContext.RealizedVol30D)
		fmt.Fprintf(&b, "52W Vol Range     %.1f%% - %.1f%%\n", v.VolContext.VolLow52W, v.VolContext.VolHigh52W)
		fmt.Fprintf(&b, "IV Rank           %.0f%%\n", v.VolContext.IVRank)
		fmt.Fprintf(&b, "IV - RV Spread    %+.1f%%\n\n", v.VolContext.IVRVSpread)
	}

	b.WriteString(footer(v.Now))
	return b.String()
}

func writeStrikeTable(b *strings.Builder, side string, contracts []models.OptionContract) {
	if len(contracts) == 0 {
		return
	}
	fmt.Fprintf(b, "%-5s  STRIKE        OI      VOLUME    LAST      IV\n", side)
	for _, c := range contracts {
		fmt.Fprintf(b, "     %8.2f  %8s  %8s  %6.2f  %5.1f%%\n",
			c.Strike, fmtCount(c.OpenInterest), fmtCount(c.Volume), c.LastPrice, c.ImpliedVolatility*100)
	}
}
