package common

import (
	"time"
)

// Exchange session times. Holidays are not tracked; a holiday shows as Open,
// which matches what the quote feed reports anyway (stale prices).
var (
	locNewYork = mustLoadLocation("America/New_York")
	locParis   = mustLoadLocation("Europe/Paris")
	locTokyo   = mustLoadLocation("Asia/Tokyo")
)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsUSMarketOpen reports whether the US equity session is live
// (9:30 AM - 4:00 PM ET, Mon-Fri).
func IsUSMarketOpen(now time.Time) bool {
	return sessionOpen(now.In(locNewYork), 9, 30, 16, 0)
}

// IsEuropeMarketOpen reports whether the core European session is live
// (9:00 AM - 5:30 PM CET, Mon-Fri).
func IsEuropeMarketOpen(now time.Time) bool {
	return sessionOpen(now.In(locParis), 9, 0, 17, 30)
}

// IsAsiaMarketOpen reports whether the Tokyo session is live
// (9:00 AM - 3:00 PM JST, Mon-Fri).
func IsAsiaMarketOpen(now time.Time) bool {
	return sessionOpen(now.In(locTokyo), 9, 0, 15, 0)
}

// IsFuturesOpen reports whether CME equity futures are trading. Futures run
// Sunday 6:00 PM ET through Friday 5:00 PM ET with a daily 5-6 PM ET
// maintenance break.
func IsFuturesOpen(now time.Time) bool {
	et := now.In(locNewYork)

	switch et.Weekday() {
	case time.Saturday:
		return false
	case time.Sunday:
		return minuteOfDay(et) >= 18*60
	case time.Friday:
		if minuteOfDay(et) >= 17*60 {
			return false
		}
	}

	// Daily maintenance window
	m := minuteOfDay(et)
	if m >= 17*60 && m < 18*60 {
		return false
	}
	return true
}

// MarketStatus returns "Open" or "Closed" for a region name from
// SectionRegions. Unknown regions return the empty string.
func MarketStatus(region string, now time.Time) string {
	var open bool
	switch region {
	case "us":
		open = IsUSMarketOpen(now)
	case "europe":
		open = IsEuropeMarketOpen(now)
	case "asia":
		open = IsAsiaMarketOpen(now)
	default:
		return ""
	}
	if open {
		return "Open"
	}
	return "Closed"
}

func sessionOpen(local time.Time, openH, openM, closeH, closeM int) bool {
	if local.Weekday() == time.Saturday || local.Weekday() == time.Sunday {
		return false
	}
	m := minuteOfDay(local)
	return m >= openH*60+openM && m < closeH*60+closeM
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
