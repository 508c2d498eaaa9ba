package ranking

import "time"

// InWindow reports whether dateISO (YYYY-MM-DD, taken as midnight UTC)
// falls inside the trailing window of the given number of days ending at
// now. Absent or unparsable dates are outside every window.
func InWindow(dateISO string, days int, now time.Time) bool {
	if dateISO == "" {
		return false
	}
	date, err := time.ParseInLocation("2006-01-02", dateISO, time.UTC)
	if err != nil {
		return false
	}
	diffDays := now.Sub(date).Hours() / 24
	return diffDays >= 0 && diffDays <= float64(days)
}
