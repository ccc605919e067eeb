package main

import (
	"fmt"
	"time"
)

// humanizeAtime buckets how long ago t was, relative to now: the largest
// nonzero unit wins. Months are 30 days, years 365. The clock is passed in
// so the labels are deterministic under test.
func humanizeAtime(t time.Time, now time.Time) string {
	delta := int64(now.Sub(t) / time.Second)

	minutes := delta / 60
	hours := minutes / 60
	days := hours / 24
	months := days / 30
	years := days / 365

	switch {
	case years > 0:
		return fmt.Sprintf("%d years ago", years)
	case months > 0:
		return fmt.Sprintf("%d months ago", months)
	case days > 0:
		return fmt.Sprintf("%d days ago", days)
	case hours > 0:
		return fmt.Sprintf("%d hours ago", hours)
	default:
		return fmt.Sprintf("%d minutes ago", minutes)
	}
}
