package domain

import "time"

// TickerStatus is the point-in-time answer to "is this ticker safe to buy".
// Computed on demand, never stored.
type TickerStatus struct {
	Ticker        string
	CheckDate     time.Time
	IsSafe        bool
	ActiveWindows []LossSale
}

// SafeToBuyDate returns the latest safe date among the active windows, or
// the zero time when the ticker is already safe.
func (s TickerStatus) SafeToBuyDate() time.Time {
	var latest time.Time
	for _, ls := range s.ActiveWindows {
		if safe := ls.SafeToBuyDate(); safe.After(latest) {
			latest = safe
		}
	}
	return latest
}

// DaysUntilSafe counts calendar days from the check date until the ticker is
// safe again, floored at zero.
func (s TickerStatus) DaysUntilSafe() int {
	if s.IsSafe {
		return 0
	}
	safe := s.SafeToBuyDate()
	if !s.CheckDate.Before(safe) {
		return 0
	}
	return daysBetween(s.CheckDate, safe)
}
