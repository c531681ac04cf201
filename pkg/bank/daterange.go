package bank

import "time"

// DateRange is a named date window token. Unknown tokens behave like
// RangeAll, keeping every filter operation total.
type DateRange string

const (
	RangeAll    DateRange = "all"
	RangeToday  DateRange = "today"
	RangeWeek   DateRange = "week"
	RangeMonth  DateRange = "month"
	RangeYear   DateRange = "year"
	RangeCustom DateRange = "custom"
)

// Bounds computes the [start, end] window for a range token anchored at
// now. Both bounds are inclusive. A custom range without both endpoints
// degrades to the all-time window, as does an unrecognized token.
func (r DateRange) Bounds(now, customStart, customEnd time.Time) (start, end time.Time) {
	switch r {
	case RangeToday:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case RangeWeek:
		start = now.AddDate(0, 0, -7)
	case RangeMonth:
		start = now.AddDate(0, -1, 0)
	case RangeYear:
		start = now.AddDate(-1, 0, 0)
	case RangeCustom:
		if !customStart.IsZero() && !customEnd.IsZero() {
			return customStart, customEnd
		}
		return time.Unix(0, 0), now
	default:
		return time.Unix(0, 0), now
	}
	return start, now
}
