// Package period computes the four rolling calendar windows every dashboard
// figure is bucketed into. The windows are cumulative: a record created an
// hour ago belongs to today, this week, this month, and this year at once.
package period

import "time"

// Period labels one of the four rolling windows.
type Period string

const (
	Today Period = "today"
	Week  Period = "week"
	Month Period = "month"
	Year  Period = "year"
)

// Order is the fixed iteration order for period tables.
var Order = []Period{Today, Week, Month, Year}

// Windows holds the lower bounds of the four windows relative to a reference
// instant. All bounds are in the reference instant's location.
type Windows struct {
	Now        time.Time
	DayStart   time.Time
	WeekStart  time.Time
	MonthStart time.Time
	YearStart  time.Time
}

// At computes the windows for the given reference instant: local midnight,
// the most recent Sunday at midnight (day-of-week arithmetic, not ISO week),
// the first of the month, and January 1.
func At(now time.Time) Windows {
	loc := now.Location()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	return Windows{
		Now:        now,
		DayStart:   dayStart,
		WeekStart:  dayStart.AddDate(0, 0, -int(now.Weekday())),
		MonthStart: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc),
		YearStart:  time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc),
	}
}

func (w Windows) start(p Period) time.Time {
	switch p {
	case Today:
		return w.DayStart
	case Week:
		return w.WeekStart
	case Month:
		return w.MonthStart
	default:
		return w.YearStart
	}
}

// Contains reports whether ts falls inside the window: start <= ts <= now.
func (w Windows) Contains(p Period, ts time.Time) bool {
	return !ts.Before(w.start(p)) && !ts.After(w.Now)
}

// Classify returns every period whose window contains ts, in Order.
// Future timestamps and timestamps before January 1 return an empty set.
func (w Windows) Classify(ts time.Time) []Period {
	periods := make([]Period, 0, len(Order))
	for _, p := range Order {
		if w.Contains(p, ts) {
			periods = append(periods, p)
		}
	}
	return periods
}
