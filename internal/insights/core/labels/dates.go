package labels

import (
	"slices"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// dateLayouts are tried after strfmt's date-time formats.
var dateLayouts = []string{
	strfmt.RFC3339FullDate,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01",
}

// ParseDate leniently parses a date or date-time. Nil and unparseable input
// report false.
func ParseDate(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(*s)
	if raw == "" {
		return time.Time{}, false
	}
	if dt, err := strfmt.ParseDateTime(raw); err == nil {
		return time.Time(dt), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortDates orders dates chronologically in place and returns the same
// slice. The sort is stable; nil and unparseable entries come first.
func SortDates(dates []*string) []*string {
	type keyed struct {
		date  *string
		at    time.Time
		valid bool
	}

	keys := make([]keyed, len(dates))
	for i, d := range dates {
		at, ok := ParseDate(d)
		keys[i] = keyed{date: d, at: at, valid: ok}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		switch {
		case !a.valid && !b.valid:
			return 0
		case !a.valid:
			return -1
		case !b.valid:
			return 1
		default:
			return a.at.Compare(b.at)
		}
	})

	for i, k := range keys {
		dates[i] = k.date
	}
	return dates
}

// Retention periods.
const (
	PeriodHour  = "Hour"
	PeriodDay   = "Day"
	PeriodWeek  = "Week"
	PeriodMonth = "Month"
)

// IsLatestPeriod reports whether dateTo falls in the period that contains
// now, i.e. the last retention column is still in progress. Missing input
// counts as latest.
func IsLatestPeriod(dateTo *string, period string, now time.Time) bool {
	if dateTo == nil || *dateTo == "" || period == "" {
		return true
	}
	at, ok := ParseDate(dateTo)
	if !ok {
		return false
	}
	at = at.In(now.Location())

	switch period {
	case PeriodHour:
		return startOfHour(at).Equal(startOfHour(now))
	case PeriodDay:
		return startOfDay(at).Equal(startOfDay(now))
	case PeriodWeek:
		return startOfWeek(at).Equal(startOfWeek(now))
	case PeriodMonth:
		return at.Year() == now.Year() && at.Month() == now.Month()
	default:
		return false
	}
}

func startOfHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Weeks start on Sunday.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}
