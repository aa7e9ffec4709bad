// Package dates converts the council sites' human-readable collection dates
// into calendar values and provides the small pure date transforms the
// calendar sync needs.
//
// All functions work on civil date components only. No timezone conversion
// takes place: a parsed date is expressed in UTC purely as a carrier for its
// year, month and day.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/custodia-labs/bindays/internal/core/domain"
)

// collectionPattern matches "<Weekday> <day><suffix> <Month> <year>".
var collectionPattern = regexp.MustCompile(`\w+\s+(\d{1,2})(?:st|nd|rd|th)\s+(\w+)\s+(\d{4})`)

var months = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// Parse parses a date such as "Thursday 11th September 2025".
// Unrecognised input yields an error wrapping domain.ErrParse.
func Parse(s string) (time.Time, error) {
	m := collectionPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrParse, s)
	}

	month, ok := months[m[2]]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown month %q", domain.ErrParse, m[2])
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrParse, s)
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrParse, s)
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, fmt.Errorf("%w: no day %d in %s %d", domain.ErrParse, day, month, year)
	}
	return t, nil
}

// Format renders t in the format Parse accepts, e.g. "Thursday 11th September 2025".
func Format(t time.Time) string {
	return fmt.Sprintf("%s %d%s %s %d", t.Weekday(), t.Day(), ordinal(t.Day()), t.Month(), t.Year())
}

func ordinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// SubtractDays returns t moved back n calendar days.
func SubtractDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n)
}

// SetTime returns t at hour:minute, with seconds and nanoseconds reset.
func SetTime(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}

// AddMonths returns t moved forward n months. Like time.AddDate, day
// overflow normalises into the following month.
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}

// ReminderStart returns 20:30 on the day before collection.
func ReminderStart(collection time.Time) time.Time {
	return SetTime(SubtractDays(collection, 1), domain.ReminderHour, domain.ReminderMinute)
}
