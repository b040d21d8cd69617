// Package dates parses free-form date text found in document tables.
// Values that fail every known layout are reported as unknown rather than
// raising an error; callers decide how unknown dates affect a row.
package dates

import (
	"math"
	"strings"
	"time"
)

// layouts are tried in order. The non-padded forms also accept
// zero-padded values, so "2006-1-2" covers "2009-01-02".
var layouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"20060102",
	"2006年1月2日",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-01-02T15:04:05",
}

// Parse attempts to parse s as a date, trying extra layouts before the
// built-in ones. The second return is false when no layout matches.
func Parse(s string, extra ...string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range extra {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysBetween returns the calendar-day difference end minus start. Each
// time is reduced to its own calendar date before differencing, so a
// zoned wall-clock end against a parsed (UTC) start never shifts the
// count by the zone offset. The result is negative when end precedes
// start; values are not clamped.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(e.Sub(s).Hours() / 24))
}
