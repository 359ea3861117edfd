package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// minPlausibleYear guards against parsers that fill in a default year for
// inputs like "Mar 5". Earlier years are replaced with the current one.
const minPlausibleYear = 2010

var (
	monthDayPattern = regexp.MustCompile(`^([A-Za-z]{3,})\.?\s+(\d{1,2})$`)
	dayMonthPattern = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})(?:[/.-](\d{2}|\d{4}))?$`)
)

type dateLayout struct {
	layout  string
	hasTime bool
}

var nativeLayouts = []dateLayout{
	{time.RFC3339, true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
	{"January 2, 2006", false},
	{"Jan 2, 2006", false},
	{"Jan 2 2006", false},
	{"2 Jan 2006", false},
	{"2 January 2006", false},
}

// ParseHistoryDate interprets free-form date input for a history edit.
// It tries full layouts first, then "Mon D", then "D/M[/Y]" where a
// two-digit year means 20YY. Inputs without a time of day keep the time
// of orig. The result is in now's location.
func ParseHistoryDate(input string, orig, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, ErrUnparseableDate
	}
	loc := now.Location()
	orig = orig.In(loc)

	for _, l := range nativeLayouts {
		t, err := time.ParseInLocation(l.layout, s, loc)
		if err != nil {
			continue
		}
		if !l.hasTime {
			t = withClock(t, orig)
		}
		return guardYear(t, now), nil
	}

	if m := monthDayPattern.FindStringSubmatch(s); m != nil {
		month, ok := parseMonth(m[1])
		day, _ := strconv.Atoi(m[2])
		if ok {
			if t, ok := buildDate(now.Year(), month, day, orig, loc); ok {
				return t, nil
			}
		}
		return time.Time{}, ErrUnparseableDate
	}

	if m := dayMonthPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				year += 2000
			}
		}
		if month < 1 || month > 12 {
			return time.Time{}, ErrUnparseableDate
		}
		if t, ok := buildDate(year, time.Month(month), day, orig, loc); ok {
			return guardYear(t, now), nil
		}
	}

	return time.Time{}, ErrUnparseableDate
}

func parseMonth(s string) (time.Month, bool) {
	prefix := strings.ToLower(s)
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), prefix) {
			return m, true
		}
	}
	return 0, false
}

// buildDate rejects day/month combinations that time.Date would normalize.
func buildDate(year int, month time.Month, day int, clock time.Time, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), loc)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func withClock(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), day.Location())
}

func guardYear(t, now time.Time) time.Time {
	if t.Year() >= minPlausibleYear {
		return t
	}
	fixed := time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if fixed.Day() != t.Day() {
		// Feb 29 of a leap year moved into a non-leap year.
		return time.Date(now.Year(), t.Month(), 28, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	}
	return fixed
}
