package domain

import (
	"strconv"
	"strings"
)

// ParseTimeEdit parses "MM" or "MM:SS" into seconds. Minutes are bounded
// to 0-99 and seconds to 0-59. Malformed or all-zero input returns
// ErrInvalidDuration.
func ParseTimeEdit(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, ErrInvalidDuration
	}

	minPart, secPart, hasSec := strings.Cut(s, ":")
	minutes, err := parseBounded(minPart, 99)
	if err != nil {
		return 0, err
	}
	seconds := 0
	if hasSec {
		seconds, err = parseBounded(secPart, 59)
		if err != nil {
			return 0, err
		}
	}

	total := minutes*60 + seconds
	if total == 0 {
		return 0, ErrInvalidDuration
	}
	return total, nil
}

func parseBounded(s string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 2 {
		return 0, ErrInvalidDuration
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidDuration
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > max {
		return 0, ErrInvalidDuration
	}
	return n, nil
}
