package domain

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultTaskLabel is used when a session is logged without a task.
const DefaultTaskLabel = "Focus session"

// boundaryTolerance absorbs rounding at the day and week boundaries.
const boundaryTolerance = 100 * time.Millisecond

// HistoryEntry is one completed focus session. ID is the completion time
// in Unix milliseconds and doubles as the sort key.
type HistoryEntry struct {
	ID              int64  `json:"id" yaml:"id"`
	Task            string `json:"task" yaml:"task"`
	DurationMinutes int    `json:"duration" yaml:"duration"`
	Interruptions   int    `json:"interruptions" yaml:"interruptions"`
	PausedSeconds   int    `json:"paused_seconds" yaml:"paused_seconds"`
	Mode            Mode   `json:"mode,omitempty" yaml:"mode,omitempty"`
	Branch          string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// HistoryCounters overrides the counters of a manually logged entry.
// Nil fields fall back to the current session.
type HistoryCounters struct {
	Interruptions *int
	PausedSeconds *int
}

// Time returns the completion time of the entry.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.ID)
}

// rawEntry accepts the loose shapes older ledgers were written in.
type rawEntry struct {
	ID            json.RawMessage `json:"id"`
	Date          json.RawMessage `json:"date"`
	Task          json.RawMessage `json:"task"`
	TaskLabel     json.RawMessage `json:"taskLabel"`
	Duration      json.RawMessage `json:"duration"`
	Interruptions json.RawMessage `json:"interruptions"`
	PausedSeconds json.RawMessage `json:"paused_seconds"`
	PausedLegacy  json.RawMessage `json:"pausedSeconds"`
	Mode          string          `json:"mode"`
	Branch        string          `json:"branch"`
}

// DecodeHistory parses a persisted ledger and repairs it. Corrupt input
// yields an empty ledger.
func DecodeHistory(data []byte, now time.Time) []HistoryEntry {
	var raws []rawEntry
	if len(data) == 0 || json.Unmarshal(data, &raws) != nil {
		return []HistoryEntry{}
	}

	entries := make([]HistoryEntry, 0, len(raws))
	fallback := now.UnixMilli()
	for _, r := range raws {
		id, ok := looseInt(r.ID)
		if !ok || id <= 0 {
			id, ok = legacyDate(r.Date)
		}
		if !ok || id <= 0 {
			fallback--
			id = fallback
		}

		duration, ok := looseInt(r.Duration)
		if !ok || duration <= 0 {
			continue
		}

		label := looseString(r.Task)
		if label == "" {
			label = looseString(r.TaskLabel)
		}
		interruptions, _ := looseInt(r.Interruptions)
		paused, ok := looseInt(r.PausedSeconds)
		if !ok {
			paused, _ = looseInt(r.PausedLegacy)
		}

		entries = append(entries, HistoryEntry{
			ID:              id,
			Task:            label,
			DurationMinutes: int(duration),
			Interruptions:   int(max(interruptions, 0)),
			PausedSeconds:   int(max(paused, 0)),
			Mode:            Mode(r.Mode),
			Branch:          r.Branch,
		})
	}
	return SanitizeHistory(entries)
}

// SanitizeHistory defaults empty labels, drops entries with a
// non-positive id or duration, drops duplicate ids and sorts the ledger
// most recent first.
func SanitizeHistory(entries []HistoryEntry) []HistoryEntry {
	seen := make(map[int64]bool, len(entries))
	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID <= 0 || e.DurationMinutes <= 0 || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		if strings.TrimSpace(e.Task) == "" {
			e.Task = DefaultTaskLabel
		}
		out = append(out, e)
	}
	SortHistory(out)
	return out
}

// SortHistory orders entries by descending ID.
func SortHistory(entries []HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
}

func looseInt(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func looseString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return ""
}

// legacyDate reads the date field of old ledgers: a millisecond value or
// an RFC 3339 string.
func legacyDate(raw json.RawMessage) (int64, bool) {
	if ms, ok := looseInt(raw); ok {
		return ms, true
	}
	s := looseString(raw)
	if s == "" {
		return 0, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// Stats aggregates the ledger for the current day and week.
type Stats struct {
	TodayMinutes int `json:"today_minutes"`
	TodayCount   int `json:"today_count"`
	WeekMinutes  int `json:"week_minutes"`
	WeekCount    int `json:"week_count"`
	TotalMinutes int `json:"total_minutes"`
	TotalCount   int `json:"total_count"`
}

// StartOfDay returns local midnight of t's day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of t's week. Sunday counts as day 7.
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return StartOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// Aggregate sums the ledger into today and this-week buckets. An entry
// belongs to a bucket when its id is within 100ms of the boundary or later.
func Aggregate(entries []HistoryEntry, now time.Time) Stats {
	day := StartOfDay(now).Add(-boundaryTolerance).UnixMilli()
	week := StartOfWeek(now).Add(-boundaryTolerance).UnixMilli()

	var s Stats
	for _, e := range entries {
		s.TotalMinutes += e.DurationMinutes
		s.TotalCount++
		if e.ID > week {
			s.WeekMinutes += e.DurationMinutes
			s.WeekCount++
		}
		if e.ID > day {
			s.TodayMinutes += e.DurationMinutes
			s.TodayCount++
		}
	}
	return s
}

// GoalProgress returns the percentage of goalHours covered by minutes,
// capped at 100. Non-finite or negative results are reported as 0.
func GoalProgress(minutes int, goalHours float64) int {
	p := math.Round(float64(minutes) / (goalHours * 60) * 100)
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return int(math.Min(100, p))
}
