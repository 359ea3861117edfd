package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// ModeDurations are the focus-cycle lengths in minutes.
type ModeDurations struct {
	Focus int `json:"focus" yaml:"focus"`
	Short int `json:"short" yaml:"short"`
	Long  int `json:"long" yaml:"long"`
}

// DefaultModeDurations returns 25/5/15.
func DefaultModeDurations() ModeDurations {
	return ModeDurations{Focus: 25, Short: 5, Long: 15}
}

// UnmarshalJSON falls back to the default for any missing, non-numeric or
// non-positive value.
func (d *ModeDurations) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	*d = DefaultModeDurations()
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}
	if v, ok := looseInt(raw["focus"]); ok && v > 0 {
		d.Focus = int(v)
	}
	if v, ok := looseInt(raw["short"]); ok && v > 0 {
		d.Short = int(v)
	}
	if v, ok := looseInt(raw["long"]); ok && v > 0 {
		d.Long = int(v)
	}
	return nil
}

// Seconds returns the session length of a focus-cycle mode.
func (d ModeDurations) Seconds(m Mode) int {
	switch m {
	case ModeShort:
		return d.Short * 60
	case ModeLong:
		return d.Long * 60
	default:
		return d.Focus * 60
	}
}

// Goals are daily and weekly focus targets in hours.
type Goals struct {
	DailyHours  float64 `json:"daily" yaml:"daily"`
	WeeklyHours float64 `json:"weekly" yaml:"weekly"`
}

// DefaultGoals returns 4 hours a day and 20 a week.
func DefaultGoals() Goals {
	return Goals{DailyHours: 4, WeeklyHours: 20}
}

// UnmarshalJSON keeps defaults for unreadable values. Zero is accepted.
func (g *Goals) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	*g = DefaultGoals()
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}
	if v, ok := looseFloat(raw["daily"]); ok && v >= 0 {
		g.DailyHours = v
	}
	if v, ok := looseFloat(raw["weekly"]); ok && v >= 0 {
		g.WeeklyHours = v
	}
	return nil
}

// FlowSettings control the focus cycle.
type FlowSettings struct {
	AutoStartBreaks   bool    `json:"auto_start_breaks" yaml:"auto_start_breaks"`
	AutoStartWork     bool    `json:"auto_start_work" yaml:"auto_start_work"`
	LongBreakInterval int     `json:"long_break_interval" yaml:"long_break_interval"`
	FocusCount        int     `json:"focus_count" yaml:"focus_count"`
	FlowtimeRatio     float64 `json:"flowtime_ratio" yaml:"flowtime_ratio"`
}

// DefaultFlowSettings returns manual starts, a long break every fourth
// session and a flowtime break of one fifth of the work.
func DefaultFlowSettings() FlowSettings {
	return FlowSettings{LongBreakInterval: DefaultLongBreakInterval, FlowtimeRatio: 5}
}

// UnmarshalJSON keeps defaults for unreadable values.
func (f *FlowSettings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	*f = DefaultFlowSettings()
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}
	f.AutoStartBreaks = looseBool(raw["auto_start_breaks"])
	f.AutoStartWork = looseBool(raw["auto_start_work"])
	if v, ok := looseInt(raw["long_break_interval"]); ok && v > 0 {
		f.LongBreakInterval = int(v)
	}
	if v, ok := looseInt(raw["focus_count"]); ok && v >= 0 {
		f.FocusCount = int(v)
	}
	if v, ok := looseFloat(raw["flowtime_ratio"]); ok && v > 0 {
		f.FlowtimeRatio = v
	}
	return nil
}

// Theme is the persisted appearance preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme returns ThemeSystem for anything unrecognized.
func ParseTheme(s string) Theme {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t
	}
	return ThemeSystem
}

// Bundle is every persisted document in one value.
type Bundle struct {
	Modes    ModeDurations    `json:"modes" yaml:"modes"`
	History  []HistoryEntry   `json:"history" yaml:"history"`
	Goals    Goals            `json:"goals" yaml:"goals"`
	Flow     FlowSettings     `json:"flow" yaml:"flow"`
	Theme    Theme            `json:"theme" yaml:"theme"`
	Sound    bool             `json:"sound" yaml:"sound"`
	Queue    []TaskQueueItem  `json:"queue" yaml:"queue"`
	Timers   []MultiTimer     `json:"timers" yaml:"timers"`
	Deadline *time.Time       `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Breath   BreathPreference `json:"breath" yaml:"breath"`
}

func looseFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

func looseBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	s := strings.ToLower(looseString(raw))
	return s == "true" || s == "1"
}
