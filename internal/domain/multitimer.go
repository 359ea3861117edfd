package domain

import (
	"fmt"
	"strings"
)

// MultiTimer is one kitchen-style countdown. ID is the creation time in
// Unix milliseconds.
type MultiTimer struct {
	ID           int64  `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	TotalSeconds int    `json:"total_seconds" yaml:"total_seconds"`
	TimeLeft     int    `json:"time_left" yaml:"time_left"`
	Running      bool   `json:"running" yaml:"running"`
}

// Finished reports whether the timer has run down to zero.
func (t *MultiTimer) Finished() bool {
	return t.TimeLeft <= 0
}

// Tick advances a running timer by one second and reports whether this
// tick finished it.
func (t *MultiTimer) Tick() bool {
	if !t.Running {
		return false
	}
	t.TimeLeft--
	if t.TimeLeft <= 0 {
		t.TimeLeft = 0
		t.Running = false
		return true
	}
	return false
}

// Reload restores the full duration.
func (t *MultiTimer) Reload() {
	t.TimeLeft = t.TotalSeconds
}

// Rename changes the display name.
func (t *MultiTimer) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidLabel
	}
	t.Name = name
	return nil
}

// TimerPreset is a named kitchen timer length.
type TimerPreset struct {
	Key     string
	Name    string
	Seconds int
}

// TimerPresets returns the built-in kitchen presets.
func TimerPresets() []TimerPreset {
	return []TimerPreset{
		{Key: "egg", Name: "Boiled egg", Seconds: 7 * 60},
		{Key: "tea", Name: "Tea", Seconds: 3 * 60},
		{Key: "pasta", Name: "Pasta", Seconds: 10 * 60},
		{Key: "rice", Name: "Rice", Seconds: 18 * 60},
	}
}

// DefaultTimerName numbers timers in creation order.
func DefaultTimerName(n int) string {
	return fmt.Sprintf("Timer %d", n)
}
