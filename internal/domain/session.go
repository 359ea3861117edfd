package domain

import (
	"fmt"
	"time"
)

// BreathState tracks progress through the active breathing session.
type BreathState struct {
	Pattern    string `json:"pattern"`
	PhaseIndex int    `json:"phase_index"`
	PhaseTick  int    `json:"phase_tick"`
}

// SessionState is the single mutable state of the timer engine.
// TimeLeft and SessionDuration are whole seconds.
type SessionState struct {
	Mode            Mode            `json:"mode"`
	Category        Category        `json:"category"`
	TimeLeft        int             `json:"time_left"`
	SessionDuration int             `json:"session_duration"`
	Running         bool            `json:"running"`
	ElapsedFlowtime int             `json:"elapsed_flowtime"`
	Interruptions   int             `json:"interruptions"`
	PausedSeconds   int             `json:"paused_seconds"`
	PauseStartedAt  *time.Time      `json:"pause_started_at,omitempty"`
	Message         string          `json:"message,omitempty"`
	Breath          BreathState     `json:"breath"`
	Interval        IntervalSession `json:"interval"`
}

// ElapsedWork returns the seconds of focus work done in the current session.
func (s SessionState) ElapsedWork() int {
	switch s.Mode {
	case ModeFocus:
		elapsed := s.SessionDuration - s.TimeLeft
		if elapsed < 0 {
			return 0
		}
		return elapsed
	case ModeFlowtime:
		return s.ElapsedFlowtime
	}
	return 0
}

// OpenPauseSeconds returns the seconds elapsed in a pause that has not been
// folded into PausedSeconds yet.
func (s SessionState) OpenPauseSeconds(now time.Time) int {
	if s.PauseStartedAt == nil {
		return 0
	}
	d := now.Sub(*s.PauseStartedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

// DisplayValue returns the seconds shown on the clock face.
func (s SessionState) DisplayValue() int {
	if s.Mode == ModeFlowtime {
		return s.ElapsedFlowtime
	}
	return s.TimeLeft
}

// Progress returns the completed fraction of a countdown in [0, 1].
// Count-up modes report 0.
func (s SessionState) Progress() float64 {
	if s.Mode == ModeStopwatch || s.Mode == ModeFlowtime || s.SessionDuration <= 0 {
		return 0
	}
	p := float64(s.SessionDuration-s.TimeLeft) / float64(s.SessionDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// View is what the engine pushes to the display sink.
type View struct {
	Mode        Mode    `json:"mode"`
	Label       string  `json:"label"`
	Remaining   string  `json:"remaining"`
	Percent     float64 `json:"percent"`
	Running     bool    `json:"running"`
	Message     string  `json:"message,omitempty"`
	Phase       string  `json:"phase,omitempty"`
	BreathLevel float64 `json:"breath_level,omitempty"`
	Cycle       string  `json:"cycle,omitempty"`
}

// FormatClock renders seconds as MM:SS, or H:MM:SS past an hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
