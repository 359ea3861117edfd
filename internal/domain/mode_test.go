package domain

import (
	"errors"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry(FixedDurations{})

	for _, m := range AllModes() {
		if _, ok := reg[m]; !ok {
			t.Errorf("registry missing mode %q", m)
		}
	}

	if got := reg[ModeCountdown].FixedSeconds; got != 600 {
		t.Errorf("countdown FixedSeconds = %d, want 600", got)
	}
	if got := reg[ModeMicrobreak].FixedSeconds; got != 20 {
		t.Errorf("microbreak FixedSeconds = %d, want 20", got)
	}

	custom := NewRegistry(FixedDurations{Grill: 300})
	if got := custom[ModeGrill].FixedSeconds; got != 300 {
		t.Errorf("grill FixedSeconds = %d, want 300", got)
	}
}

func TestModeConfig_CountsUp(t *testing.T) {
	reg := NewRegistry(FixedDurations{})
	tests := []struct {
		mode Mode
		want bool
	}{
		{ModeFocus, false},
		{ModeStopwatch, true},
		{ModeFlowtime, true},
		{ModeDeadline, false},
		{ModeBreath, false},
		{ModeInterval, false},
	}
	for _, tt := range tests {
		if got := reg[tt.mode].CountsUp(); got != tt.want {
			t.Errorf("%s CountsUp() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestModeCategories(t *testing.T) {
	reg := NewRegistry(FixedDurations{})
	for _, m := range []Mode{ModeFocus, ModeShort, ModeLong, ModeFlowtime} {
		if reg[m].Category != CategoryFocus {
			t.Errorf("%s category = %v, want focus", m, reg[m].Category)
		}
	}
	if reg[ModeBreath].Category != CategoryWellness {
		t.Errorf("breath category = %v, want wellness", reg[ModeBreath].Category)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Focus ")
	if err != nil || m != ModeFocus {
		t.Errorf("ParseMode() = %v, %v, want focus", m, err)
	}

	_, err = ParseMode("nap")
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(nap) error = %v, want ErrUnknownMode", err)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{25 * 60, "25:00"},
		{3600 + 62, "1:01:02"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSessionState_Progress(t *testing.T) {
	s := SessionState{Mode: ModeFocus, SessionDuration: 100, TimeLeft: 25}
	if got := s.Progress(); got != 0.75 {
		t.Errorf("Progress() = %v, want 0.75", got)
	}
	s = SessionState{Mode: ModeStopwatch, TimeLeft: 30}
	if got := s.Progress(); got != 0 {
		t.Errorf("stopwatch Progress() = %v, want 0", got)
	}
}
