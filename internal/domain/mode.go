package domain

import (
	"fmt"
	"strings"
)

// Mode identifies a session type.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShort      Mode = "short"
	ModeLong       Mode = "long"
	ModeFlowtime   Mode = "flowtime"
	ModeBreath     Mode = "breath"
	ModeGrounding  Mode = "grounding"
	ModeMicrobreak Mode = "microbreak"
	ModeInterval   Mode = "interval"
	ModeStopwatch  Mode = "stopwatch"
	ModeCountdown  Mode = "countdown"
	ModeDeadline   Mode = "deadline"
	ModeGrill      Mode = "grill"
)

// Category groups modes. Only CategoryFocus modes auto-transition.
type Category string

const (
	CategoryFocus    Category = "focus"
	CategoryWellness Category = "wellness"
	CategoryFitness  Category = "fitness"
	CategoryTools    Category = "tools"
)

// Handler selects the tick behavior of a mode.
type Handler int

const (
	HandlerCountdown Handler = iota
	HandlerCountUp
	HandlerFlowtime
	HandlerDeadline
	HandlerBreathing
	HandlerInterval
)

// DurationSource tells the engine where a mode's session length comes from.
type DurationSource int

const (
	SourceModeTable DurationSource = iota
	SourceBreathing
	SourceInterval
	SourceFixed
	SourceDeadline
	SourceNone
)

// ModeConfig is the immutable registry entry for a mode.
type ModeConfig struct {
	Key          Mode
	Category     Category
	Source       DurationSource
	Handler      Handler
	FixedSeconds int
	// Editable modes accept a manual "MM:SS" duration while paused.
	Editable bool
}

// CountsUp reports whether the mode's display value grows while running.
func (c ModeConfig) CountsUp() bool {
	return c.Handler == HandlerCountUp || c.Handler == HandlerFlowtime
}

// CountdownType reports whether reaching zero completes the session.
func (c ModeConfig) CountdownType() bool {
	return !c.CountsUp()
}

// Registry maps every mode to its configuration.
type Registry map[Mode]ModeConfig

// FixedDurations holds the configurable lengths of the utility modes.
type FixedDurations struct {
	Countdown  int
	Grill      int
	Grounding  int
	Microbreak int
}

// DefaultFixedDurations returns the stock utility mode lengths in seconds.
func DefaultFixedDurations() FixedDurations {
	return FixedDurations{
		Countdown:  10 * 60,
		Grill:      8 * 60,
		Grounding:  5 * 60,
		Microbreak: 20,
	}
}

// NewRegistry builds the mode table using the given utility durations.
func NewRegistry(fixed FixedDurations) Registry {
	d := DefaultFixedDurations()
	if fixed.Countdown > 0 {
		d.Countdown = fixed.Countdown
	}
	if fixed.Grill > 0 {
		d.Grill = fixed.Grill
	}
	if fixed.Grounding > 0 {
		d.Grounding = fixed.Grounding
	}
	if fixed.Microbreak > 0 {
		d.Microbreak = fixed.Microbreak
	}

	return Registry{
		ModeFocus:      {Key: ModeFocus, Category: CategoryFocus, Source: SourceModeTable, Handler: HandlerCountdown, Editable: true},
		ModeShort:      {Key: ModeShort, Category: CategoryFocus, Source: SourceModeTable, Handler: HandlerCountdown, Editable: true},
		ModeLong:       {Key: ModeLong, Category: CategoryFocus, Source: SourceModeTable, Handler: HandlerCountdown, Editable: true},
		ModeFlowtime:   {Key: ModeFlowtime, Category: CategoryFocus, Source: SourceNone, Handler: HandlerFlowtime},
		ModeBreath:     {Key: ModeBreath, Category: CategoryWellness, Source: SourceBreathing, Handler: HandlerBreathing},
		ModeGrounding:  {Key: ModeGrounding, Category: CategoryWellness, Source: SourceFixed, Handler: HandlerCountdown, FixedSeconds: d.Grounding, Editable: true},
		ModeMicrobreak: {Key: ModeMicrobreak, Category: CategoryWellness, Source: SourceFixed, Handler: HandlerCountdown, FixedSeconds: d.Microbreak, Editable: true},
		ModeInterval:   {Key: ModeInterval, Category: CategoryFitness, Source: SourceInterval, Handler: HandlerInterval},
		ModeStopwatch:  {Key: ModeStopwatch, Category: CategoryTools, Source: SourceNone, Handler: HandlerCountUp},
		ModeCountdown:  {Key: ModeCountdown, Category: CategoryTools, Source: SourceFixed, Handler: HandlerCountdown, FixedSeconds: d.Countdown, Editable: true},
		ModeDeadline:   {Key: ModeDeadline, Category: CategoryTools, Source: SourceDeadline, Handler: HandlerDeadline},
		ModeGrill:      {Key: ModeGrill, Category: CategoryTools, Source: SourceFixed, Handler: HandlerCountdown, FixedSeconds: d.Grill, Editable: true},
	}
}

// AllModes lists the modes in display order.
func AllModes() []Mode {
	return []Mode{
		ModeFocus, ModeShort, ModeLong, ModeFlowtime,
		ModeBreath, ModeGrounding, ModeMicrobreak,
		ModeInterval,
		ModeStopwatch, ModeCountdown, ModeDeadline, ModeGrill,
	}
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllModes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// IsBreak reports whether the mode is a focus-cycle break.
func (m Mode) IsBreak() bool {
	return m == ModeShort || m == ModeLong
}

// IsWork reports whether the mode accrues focus time.
func (m Mode) IsWork() bool {
	return m == ModeFocus || m == ModeFlowtime
}
