package domain

import "fmt"

// PhaseType is a breathing phase kind.
type PhaseType string

const (
	PhaseInhale PhaseType = "inhale"
	PhaseHold   PhaseType = "hold"
	PhaseExhale PhaseType = "exhale"
)

// BreathPhase is one sub-interval of a breathing cycle.
type BreathPhase struct {
	Type      PhaseType `json:"type"`
	Seconds   int       `json:"seconds"`
	EmptyHold bool      `json:"empty_hold,omitempty"`
}

// Label returns the prompt shown while the phase is active.
func (p BreathPhase) Label() string {
	switch p.Type {
	case PhaseInhale:
		return "Breathe in"
	case PhaseExhale:
		return "Breathe out"
	}
	if p.EmptyHold {
		return "Hold (empty)"
	}
	return "Hold"
}

// Level returns the secondary indicator value in [0, 100] after tick
// seconds of the phase. Inhale ramps up, exhale ramps down, a hold pins
// at full and an empty hold pins at zero.
func (p BreathPhase) Level(tick int) float64 {
	frac := 1.0
	if p.Seconds > 0 {
		frac = float64(tick) / float64(p.Seconds)
		if frac > 1 {
			frac = 1
		}
	}
	switch p.Type {
	case PhaseInhale:
		return frac * 100
	case PhaseExhale:
		return 100 - frac*100
	}
	if p.EmptyHold {
		return 0
	}
	return 100
}

// BreathSession is a named breathing exercise.
type BreathSession struct {
	Key          string        `json:"key"`
	Name         string        `json:"name"`
	TotalMinutes int           `json:"total_minutes" yaml:"total_minutes"`
	Phases       []BreathPhase `json:"phases"`
}

// CycleSeconds returns the length of one pass through all phases.
func (b BreathSession) CycleSeconds() int {
	total := 0
	for _, p := range b.Phases {
		total += p.Seconds
	}
	return total
}

// Breathing pattern keys.
const (
	PatternBox      = "box"
	PatternRelax    = "relax"
	PatternCoherent = "coherent"
	PatternCustom   = "custom"
)

// BreathCatalog returns the built-in patterns keyed by name.
func BreathCatalog() map[string]BreathSession {
	return map[string]BreathSession{
		PatternBox: {
			Key: PatternBox, Name: "Box breathing", TotalMinutes: 4,
			Phases: []BreathPhase{
				{Type: PhaseInhale, Seconds: 4},
				{Type: PhaseHold, Seconds: 4},
				{Type: PhaseExhale, Seconds: 4},
				{Type: PhaseHold, Seconds: 4, EmptyHold: true},
			},
		},
		PatternRelax: {
			Key: PatternRelax, Name: "4-7-8 relax", TotalMinutes: 4,
			Phases: []BreathPhase{
				{Type: PhaseInhale, Seconds: 4},
				{Type: PhaseHold, Seconds: 7},
				{Type: PhaseExhale, Seconds: 8},
			},
		},
		PatternCoherent: {
			Key: PatternCoherent, Name: "Coherent breathing", TotalMinutes: 5,
			Phases: []BreathPhase{
				{Type: PhaseInhale, Seconds: 5},
				{Type: PhaseExhale, Seconds: 5},
			},
		},
	}
}

// CustomBreath holds the four user inputs of the custom pattern.
type CustomBreath struct {
	Inhale       int `json:"inhale" yaml:"inhale"`
	Hold         int `json:"hold" yaml:"hold"`
	Exhale       int `json:"exhale" yaml:"exhale"`
	EmptyHold    int `json:"empty_hold" yaml:"empty_hold"`
	TotalMinutes int `json:"total_minutes" yaml:"total_minutes"`
}

// Build turns the inputs into a session. Only positive inputs contribute a
// phase; if none do, a 4s inhale / 4s exhale pair is substituted.
func (c CustomBreath) Build() BreathSession {
	minutes := c.TotalMinutes
	if minutes <= 0 {
		minutes = 3
	}
	var phases []BreathPhase
	if c.Inhale > 0 {
		phases = append(phases, BreathPhase{Type: PhaseInhale, Seconds: c.Inhale})
	}
	if c.Hold > 0 {
		phases = append(phases, BreathPhase{Type: PhaseHold, Seconds: c.Hold})
	}
	if c.Exhale > 0 {
		phases = append(phases, BreathPhase{Type: PhaseExhale, Seconds: c.Exhale})
	}
	if c.EmptyHold > 0 {
		phases = append(phases, BreathPhase{Type: PhaseHold, Seconds: c.EmptyHold, EmptyHold: true})
	}
	if len(phases) == 0 {
		phases = []BreathPhase{
			{Type: PhaseInhale, Seconds: 4},
			{Type: PhaseExhale, Seconds: 4},
		}
	}
	return BreathSession{Key: PatternCustom, Name: "Custom", TotalMinutes: minutes, Phases: phases}
}

// LookupBreath returns a catalog pattern, or the custom session for
// PatternCustom.
func LookupBreath(key string, custom CustomBreath) (BreathSession, error) {
	if key == PatternCustom {
		return custom.Build(), nil
	}
	s, ok := BreathCatalog()[key]
	if !ok {
		return BreathSession{}, fmt.Errorf("%w: %q", ErrUnknownPattern, key)
	}
	return s, nil
}

// BreathPreference is the persisted breathing selection.
type BreathPreference struct {
	Pattern string       `json:"pattern" yaml:"pattern"`
	Custom  CustomBreath `json:"custom" yaml:"custom"`
}

// DefaultBreathPreference selects box breathing.
func DefaultBreathPreference() BreathPreference {
	return BreathPreference{Pattern: PatternBox}
}
