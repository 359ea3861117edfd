package services

import "github.com/xvierd/timerdeck/internal/domain"

// BreathingEngine cycles through the phases of a breathing session. It is
// owned by the Engine and guarded by the Engine's lock.
type BreathingEngine struct {
	session domain.BreathSession
	index   int
	tick    int
}

// NewBreathingEngine starts at the first phase of session.
func NewBreathingEngine(session domain.BreathSession) *BreathingEngine {
	b := &BreathingEngine{}
	b.Load(session)
	return b
}

// Load replaces the session and restarts the cycle. An empty phase list
// is replaced by the default inhale/exhale pair.
func (b *BreathingEngine) Load(session domain.BreathSession) {
	if len(session.Phases) == 0 {
		fallback := domain.CustomBreath{TotalMinutes: session.TotalMinutes}.Build()
		session.Phases = fallback.Phases
		if session.TotalMinutes <= 0 {
			session.TotalMinutes = fallback.TotalMinutes
		}
	}
	b.session = session
	b.Reset()
}

// Reset returns to the first phase.
func (b *BreathingEngine) Reset() {
	b.index = 0
	b.tick = 0
}

// Advance counts one second and reports whether the phase changed.
func (b *BreathingEngine) Advance() bool {
	b.tick++
	if b.tick < b.session.Phases[b.index].Seconds {
		return false
	}
	b.index = (b.index + 1) % len(b.session.Phases)
	b.tick = 0
	return true
}

// Phase returns the active phase.
func (b *BreathingEngine) Phase() domain.BreathPhase {
	return b.session.Phases[b.index]
}

// Index returns the active phase index.
func (b *BreathingEngine) Index() int {
	return b.index
}

// Level returns the secondary indicator value for the current second.
func (b *BreathingEngine) Level() float64 {
	return b.Phase().Level(b.tick)
}

// Session returns the loaded session.
func (b *BreathingEngine) Session() domain.BreathSession {
	return b.session
}

// State returns the persisted view of the cycle position.
func (b *BreathingEngine) State() domain.BreathState {
	return domain.BreathState{Pattern: b.session.Key, PhaseIndex: b.index, PhaseTick: b.tick}
}
