package services

import "github.com/xvierd/timerdeck/internal/domain"

// IntervalOutcome is the result of a work or rest phase ending.
type IntervalOutcome int

const (
	IntervalToRest IntervalOutcome = iota
	IntervalToWork
	IntervalComplete
	IntervalIdle
)

// IntervalEngine alternates work and rest phases for a fixed number of
// cycles. It is owned by the Engine and guarded by the Engine's lock.
type IntervalEngine struct {
	session domain.IntervalSession
	done    bool
}

// NewIntervalEngine creates an engine at Work, cycle 1.
func NewIntervalEngine(settings domain.IntervalSession) *IntervalEngine {
	return &IntervalEngine{session: settings.Normalize()}
}

// Configure replaces the phase lengths and cycle count and resets.
func (e *IntervalEngine) Configure(work, rest, cycles int) {
	e.session = domain.IntervalSession{WorkSeconds: work, RestSeconds: rest, TotalCycles: cycles}.Normalize()
	e.done = false
}

// Reset restores Work, cycle 1.
func (e *IntervalEngine) Reset() {
	e.session = e.session.Normalize()
	e.done = false
}

// PhaseEnded advances past the phase that just reached zero. It reports
// IntervalComplete exactly once per run, after the last rest phase.
func (e *IntervalEngine) PhaseEnded() IntervalOutcome {
	if e.done {
		return IntervalIdle
	}
	if !e.session.Rest {
		e.session.Rest = true
		return IntervalToRest
	}
	if e.session.CurrentCycle+1 > e.session.TotalCycles {
		e.done = true
		return IntervalComplete
	}
	e.session.CurrentCycle++
	e.session.Rest = false
	return IntervalToWork
}

// PhaseSeconds returns the length of the current phase.
func (e *IntervalEngine) PhaseSeconds() int {
	return e.session.PhaseSeconds()
}

// State returns a copy of the session.
func (e *IntervalEngine) State() domain.IntervalSession {
	return e.session
}
