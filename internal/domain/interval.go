package domain

// IntervalSession is the state of an interval workout. CurrentCycle is
// 1-based and never exceeds TotalCycles.
type IntervalSession struct {
	WorkSeconds  int  `json:"work_seconds"`
	RestSeconds  int  `json:"rest_seconds"`
	TotalCycles  int  `json:"total_cycles"`
	CurrentCycle int  `json:"current_cycle"`
	Rest         bool `json:"rest"`
}

// DefaultInterval returns 8 cycles of 30s work and 10s rest.
func DefaultInterval() IntervalSession {
	return IntervalSession{WorkSeconds: 30, RestSeconds: 10, TotalCycles: 8, CurrentCycle: 1}
}

// Normalize replaces non-positive settings with defaults and restores
// the Work phase of cycle 1.
func (s IntervalSession) Normalize() IntervalSession {
	d := DefaultInterval()
	if s.WorkSeconds <= 0 {
		s.WorkSeconds = d.WorkSeconds
	}
	if s.RestSeconds <= 0 {
		s.RestSeconds = d.RestSeconds
	}
	if s.TotalCycles <= 0 {
		s.TotalCycles = d.TotalCycles
	}
	s.CurrentCycle = 1
	s.Rest = false
	return s
}

// PhaseSeconds returns the length of the current phase.
func (s IntervalSession) PhaseSeconds() int {
	if s.Rest {
		return s.RestSeconds
	}
	return s.WorkSeconds
}
