package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/xvierd/timerdeck/internal/ports"
)

// Manual is a clock that only moves when Advance is called. Drivers and
// scheduled funcs fire synchronously from Advance.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	drivers []*manualDriver
	timers  []*manualTimer
	seq     int
}

// Ensure Manual implements ports.Clock.
var _ ports.Clock = (*Manual)(nil)

// NewManual creates a manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the manual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set jumps to t without firing anything.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// AfterFunc schedules f to run when the clock passes now+d.
func (m *Manual) AfterFunc(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{at: m.now.Add(d), f: f, seq: m.seq}
	m.timers = append(m.timers, t)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, other := range m.timers {
			if other == t {
				m.timers = append(m.timers[:i], m.timers[i+1:]...)
				return true
			}
		}
		return false
	}
}

// NewDriver creates a driver that fires once per interval of Advance.
func (m *Manual) NewDriver(interval time.Duration) ports.Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := &manualDriver{clock: m, interval: interval}
	m.drivers = append(m.drivers, d)
	return d
}

// Advance moves the clock forward in one-second steps, firing due driver
// ticks and scheduled funcs after each step.
func (m *Manual) Advance(d time.Duration) {
	for d > 0 {
		step := time.Second
		if d < step {
			step = d
		}
		d -= step
		m.step(step)
	}
}

// Tick advances the clock by n seconds.
func (m *Manual) Tick(n int) {
	m.Advance(time.Duration(n) * time.Second)
}

type firing struct {
	fn func(time.Time)
	at time.Time
}

func (m *Manual) step(step time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(step)
	now := m.now

	var due []firing
	for _, d := range m.drivers {
		if d.fn == nil || d.next.After(now) {
			continue
		}
		due = append(due, firing{fn: d.fn, at: now})
		d.next = d.next.Add(d.interval)
	}

	var funcs []*manualTimer
	kept := m.timers[:0]
	for _, t := range m.timers {
		if t.at.After(now) {
			kept = append(kept, t)
			continue
		}
		funcs = append(funcs, t)
	}
	m.timers = kept
	m.mu.Unlock()

	sort.Slice(funcs, func(i, j int) bool { return funcs[i].seq < funcs[j].seq })
	for _, f := range due {
		f.fn(f.at)
	}
	for _, t := range funcs {
		t.f()
	}
}

type manualTimer struct {
	at  time.Time
	f   func()
	seq int
}

type manualDriver struct {
	clock    *Manual
	interval time.Duration
	fn       func(time.Time)
	next     time.Time
}

func (d *manualDriver) Start(fn func(time.Time)) {
	d.clock.mu.Lock()
	defer d.clock.mu.Unlock()
	if d.fn != nil {
		return
	}
	d.fn = fn
	d.next = d.clock.now.Add(d.interval)
}

func (d *manualDriver) Stop() {
	d.clock.mu.Lock()
	defer d.clock.mu.Unlock()
	d.fn = nil
}

func (d *manualDriver) Active() bool {
	d.clock.mu.Lock()
	defer d.clock.mu.Unlock()
	return d.fn != nil
}
