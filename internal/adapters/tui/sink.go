package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

var _ ports.Display = (*Sink)(nil)

// viewMsg carries a clock face pushed by the session engine.
type viewMsg domain.View

// timersMsg carries the kitchen timer list pushed by the timer manager.
type timersMsg []domain.MultiTimer

// Sink is the display the engines are built with. Output is dropped until
// a program is attached.
type Sink struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// NewSink creates a detached sink.
func NewSink() *Sink {
	return &Sink{}
}

// Attach forwards subsequent output to p.
func (s *Sink) Attach(p *tea.Program) {
	s.mu.Lock()
	s.send = p.Send
	s.mu.Unlock()
}

// Detach stops forwarding.
func (s *Sink) Detach() {
	s.mu.Lock()
	s.send = nil
	s.mu.Unlock()
}

// ShowSession implements ports.Display.
func (s *Sink) ShowSession(view domain.View) {
	s.forward(viewMsg(view))
}

// ShowTimers implements ports.Display.
func (s *Sink) ShowTimers(timers []domain.MultiTimer) {
	s.forward(timersMsg(append([]domain.MultiTimer(nil), timers...)))
}

func (s *Sink) forward(msg tea.Msg) {
	s.mu.RLock()
	send := s.send
	s.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}
