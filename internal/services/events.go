package services

import (
	"sync"

	"github.com/xvierd/timerdeck/internal/domain"
)

// broadcaster fans events out to subscriber channels without blocking.
type broadcaster struct {
	mu     sync.Mutex
	subs   []chan domain.Event
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{}
}

// subscribe registers a new observer channel.
func (b *broadcaster) subscribe(buffer int) (<-chan domain.Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan domain.Event, buffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subs = append(b.subs, ch)
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(ch) })
	}
}

func (b *broadcaster) unsubscribe(ch chan domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// publish delivers event to every subscriber with room in its buffer.
func (b *broadcaster) publish(event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// close closes every subscriber channel.
func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
