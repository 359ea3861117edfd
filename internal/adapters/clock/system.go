// Package clock provides the real and manual implementations of
// ports.Clock.
package clock

import (
	"sync"
	"time"

	"github.com/xvierd/timerdeck/internal/ports"
)

// System is the wall clock.
type System struct{}

// Ensure System implements ports.Clock.
var _ ports.Clock = System{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc.
func (System) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// NewDriver returns a ticker-backed driver.
func (System) NewDriver(interval time.Duration) ports.Driver {
	return &tickerDriver{interval: interval}
}

type tickerDriver struct {
	mu       sync.Mutex
	interval time.Duration
	done     chan struct{}
}

func (d *tickerDriver) Start(fn func(time.Time)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done != nil {
		return
	}

	done := make(chan struct{})
	d.done = done
	ticker := time.NewTicker(d.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case t := <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				fn(t)
			}
		}
	}()
}

func (d *tickerDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == nil {
		return
	}
	close(d.done)
	d.done = nil
}

func (d *tickerDriver) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done != nil
}
