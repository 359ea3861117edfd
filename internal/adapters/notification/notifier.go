// Package notification provides desktop notifications and audio cues.
package notification

import (
	"sync/atomic"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg   *config.NotificationConfig
	ready atomic.Bool
	send  func(title, message string, icon any) error
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	beeep.AppName = "timerdeck"
	return &Notifier{cfg: cfg, send: beeep.Notify}
}

// RequestPermission marks the notifier ready. Desktop notifications need
// no grant on the platforms beeep supports.
func (n *Notifier) RequestPermission() {
	if n.IsEnabled() {
		n.ready.Store(true)
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.send(title, message, "")
}

// Ready reports whether RequestPermission has run with notifications on.
func (n *Notifier) Ready() bool {
	return n.ready.Load()
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
