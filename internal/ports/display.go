package ports

import "github.com/xvierd/timerdeck/internal/domain"

// Display receives every visible state change.
// This is a driving port (called by the application layer).
type Display interface {
	// ShowSession renders the engine's clock face.
	ShowSession(view domain.View)

	// ShowTimers renders the kitchen timer collection.
	ShowTimers(timers []domain.MultiTimer)
}

// Notifier delivers desktop notifications.
type Notifier interface {
	// Notify sends a notification. Delivery failures are returned but
	// callers treat them as non-fatal.
	Notify(title, body string) error

	// RequestPermission prepares notification delivery. Denial only
	// disables notifications.
	RequestPermission()
}

// AudioCue plays short sounds. Failures never affect timer state.
type AudioCue interface {
	Play(cue domain.Cue) error
}
