// Package ports defines the interfaces (driven and driving ports)
// for timerdeck following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/xvierd/timerdeck/internal/domain"
)

// ErrNotFound is returned by a KVStore for a missing key.
var ErrNotFound = errors.New("key not found")

// Document keys.
const (
	KeyModes    = "modes"
	KeyHistory  = "history"
	KeyGoals    = "goals"
	KeyFlow     = "flow"
	KeyTheme    = "theme"
	KeySound    = "sound"
	KeyQueue    = "queue"
	KeyTimers   = "timers"
	KeyDeadline = "deadline"
	KeyBreath   = "breath"
)

// KVStore is a synchronous key to JSON document store. Set replaces the
// whole document.
// This is a driven port (implemented by adapters).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// HistoryRepository persists the history ledger.
type HistoryRepository interface {
	// Load returns the sanitized ledger, most recent first.
	Load(ctx context.Context) ([]domain.HistoryEntry, error)

	// Save replaces the stored ledger.
	Save(ctx context.Context, entries []domain.HistoryEntry) error
}

// QueueRepository persists the task queue.
type QueueRepository interface {
	Load(ctx context.Context) ([]domain.TaskQueueItem, error)
	Save(ctx context.Context, items []domain.TaskQueueItem) error
}

// TimerRepository persists the kitchen timer collection.
type TimerRepository interface {
	Load(ctx context.Context) ([]domain.MultiTimer, error)
	Save(ctx context.Context, timers []domain.MultiTimer) error
}

// SettingsRepository persists the small runtime settings documents.
// Loading a missing or corrupt document returns its defaults.
type SettingsRepository interface {
	Modes(ctx context.Context) (domain.ModeDurations, error)
	SaveModes(ctx context.Context, d domain.ModeDurations) error

	Goals(ctx context.Context) (domain.Goals, error)
	SaveGoals(ctx context.Context, g domain.Goals) error

	Flow(ctx context.Context) (domain.FlowSettings, error)
	SaveFlow(ctx context.Context, f domain.FlowSettings) error

	Theme(ctx context.Context) (domain.Theme, error)
	SaveTheme(ctx context.Context, t domain.Theme) error

	Sound(ctx context.Context) (bool, error)
	SaveSound(ctx context.Context, enabled bool) error

	Deadline(ctx context.Context) (*time.Time, error)
	SaveDeadline(ctx context.Context, target *time.Time) error

	Breath(ctx context.Context) (domain.BreathPreference, error)
	SaveBreath(ctx context.Context, b domain.BreathPreference) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// History provides access to the history ledger.
	History() HistoryRepository

	// Queue provides access to the task queue.
	Queue() QueueRepository

	// Timers provides access to the kitchen timers.
	Timers() TimerRepository

	// Settings provides access to runtime settings.
	Settings() SettingsRepository

	// Close closes the underlying store.
	Close() error
}
