package ports

import (
	"context"

	"github.com/xvierd/timerdeck/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests and blocks until ctx is done.
	Start(ctx context.Context) error
}

// MCPStateProvider is the control surface exposed to MCP tools.
// This is a driven port (implemented by services layer).
type MCPStateProvider interface {
	GetCurrentState(ctx context.Context) (*domain.CurrentState, error)

	StartTimer(ctx context.Context) error
	PauseTimer(ctx context.Context) error
	ResetTimer(ctx context.Context) error
	SwitchMode(ctx context.Context, mode domain.Mode) error
	SetDuration(ctx context.Context, text string) error

	CompleteTask(ctx context.Context) (*domain.HistoryEntry, error)
	EnqueueTask(ctx context.Context, text string) (domain.TaskQueueItem, error)
	ListQueue(ctx context.Context) ([]domain.TaskQueueItem, error)

	ListHistory(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
	AddHistory(ctx context.Context, label string, minutes int, override domain.HistoryCounters) (domain.HistoryEntry, error)

	CreateTimer(ctx context.Context, name string, seconds int) (domain.MultiTimer, error)
	ToggleTimer(ctx context.Context, id int64) (domain.MultiTimer, error)
	ListTimers(ctx context.Context) ([]domain.MultiTimer, error)
}
