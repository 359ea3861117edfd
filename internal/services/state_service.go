package services

import (
	"context"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

// StateService implements the MCPStateProvider interface on top of the
// engines and ledgers. The CLI uses it as its control facade too.
type StateService struct {
	engine   *Engine
	timers   *TimerManager
	history  *HistoryService
	queue    *QueueService
	settings *SettingsService
}

// Ensure StateService implements ports.MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)

// NewStateService creates a new state service.
func NewStateService(engine *Engine, timers *TimerManager, history *HistoryService, queue *QueueService, settings *SettingsService) *StateService {
	return &StateService{
		engine:   engine,
		timers:   timers,
		history:  history,
		queue:    queue,
		settings: settings,
	}
}

// GetCurrentState implements ports.MCPStateProvider.
func (s *StateService) GetCurrentState(ctx context.Context) (*domain.CurrentState, error) {
	session, view := s.engine.Snapshot()
	goals := s.settings.Goals()
	daily, weekly := s.history.Progress(goals)

	state := &domain.CurrentState{
		Session: session,
		View:    view,
		Queue:   s.queue.List(),
		Timers:  s.timers.List(),
		Stats:   s.history.Stats(),
		Goals:   goals,
		Flow:    s.settings.Flow(),
		Daily:   daily,
		Weekly:  weekly,
	}
	if head, ok := s.queue.Active(); ok {
		state.ActiveTask = &head
	}
	return state, nil
}

// StartTimer implements ports.MCPStateProvider.
func (s *StateService) StartTimer(ctx context.Context) error {
	session, _ := s.engine.Snapshot()
	if session.Running {
		return nil
	}
	return s.engine.Start(ctx)
}

// PauseTimer implements ports.MCPStateProvider.
func (s *StateService) PauseTimer(ctx context.Context) error {
	return s.engine.Pause(ctx)
}

// ResetTimer implements ports.MCPStateProvider.
func (s *StateService) ResetTimer(ctx context.Context) error {
	return s.engine.Reset(ctx)
}

// SwitchMode implements ports.MCPStateProvider.
func (s *StateService) SwitchMode(ctx context.Context, mode domain.Mode) error {
	return s.engine.SwitchMode(ctx, mode)
}

// SetDuration implements ports.MCPStateProvider.
func (s *StateService) SetDuration(ctx context.Context, text string) error {
	return s.engine.SetDuration(ctx, text)
}

// CompleteTask implements ports.MCPStateProvider.
func (s *StateService) CompleteTask(ctx context.Context) (*domain.HistoryEntry, error) {
	return s.engine.CompleteActiveTask(ctx)
}

// EnqueueTask implements ports.MCPStateProvider.
func (s *StateService) EnqueueTask(ctx context.Context, text string) (domain.TaskQueueItem, error) {
	return s.queue.Enqueue(ctx, text)
}

// ListQueue implements ports.MCPStateProvider.
func (s *StateService) ListQueue(ctx context.Context) ([]domain.TaskQueueItem, error) {
	return s.queue.List(), nil
}

// ListHistory implements ports.MCPStateProvider. A non-positive limit
// returns everything.
func (s *StateService) ListHistory(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	entries := s.history.List()
	if limit > 0 && len(entries) > limit {
		return entries[:limit], nil
	}
	return entries, nil
}

// AddHistory implements ports.MCPStateProvider.
func (s *StateService) AddHistory(ctx context.Context, label string, minutes int, override domain.HistoryCounters) (domain.HistoryEntry, error) {
	return s.engine.AddHistory(ctx, label, minutes, override)
}

// CreateTimer implements ports.MCPStateProvider.
func (s *StateService) CreateTimer(ctx context.Context, name string, seconds int) (domain.MultiTimer, error) {
	return s.timers.Create(ctx, name, seconds, true)
}

// ToggleTimer implements ports.MCPStateProvider.
func (s *StateService) ToggleTimer(ctx context.Context, id int64) (domain.MultiTimer, error) {
	return s.timers.Toggle(ctx, id)
}

// ListTimers implements ports.MCPStateProvider.
func (s *StateService) ListTimers(ctx context.Context) ([]domain.MultiTimer, error) {
	return s.timers.List(), nil
}
