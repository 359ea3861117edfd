package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

// QueueService owns the task queue. Index 0 is the active task.
type QueueService struct {
	mu    sync.Mutex
	repo  ports.QueueRepository
	items []domain.TaskQueueItem
}

// NewQueueService creates a queue service.
func NewQueueService(repo ports.QueueRepository) *QueueService {
	return &QueueService{repo: repo, items: []domain.TaskQueueItem{}}
}

// Load reads the queue from storage.
func (s *QueueService) Load(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load queue: %w", err)
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Enqueue appends a task.
func (s *QueueService) Enqueue(ctx context.Context, text string) (domain.TaskQueueItem, error) {
	item, err := domain.NewTaskQueueItem(text)
	if err != nil {
		return domain.TaskQueueItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(append([]domain.TaskQueueItem(nil), s.items...), item)
	if err := s.saveLocked(ctx, next); err != nil {
		return domain.TaskQueueItem{}, err
	}
	return item, nil
}

// Promote moves the item at index to the head, keeping the others in order.
func (s *QueueService) Promote(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return domain.ErrQueueIndex
	}
	if index == 0 {
		return nil
	}
	next := make([]domain.TaskQueueItem, 0, len(s.items))
	next = append(next, s.items[index])
	next = append(next, s.items[:index]...)
	next = append(next, s.items[index+1:]...)
	return s.saveLocked(ctx, next)
}

// Remove deletes the item at index without logging it.
func (s *QueueService) Remove(ctx context.Context, index int) (domain.TaskQueueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return domain.TaskQueueItem{}, domain.ErrQueueIndex
	}
	removed := s.items[index]
	next := append(append([]domain.TaskQueueItem(nil), s.items[:index]...), s.items[index+1:]...)
	if err := s.saveLocked(ctx, next); err != nil {
		return domain.TaskQueueItem{}, err
	}
	return removed, nil
}

// Edit replaces the text at index. Empty text is rejected and the
// previous text kept.
func (s *QueueService) Edit(ctx context.Context, index int, text string) (domain.TaskQueueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return domain.TaskQueueItem{}, domain.ErrQueueIndex
	}
	next := append([]domain.TaskQueueItem(nil), s.items...)
	if err := next[index].Rename(text); err != nil {
		return s.items[index], err
	}
	if err := s.saveLocked(ctx, next); err != nil {
		return domain.TaskQueueItem{}, err
	}
	return next[index], nil
}

// Active returns the head of the queue.
func (s *QueueService) Active() (domain.TaskQueueItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return domain.TaskQueueItem{}, false
	}
	return s.items[0], true
}

// PopActive removes and returns the head of the queue.
func (s *QueueService) PopActive(ctx context.Context) (domain.TaskQueueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return domain.TaskQueueItem{}, domain.ErrQueueEmpty
	}
	head := s.items[0]
	next := append([]domain.TaskQueueItem(nil), s.items[1:]...)
	if err := s.saveLocked(ctx, next); err != nil {
		return domain.TaskQueueItem{}, err
	}
	return head, nil
}

// List returns a copy of the queue.
func (s *QueueService) List() []domain.TaskQueueItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.TaskQueueItem(nil), s.items...)
}

func (s *QueueService) saveLocked(ctx context.Context, next []domain.TaskQueueItem) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save queue: %w", err)
	}
	s.items = next
	return nil
}
