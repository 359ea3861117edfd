package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

// HistoryService owns the history ledger. Every mutation writes the whole
// ledger back before returning.
type HistoryService struct {
	mu          sync.Mutex
	repo        ports.HistoryRepository
	clock       ports.Clock
	gitDetector ports.GitDetector
	workingDir  string
	logger      *slog.Logger
	entries     []domain.HistoryEntry
}

// NewHistoryService creates a history service. gitDetector may be nil.
func NewHistoryService(repo ports.HistoryRepository, clock ports.Clock, gitDetector ports.GitDetector, logger *slog.Logger) *HistoryService {
	wd, _ := os.Getwd()
	return &HistoryService{
		repo:        repo,
		clock:       clock,
		gitDetector: gitDetector,
		workingDir:  wd,
		logger:      orDiscard(logger),
		entries:     []domain.HistoryEntry{},
	}
}

// Load reads the ledger from storage.
func (s *HistoryService) Load(ctx context.Context) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// AddEntryRequest contains the resolved values of a completed session.
type AddEntryRequest struct {
	Label         string
	Minutes       int
	Interruptions int
	PausedSeconds int
	Mode          domain.Mode
}

// Add prepends a new entry stamped with the current time.
func (s *HistoryService) Add(ctx context.Context, req AddEntryRequest) (domain.HistoryEntry, error) {
	if req.Minutes <= 0 {
		return domain.HistoryEntry{}, domain.ErrInvalidDuration
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = domain.DefaultTaskLabel
	}

	entry := domain.HistoryEntry{
		Task:            label,
		DurationMinutes: req.Minutes,
		Interruptions:   max(req.Interruptions, 0),
		PausedSeconds:   max(req.PausedSeconds, 0),
		Mode:            req.Mode,
		Branch:          s.detectBranch(ctx),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = domain.TimestampID(s.clock.Now(), s.hasIDLocked)
	next := append([]domain.HistoryEntry{entry}, s.entries...)
	if err := s.saveLocked(ctx, next); err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

func (s *HistoryService) detectBranch(ctx context.Context) string {
	if s.gitDetector == nil || !s.gitDetector.IsAvailable() {
		return ""
	}
	info, err := s.gitDetector.Detect(ctx, s.workingDir)
	if err != nil || info == nil {
		s.logger.Debug("git context unavailable", "error", err)
		return ""
	}
	return info.Branch
}

// List returns a copy of the ledger, most recent first.
func (s *HistoryService) List() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.HistoryEntry(nil), s.entries...)
}

// Get returns the entry with the given id.
func (s *HistoryService) Get(id int64) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.HistoryEntry{}, domain.ErrEntryNotFound
	}
	return s.entries[i], nil
}

// Delete removes an entry.
func (s *HistoryService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.ErrEntryNotFound
	}
	next := append(append([]domain.HistoryEntry(nil), s.entries[:i]...), s.entries[i+1:]...)
	return s.saveLocked(ctx, next)
}

// EditLabel renames an entry. Empty labels are rejected.
func (s *HistoryService) EditLabel(ctx context.Context, id int64, label string) (domain.HistoryEntry, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.HistoryEntry{}, domain.ErrInvalidLabel
	}
	return s.edit(ctx, id, func(e *domain.HistoryEntry) error {
		e.Task = label
		return nil
	})
}

// EditDuration changes an entry's minutes, which must be positive.
func (s *HistoryService) EditDuration(ctx context.Context, id int64, minutes int) (domain.HistoryEntry, error) {
	if minutes <= 0 {
		return domain.HistoryEntry{}, domain.ErrInvalidDuration
	}
	return s.edit(ctx, id, func(e *domain.HistoryEntry) error {
		e.DurationMinutes = minutes
		return nil
	})
}

// EditDate moves an entry to the date described by input. The entry is
// re-stamped with the new time and the ledger re-sorted.
func (s *HistoryService) EditDate(ctx context.Context, id int64, input string) (domain.HistoryEntry, error) {
	now := s.clock.Now()
	return s.edit(ctx, id, func(e *domain.HistoryEntry) error {
		t, err := domain.ParseHistoryDate(input, e.Time(), now)
		if err != nil {
			return err
		}
		self := e.ID
		e.ID = domain.TimestampID(t, func(candidate int64) bool {
			return candidate != self && s.hasIDLocked(candidate)
		})
		return nil
	})
}

func (s *HistoryService) edit(ctx context.Context, id int64, fn func(*domain.HistoryEntry) error) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.HistoryEntry{}, domain.ErrEntryNotFound
	}
	next := append([]domain.HistoryEntry(nil), s.entries...)
	if err := fn(&next[i]); err != nil {
		return domain.HistoryEntry{}, err
	}
	edited := next[i]
	domain.SortHistory(next)
	if err := s.saveLocked(ctx, next); err != nil {
		return domain.HistoryEntry{}, err
	}
	return edited, nil
}

// Stats aggregates the ledger relative to the clock's current time.
func (s *HistoryService) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Aggregate(s.entries, s.clock.Now())
}

// Progress returns daily and weekly goal percentages.
func (s *HistoryService) Progress(goals domain.Goals) (daily, weekly int) {
	st := s.Stats()
	return domain.GoalProgress(st.TodayMinutes, goals.DailyHours),
		domain.GoalProgress(st.WeekMinutes, goals.WeeklyHours)
}

func (s *HistoryService) saveLocked(ctx context.Context, next []domain.HistoryEntry) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	s.entries = next
	return nil
}

func (s *HistoryService) indexLocked(id int64) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *HistoryService) hasIDLocked(id int64) bool {
	return s.indexLocked(id) >= 0
}
