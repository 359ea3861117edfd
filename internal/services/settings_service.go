// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

// SettingsService caches the runtime settings documents and writes every
// change through to storage.
type SettingsService struct {
	mu       sync.RWMutex
	repo     ports.SettingsRepository
	logger   *slog.Logger
	modes    domain.ModeDurations
	goals    domain.Goals
	flow     domain.FlowSettings
	theme    domain.Theme
	sound    bool
	deadline *time.Time
	breath   domain.BreathPreference
}

// NewSettingsService creates a settings service holding defaults until Load.
func NewSettingsService(repo ports.SettingsRepository, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		repo:   repo,
		logger: orDiscard(logger),
		modes:  domain.DefaultModeDurations(),
		goals:  domain.DefaultGoals(),
		flow:   domain.DefaultFlowSettings(),
		theme:  domain.ThemeSystem,
		sound:  true,
		breath: domain.DefaultBreathPreference(),
	}
}

// Load reads every settings document. Unreadable documents keep their
// defaults and are logged.
func (s *SettingsService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.modes, err = s.repo.Modes(ctx); err != nil {
		s.logger.Warn("using default mode durations", "error", err)
	}
	if s.goals, err = s.repo.Goals(ctx); err != nil {
		s.logger.Warn("using default goals", "error", err)
	}
	if s.flow, err = s.repo.Flow(ctx); err != nil {
		s.logger.Warn("using default flow settings", "error", err)
	}
	if s.theme, err = s.repo.Theme(ctx); err != nil {
		s.logger.Warn("using default theme", "error", err)
	}
	if s.sound, err = s.repo.Sound(ctx); err != nil {
		s.logger.Warn("using default sound flag", "error", err)
	}
	if s.deadline, err = s.repo.Deadline(ctx); err != nil {
		s.logger.Warn("ignoring stored deadline", "error", err)
	}
	if s.breath, err = s.repo.Breath(ctx); err != nil {
		s.logger.Warn("using default breathing pattern", "error", err)
	}
}

// Modes returns the focus-cycle durations.
func (s *SettingsService) Modes() domain.ModeDurations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modes
}

// SetModes stores new durations. Every value must be positive.
func (s *SettingsService) SetModes(ctx context.Context, d domain.ModeDurations) error {
	if d.Focus <= 0 || d.Short <= 0 || d.Long <= 0 {
		return domain.ErrInvalidDuration
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveModes(ctx, d); err != nil {
		return fmt.Errorf("failed to save modes: %w", err)
	}
	s.modes = d
	return nil
}

// Goals returns the daily and weekly targets.
func (s *SettingsService) Goals() domain.Goals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goals
}

// SetGoals stores new targets. Negative hours are rejected.
func (s *SettingsService) SetGoals(ctx context.Context, g domain.Goals) error {
	if g.DailyHours < 0 || g.WeeklyHours < 0 {
		return fmt.Errorf("%w: goals cannot be negative", domain.ErrInvalidDuration)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveGoals(ctx, g); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	s.goals = g
	return nil
}

// Flow returns the focus-cycle settings.
func (s *SettingsService) Flow() domain.FlowSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flow
}

// UpdateFlow applies fn to a copy of the flow settings and stores it.
func (s *SettingsService) UpdateFlow(ctx context.Context, fn func(*domain.FlowSettings)) (domain.FlowSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.flow
	fn(&next)
	if next.LongBreakInterval < 1 {
		next.LongBreakInterval = domain.DefaultLongBreakInterval
	}
	if next.FlowtimeRatio <= 0 {
		next.FlowtimeRatio = domain.DefaultFlowSettings().FlowtimeRatio
	}
	if next.FocusCount < 0 {
		next.FocusCount = 0
	}
	if err := s.repo.SaveFlow(ctx, next); err != nil {
		return s.flow, fmt.Errorf("failed to save flow settings: %w", err)
	}
	s.flow = next
	return next, nil
}

// Theme returns the appearance preference.
func (s *SettingsService) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme stores the appearance preference.
func (s *SettingsService) SetTheme(ctx context.Context, t domain.Theme) error {
	t = domain.ParseTheme(string(t))
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveTheme(ctx, t); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	s.theme = t
	return nil
}

// SoundEnabled reports whether alarms and cues should play.
func (s *SettingsService) SoundEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sound
}

// SetSound stores the sound flag.
func (s *SettingsService) SetSound(ctx context.Context, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveSound(ctx, enabled); err != nil {
		return fmt.Errorf("failed to save sound flag: %w", err)
	}
	s.sound = enabled
	return nil
}

// Deadline returns the configured deadline target, if any.
func (s *SettingsService) Deadline() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.deadline == nil {
		return nil
	}
	t := *s.deadline
	return &t
}

// SetDeadline stores the deadline target. Nil clears it.
func (s *SettingsService) SetDeadline(ctx context.Context, target *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveDeadline(ctx, target); err != nil {
		return fmt.Errorf("failed to save deadline: %w", err)
	}
	if target == nil {
		s.deadline = nil
		return nil
	}
	t := *target
	s.deadline = &t
	return nil
}

// Breath returns the breathing selection.
func (s *SettingsService) Breath() domain.BreathPreference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.breath
}

// SetBreath stores the breathing selection.
func (s *SettingsService) SetBreath(ctx context.Context, b domain.BreathPreference) error {
	if _, err := domain.LookupBreath(b.Pattern, b.Custom); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveBreath(ctx, b); err != nil {
		return fmt.Errorf("failed to save breathing pattern: %w", err)
	}
	s.breath = b
	return nil
}

// orDiscard substitutes a no-op logger for nil.
func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
