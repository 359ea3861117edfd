package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

// TimerManagerOptions wires a TimerManager. Display, Notifier and Audio
// may be nil.
type TimerManagerOptions struct {
	Clock    ports.Clock
	Repo     ports.TimerRepository
	Settings *SettingsService
	Display  ports.Display
	Notifier ports.Notifier
	Audio    ports.AudioCue
	Logger   *slog.Logger
}

// TimerManager runs any number of named kitchen timers on one shared
// driver. The driver only runs while at least one timer does.
type TimerManager struct {
	mu       sync.Mutex
	clock    ports.Clock
	driver   ports.Driver
	gen      uint64
	repo     ports.TimerRepository
	settings *SettingsService
	display  ports.Display
	notifier ports.Notifier
	audio    ports.AudioCue
	logger   *slog.Logger
	timers   []domain.MultiTimer
	created  int

	notifyOff atomic.Bool
	events    *broadcaster
}

// NewTimerManager creates an empty manager.
func NewTimerManager(opts TimerManagerOptions) *TimerManager {
	return &TimerManager{
		clock:    opts.Clock,
		driver:   opts.Clock.NewDriver(time.Second),
		repo:     opts.Repo,
		settings: opts.Settings,
		display:  opts.Display,
		notifier: opts.Notifier,
		audio:    opts.Audio,
		logger:   orDiscard(opts.Logger),
		timers:   []domain.MultiTimer{},
		events:   newBroadcaster(),
	}
}

// timerEffects collects side effects of one locked manager operation.
type timerEffects struct {
	finished []domain.MultiTimer
	quiet    bool
}

func (m *TimerManager) run(fn func(fx *timerEffects) error) error {
	fx := &timerEffects{}
	m.mu.Lock()
	err := fn(fx)
	timers := append([]domain.MultiTimer(nil), m.timers...)
	m.mu.Unlock()

	if err != nil || fx.quiet {
		return err
	}
	m.flush(fx, timers)
	return nil
}

func (m *TimerManager) flush(fx *timerEffects, timers []domain.MultiTimer) {
	now := m.clock.Now()
	for _, t := range fx.finished {
		if m.audio != nil && (m.settings == nil || m.settings.SoundEnabled()) {
			if err := m.audio.Play(domain.CueAlarm); err != nil {
				m.logger.Warn("audio cue failed", "timer", t.Name, "error", err)
			}
		}
		if m.notifier != nil && !m.notifyOff.Load() {
			if err := m.notifier.Notify("Timer finished", fmt.Sprintf("%s is done!", t.Name)); err != nil {
				m.logger.Warn("notifications disabled", "error", err)
				m.notifyOff.Store(true)
			}
		}
		done := t
		m.events.publish(domain.Event{Type: domain.EventTimerDone, At: now, Timers: timers, Timer: &done})
	}
	if m.display != nil {
		m.display.ShowTimers(timers)
	}
	m.events.publish(domain.Event{Type: domain.EventTimers, At: now, Timers: timers})
}

// Load restores the persisted timers. Timers that were running are
// restored paused. Default names continue after the highest "Timer N" seen.
func (m *TimerManager) Load(ctx context.Context) error {
	timers, err := m.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load timers: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range timers {
		timers[i].Running = false
	}
	m.timers = timers
	m.created = len(timers)
	for _, t := range timers {
		if n := defaultNameIndex(t.Name); n > m.created {
			m.created = n
		}
	}
	return nil
}

// defaultNameIndex returns N for a "Timer N" name and 0 otherwise.
func defaultNameIndex(name string) int {
	rest, ok := strings.CutPrefix(name, "Timer ")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Create adds a timer. An empty name becomes "Timer N".
func (m *TimerManager) Create(ctx context.Context, name string, seconds int, start bool) (domain.MultiTimer, error) {
	if seconds <= 0 {
		return domain.MultiTimer{}, domain.ErrInvalidDuration
	}
	var created domain.MultiTimer
	err := m.run(func(fx *timerEffects) error {
		m.created++
		name = strings.TrimSpace(name)
		if name == "" {
			name = domain.DefaultTimerName(m.created)
		}
		created = domain.MultiTimer{
			ID:           domain.TimestampID(m.clock.Now(), m.hasIDLocked),
			Name:         name,
			TotalSeconds: seconds,
			TimeLeft:     seconds,
			Running:      start,
		}
		next := append(append([]domain.MultiTimer(nil), m.timers...), created)
		if err := m.saveLocked(ctx, next); err != nil {
			return err
		}
		m.syncDriverLocked()
		return nil
	})
	return created, err
}

// CreatePreset adds a running timer from a built-in preset. The key is
// matched fuzzily against preset keys and names.
func (m *TimerManager) CreatePreset(ctx context.Context, key string) (domain.MultiTimer, error) {
	preset, err := ResolvePreset(key)
	if err != nil {
		return domain.MultiTimer{}, err
	}
	return m.Create(ctx, preset.Name, preset.Seconds, true)
}

// ResolvePreset finds the preset best matching key.
func ResolvePreset(key string) (domain.TimerPreset, error) {
	presets := domain.TimerPresets()
	query := strings.ToLower(strings.TrimSpace(key))
	names := make([]string, 0, len(presets)*2)
	for _, p := range presets {
		if p.Key == query {
			return p, nil
		}
		names = append(names, p.Key, strings.ToLower(p.Name))
	}
	if query != "" {
		if matches := fuzzy.Find(query, names); len(matches) > 0 {
			return presets[matches[0].Index/2], nil
		}
	}
	return domain.TimerPreset{}, fmt.Errorf("%w: unknown preset %q", domain.ErrTimerNotFound, key)
}

// Toggle starts or pauses a timer. A finished timer is reloaded and
// started.
func (m *TimerManager) Toggle(ctx context.Context, id int64) (domain.MultiTimer, error) {
	return m.mutate(ctx, id, func(t *domain.MultiTimer) error {
		if t.Running {
			t.Running = false
			return nil
		}
		if t.Finished() {
			t.Reload()
		}
		t.Running = true
		return nil
	})
}

// Reset reloads and pauses a timer.
func (m *TimerManager) Reset(ctx context.Context, id int64) (domain.MultiTimer, error) {
	return m.mutate(ctx, id, func(t *domain.MultiTimer) error {
		t.Reload()
		t.Running = false
		return nil
	})
}

// Rename changes a timer's name. Empty names are rejected.
func (m *TimerManager) Rename(ctx context.Context, id int64, name string) (domain.MultiTimer, error) {
	return m.mutate(ctx, id, func(t *domain.MultiTimer) error {
		return t.Rename(name)
	})
}

// EditDuration sets a new length from "MM:SS" or bare minutes. The timer
// is paused and reloaded.
func (m *TimerManager) EditDuration(ctx context.Context, id int64, text string) (domain.MultiTimer, error) {
	seconds, err := domain.ParseTimeEdit(text)
	if err != nil {
		return domain.MultiTimer{}, err
	}
	return m.mutate(ctx, id, func(t *domain.MultiTimer) error {
		t.TotalSeconds = seconds
		t.TimeLeft = seconds
		t.Running = false
		return nil
	})
}

// Delete removes a timer.
func (m *TimerManager) Delete(ctx context.Context, id int64) error {
	return m.run(func(fx *timerEffects) error {
		i := m.indexLocked(id)
		if i < 0 {
			return domain.ErrTimerNotFound
		}
		next := append(append([]domain.MultiTimer(nil), m.timers[:i]...), m.timers[i+1:]...)
		if err := m.saveLocked(ctx, next); err != nil {
			return err
		}
		m.syncDriverLocked()
		return nil
	})
}

// List returns a copy of the timers in creation order.
func (m *TimerManager) List() []domain.MultiTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.MultiTimer(nil), m.timers...)
}

// Get returns the timer with id.
func (m *TimerManager) Get(id int64) (domain.MultiTimer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(id)
	if i < 0 {
		return domain.MultiTimer{}, domain.ErrTimerNotFound
	}
	return m.timers[i], nil
}

// Running reports whether any timer is counting down.
func (m *TimerManager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.anyRunningLocked()
}

// Subscribe returns a channel of timer events.
func (m *TimerManager) Subscribe(buffer int) (<-chan domain.Event, func()) {
	return m.events.subscribe(buffer)
}

// Close stops the shared driver.
func (m *TimerManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.driver.Stop()
	m.gen++
	m.events.close()
}

func (m *TimerManager) mutate(ctx context.Context, id int64, fn func(*domain.MultiTimer) error) (domain.MultiTimer, error) {
	var updated domain.MultiTimer
	err := m.run(func(fx *timerEffects) error {
		i := m.indexLocked(id)
		if i < 0 {
			return domain.ErrTimerNotFound
		}
		next := append([]domain.MultiTimer(nil), m.timers...)
		if err := fn(&next[i]); err != nil {
			return err
		}
		if err := m.saveLocked(ctx, next); err != nil {
			return err
		}
		updated = next[i]
		m.syncDriverLocked()
		return nil
	})
	return updated, err
}

// syncDriverLocked starts the driver when a timer runs and stops it when
// none do.
func (m *TimerManager) syncDriverLocked() {
	running := m.anyRunningLocked()
	switch {
	case running && !m.driver.Active():
		m.gen++
		gen := m.gen
		m.driver.Start(func(now time.Time) {
			m.onTick(gen)
		})
	case !running && m.driver.Active():
		m.driver.Stop()
		m.gen++
	}
}

func (m *TimerManager) onTick(gen uint64) {
	_ = m.run(func(fx *timerEffects) error {
		if gen != m.gen {
			fx.quiet = true
			return nil
		}
		for i := range m.timers {
			if m.timers[i].Tick() {
				fx.finished = append(fx.finished, m.timers[i])
			}
		}
		if len(fx.finished) > 0 {
			if err := m.repo.Save(context.Background(), m.timers); err != nil {
				m.logger.Error("failed to save timers", "error", err)
			}
		}
		m.syncDriverLocked()
		return nil
	})
}

func (m *TimerManager) anyRunningLocked() bool {
	for _, t := range m.timers {
		if t.Running {
			return true
		}
	}
	return false
}

func (m *TimerManager) saveLocked(ctx context.Context, next []domain.MultiTimer) error {
	if err := m.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save timers: %w", err)
	}
	m.timers = next
	return nil
}

func (m *TimerManager) indexLocked(id int64) int {
	for i, t := range m.timers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *TimerManager) hasIDLocked(id int64) bool {
	return m.indexLocked(id) >= 0
}
