package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

// documentStorage implements ports.Storage over any ports.KVStore.
type documentStorage struct {
	kv       ports.KVStore
	history  *historyRepository
	queue    *queueRepository
	timers   *timerRepository
	settings *settingsRepository
}

// Ensure documentStorage implements ports.Storage.
var _ ports.Storage = (*documentStorage)(nil)

// NewDocuments wraps kv with the typed repositories.
func NewDocuments(kv ports.KVStore) ports.Storage {
	return &documentStorage{
		kv:       kv,
		history:  &historyRepository{kv: kv, now: time.Now},
		queue:    &queueRepository{kv: kv},
		timers:   &timerRepository{kv: kv},
		settings: &settingsRepository{kv: kv},
	}
}

func (s *documentStorage) History() ports.HistoryRepository   { return s.history }
func (s *documentStorage) Queue() ports.QueueRepository       { return s.queue }
func (s *documentStorage) Timers() ports.TimerRepository      { return s.timers }
func (s *documentStorage) Settings() ports.SettingsRepository { return s.settings }

// Close closes the underlying store.
func (s *documentStorage) Close() error {
	return s.kv.Close()
}

// readDoc loads key into v. It reports false when the key is missing.
func readDoc(ctx context.Context, kv ports.KVStore, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ports.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupt documents are treated as missing.
		return false, nil
	}
	return true, nil
}

func writeDoc(ctx context.Context, kv ports.KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

type historyRepository struct {
	kv  ports.KVStore
	now func() time.Time
}

// Load reads the ledger through the sanitizer so legacy shapes are repaired.
func (r *historyRepository) Load(ctx context.Context) ([]domain.HistoryEntry, error) {
	data, err := r.kv.Get(ctx, ports.KeyHistory)
	if errors.Is(err, ports.ErrNotFound) {
		return []domain.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return domain.DecodeHistory(data, r.now()), nil
}

func (r *historyRepository) Save(ctx context.Context, entries []domain.HistoryEntry) error {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	if err := writeDoc(ctx, r.kv, ports.KeyHistory, entries); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

type queueRepository struct {
	kv ports.KVStore
}

func (r *queueRepository) Load(ctx context.Context) ([]domain.TaskQueueItem, error) {
	var items []domain.TaskQueueItem
	if _, err := readDoc(ctx, r.kv, ports.KeyQueue, &items); err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}
	valid := make([]domain.TaskQueueItem, 0, len(items))
	for _, it := range items {
		if it.Text == "" {
			continue
		}
		valid = append(valid, it)
	}
	return valid, nil
}

func (r *queueRepository) Save(ctx context.Context, items []domain.TaskQueueItem) error {
	if items == nil {
		items = []domain.TaskQueueItem{}
	}
	if err := writeDoc(ctx, r.kv, ports.KeyQueue, items); err != nil {
		return fmt.Errorf("failed to save queue: %w", err)
	}
	return nil
}

type timerRepository struct {
	kv ports.KVStore
}

func (r *timerRepository) Load(ctx context.Context) ([]domain.MultiTimer, error) {
	var timers []domain.MultiTimer
	if _, err := readDoc(ctx, r.kv, ports.KeyTimers, &timers); err != nil {
		return nil, fmt.Errorf("failed to load timers: %w", err)
	}
	valid := make([]domain.MultiTimer, 0, len(timers))
	for _, t := range timers {
		if t.ID <= 0 || t.TotalSeconds <= 0 {
			continue
		}
		if t.TimeLeft < 0 || t.TimeLeft > t.TotalSeconds {
			t.TimeLeft = t.TotalSeconds
		}
		valid = append(valid, t)
	}
	return valid, nil
}

func (r *timerRepository) Save(ctx context.Context, timers []domain.MultiTimer) error {
	if timers == nil {
		timers = []domain.MultiTimer{}
	}
	if err := writeDoc(ctx, r.kv, ports.KeyTimers, timers); err != nil {
		return fmt.Errorf("failed to save timers: %w", err)
	}
	return nil
}

type settingsRepository struct {
	kv ports.KVStore
}

func (r *settingsRepository) Modes(ctx context.Context) (domain.ModeDurations, error) {
	d := domain.DefaultModeDurations()
	if _, err := readDoc(ctx, r.kv, ports.KeyModes, &d); err != nil {
		return domain.DefaultModeDurations(), fmt.Errorf("failed to load modes: %w", err)
	}
	return d, nil
}

func (r *settingsRepository) SaveModes(ctx context.Context, d domain.ModeDurations) error {
	return writeDoc(ctx, r.kv, ports.KeyModes, d)
}

func (r *settingsRepository) Goals(ctx context.Context) (domain.Goals, error) {
	g := domain.DefaultGoals()
	if _, err := readDoc(ctx, r.kv, ports.KeyGoals, &g); err != nil {
		return domain.DefaultGoals(), fmt.Errorf("failed to load goals: %w", err)
	}
	return g, nil
}

func (r *settingsRepository) SaveGoals(ctx context.Context, g domain.Goals) error {
	return writeDoc(ctx, r.kv, ports.KeyGoals, g)
}

func (r *settingsRepository) Flow(ctx context.Context) (domain.FlowSettings, error) {
	f := domain.DefaultFlowSettings()
	if _, err := readDoc(ctx, r.kv, ports.KeyFlow, &f); err != nil {
		return domain.DefaultFlowSettings(), fmt.Errorf("failed to load flow settings: %w", err)
	}
	return f, nil
}

func (r *settingsRepository) SaveFlow(ctx context.Context, f domain.FlowSettings) error {
	return writeDoc(ctx, r.kv, ports.KeyFlow, f)
}

func (r *settingsRepository) Theme(ctx context.Context) (domain.Theme, error) {
	var s string
	ok, err := readDoc(ctx, r.kv, ports.KeyTheme, &s)
	if err != nil {
		return domain.ThemeSystem, fmt.Errorf("failed to load theme: %w", err)
	}
	if !ok {
		return domain.ThemeSystem, nil
	}
	return domain.ParseTheme(s), nil
}

func (r *settingsRepository) SaveTheme(ctx context.Context, t domain.Theme) error {
	return writeDoc(ctx, r.kv, ports.KeyTheme, domain.ParseTheme(string(t)))
}

// Sound defaults to enabled.
func (r *settingsRepository) Sound(ctx context.Context) (bool, error) {
	enabled := true
	if _, err := readDoc(ctx, r.kv, ports.KeySound, &enabled); err != nil {
		return true, fmt.Errorf("failed to load sound flag: %w", err)
	}
	return enabled, nil
}

func (r *settingsRepository) SaveSound(ctx context.Context, enabled bool) error {
	return writeDoc(ctx, r.kv, ports.KeySound, enabled)
}

// Deadline is stored as Unix milliseconds; a missing or zero value means unset.
func (r *settingsRepository) Deadline(ctx context.Context) (*time.Time, error) {
	var ms int64
	ok, err := readDoc(ctx, r.kv, ports.KeyDeadline, &ms)
	if err != nil {
		return nil, fmt.Errorf("failed to load deadline: %w", err)
	}
	if !ok || ms <= 0 {
		return nil, nil
	}
	t := time.UnixMilli(ms)
	return &t, nil
}

func (r *settingsRepository) SaveDeadline(ctx context.Context, target *time.Time) error {
	if target == nil {
		return r.kv.Delete(ctx, ports.KeyDeadline)
	}
	return writeDoc(ctx, r.kv, ports.KeyDeadline, target.UnixMilli())
}

func (r *settingsRepository) Breath(ctx context.Context) (domain.BreathPreference, error) {
	b := domain.DefaultBreathPreference()
	if _, err := readDoc(ctx, r.kv, ports.KeyBreath, &b); err != nil {
		return domain.DefaultBreathPreference(), fmt.Errorf("failed to load breathing preference: %w", err)
	}
	if b.Pattern == "" {
		b.Pattern = domain.PatternBox
	}
	return b, nil
}

func (r *settingsRepository) SaveBreath(ctx context.Context, b domain.BreathPreference) error {
	return writeDoc(ctx, r.kv, ports.KeyBreath, b)
}
