package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/xvierd/timerdeck/internal/adapters/clock"
	"github.com/xvierd/timerdeck/internal/adapters/storage"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

// testStart is a Wednesday morning.
var testStart = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// recorder captures everything the engines push to their ports.
type recorder struct {
	mu          sync.Mutex
	views       []domain.View
	timerViews  [][]domain.MultiTimer
	notes       []string
	cues        []domain.Cue
	permissions int
	notifyErr   error
	playErr     error
}

func (r *recorder) ShowSession(v domain.View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recorder) ShowTimers(timers []domain.MultiTimer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timerViews = append(r.timerViews, timers)
}

func (r *recorder) Notify(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, body)
	return r.notifyErr
}

func (r *recorder) RequestPermission() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.permissions++
}

func (r *recorder) Play(c domain.Cue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
	return r.playErr
}

func (r *recorder) notifications() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.notes...)
}

func (r *recorder) played() []domain.Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Cue(nil), r.cues...)
}

func (r *recorder) lastView() domain.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return domain.View{}
	}
	return r.views[len(r.views)-1]
}

type harness struct {
	ctx      context.Context
	clock    *clock.Manual
	store    ports.Storage
	settings *SettingsService
	history  *HistoryService
	queue    *QueueService
	engine   *Engine
	timers   *TimerManager
	state    *StateService
	rec      *recorder
}

func newHarness(t *testing.T, configure ...func(*EngineOptions)) *harness {
	t.Helper()
	ctx := context.Background()
	h := &harness{
		ctx:   ctx,
		clock: clock.NewManual(testStart),
		store: setupTestStorage(t),
		rec:   &recorder{},
	}
	h.settings = NewSettingsService(h.store.Settings(), nil)
	h.settings.Load(ctx)
	h.history = NewHistoryService(h.store.History(), h.clock, nil, nil)
	require.NoError(t, h.history.Load(ctx))
	h.queue = NewQueueService(h.store.Queue())
	require.NoError(t, h.queue.Load(ctx))

	opts := EngineOptions{
		Clock:    h.clock,
		Settings: h.settings,
		History:  h.history,
		Queue:    h.queue,
		Display:  h.rec,
		Notifier: h.rec,
		Audio:    h.rec,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	h.engine = NewEngine(opts)
	h.timers = NewTimerManager(TimerManagerOptions{
		Clock:    h.clock,
		Repo:     h.store.Timers(),
		Settings: h.settings,
		Display:  h.rec,
		Notifier: h.rec,
		Audio:    h.rec,
	})
	h.state = NewStateService(h.engine, h.timers, h.history, h.queue, h.settings)
	t.Cleanup(func() {
		h.engine.Close()
		h.timers.Close()
	})
	return h
}

func (h *harness) session() domain.SessionState {
	s, _ := h.engine.Snapshot()
	return s
}

func (h *harness) setFlow(t *testing.T, fn func(*domain.FlowSettings)) {
	t.Helper()
	_, err := h.settings.UpdateFlow(h.ctx, fn)
	require.NoError(t, err)
}

// drain returns the events buffered on ch.
func drain(ch <-chan domain.Event) []domain.Event {
	var events []domain.Event
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}

func countEvents(events []domain.Event, t domain.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

var errBoom = errors.New("boom")
