package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/timerdeck/internal/adapters/clock"
	"github.com/xvierd/timerdeck/internal/adapters/storage"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
	"github.com/xvierd/timerdeck/internal/services"
)

var start = time.Date(2026, time.March, 4, 9, 0, 0, 0, time.Local)

// app wires every service the way the CLI does, minus desktop adapters.
type app struct {
	ctx      context.Context
	clock    *clock.Manual
	store    ports.Storage
	settings *services.SettingsService
	history  *services.HistoryService
	queue    *services.QueueService
	timers   *services.TimerManager
	engine   *services.Engine
	state    *services.StateService
}

func openApp(t *testing.T, store ports.Storage, c *clock.Manual) *app {
	t.Helper()
	ctx := context.Background()
	a := &app{ctx: ctx, clock: c, store: store}

	a.settings = services.NewSettingsService(store.Settings(), nil)
	a.settings.Load(ctx)
	a.history = services.NewHistoryService(store.History(), c, nil, nil)
	require.NoError(t, a.history.Load(ctx))
	a.queue = services.NewQueueService(store.Queue())
	require.NoError(t, a.queue.Load(ctx))
	a.timers = services.NewTimerManager(services.TimerManagerOptions{Clock: c, Repo: store.Timers(), Settings: a.settings})
	require.NoError(t, a.timers.Load(ctx))
	a.engine = services.NewEngine(services.EngineOptions{
		Clock:    c,
		Settings: a.settings,
		History:  a.history,
		Queue:    a.queue,
		Fixed:    domain.DefaultFixedDurations(),
	})
	a.state = services.NewStateService(a.engine, a.timers, a.history, a.queue, a.settings)
	return a
}

func (a *app) close() {
	a.engine.Close()
	a.timers.Close()
}

func openSQLite(t *testing.T, dir string) ports.Storage {
	t.Helper()
	store, err := storage.New(filepath.Join(dir, "timerdeck.db"))
	require.NoError(t, err)
	return store
}

func TestFocusSessionSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	c := clock.NewManual(start)

	store := openSQLite(t, dir)
	a := openApp(t, store, c)

	_, err := a.queue.Enqueue(a.ctx, "Write docs")
	require.NoError(t, err)
	_, err = a.timers.Create(a.ctx, "Laundry", 45*60, true)
	require.NoError(t, err)

	events, cancel := a.engine.Subscribe(2048)
	defer cancel()

	require.NoError(t, a.engine.Start(a.ctx))
	c.Tick(25 * 60)

	s, _ := a.engine.Snapshot()
	assert.Equal(t, domain.ModeShort, s.Mode)
	assert.Equal(t, 1, a.settings.Flow().FocusCount)

	completed := false
	for done := false; !done; {
		select {
		case ev := <-events:
			if ev.Type == domain.EventCompleted {
				completed = true
			}
		default:
			done = true
		}
	}
	assert.True(t, completed, "completion event published")

	entries := a.history.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "Write docs", entries[0].Task)
	assert.Equal(t, 25, entries[0].DurationMinutes)
	assert.Equal(t, domain.ModeFocus, entries[0].Mode)

	a.close()
	require.NoError(t, store.Close())

	store = openSQLite(t, dir)
	t.Cleanup(func() { _ = store.Close() })
	b := openApp(t, store, c)
	t.Cleanup(b.close)

	assert.Len(t, b.history.List(), 1)
	assert.Equal(t, 1, b.settings.Flow().FocusCount)
	head, ok := b.queue.Active()
	require.True(t, ok)
	assert.Equal(t, "Write docs", head.Text)

	timers := b.timers.List()
	require.Len(t, timers, 1)
	assert.False(t, timers[0].Running, "running timers come back paused")
	assert.LessOrEqual(t, timers[0].TimeLeft, 45*60)

	state, err := b.state.GetCurrentState(b.ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, state.Stats.TodayMinutes)
}

func TestCompleteActiveTaskPopsQueue(t *testing.T) {
	store, err := storage.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	a := openApp(t, store, clock.NewManual(start))
	t.Cleanup(a.close)

	_, err = a.queue.Enqueue(a.ctx, "Fix bug")
	require.NoError(t, err)
	_, err = a.queue.Enqueue(a.ctx, "Review PR")
	require.NoError(t, err)

	require.NoError(t, a.engine.Start(a.ctx))
	a.clock.Tick(10*60 + 5)

	entry, err := a.engine.CompleteActiveTask(a.ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Fix bug", entry.Task)
	assert.Equal(t, 11, entry.DurationMinutes)

	head, ok := a.queue.Active()
	require.True(t, ok)
	assert.Equal(t, "Review PR", head.Text)
}

func TestExportImportAcrossBackends(t *testing.T) {
	dir := t.TempDir()
	c := clock.NewManual(start)

	src := openSQLite(t, dir)
	t.Cleanup(func() { _ = src.Close() })
	a := openApp(t, src, c)
	t.Cleanup(a.close)

	_, err := a.engine.AddHistory(a.ctx, "Planning", 40, domain.HistoryCounters{})
	require.NoError(t, err)
	_, err = a.queue.Enqueue(a.ctx, "Ship release")
	require.NoError(t, err)
	require.NoError(t, a.settings.SetGoals(a.ctx, domain.Goals{DailyHours: 3, WeeklyHours: 15}))

	bundle, err := storage.Export(a.ctx, src)
	require.NoError(t, err)

	for _, format := range []storage.Format{storage.FormatJSON, storage.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := storage.EncodeBundle(bundle, format)
			require.NoError(t, err)
			decoded, err := storage.DecodeBundle(data, format)
			require.NoError(t, err)

			dst, err := storage.NewDiskv(filepath.Join(t.TempDir(), "store"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = dst.Close() })
			require.NoError(t, storage.Import(a.ctx, dst, decoded))

			b := openApp(t, dst, c)
			t.Cleanup(b.close)
			require.Len(t, b.history.List(), 1)
			assert.Equal(t, "Planning", b.history.List()[0].Task)
			assert.Equal(t, 40, b.history.List()[0].DurationMinutes)
			assert.Equal(t, domain.Goals{DailyHours: 3, WeeklyHours: 15}, b.settings.Goals())
			assert.Len(t, b.queue.List(), 1)
		})
	}
}
