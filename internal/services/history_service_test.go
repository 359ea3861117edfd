package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/timerdeck/internal/adapters/clock"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

type fakeGit struct {
	branch string
}

func (f fakeGit) Detect(ctx context.Context, dir string) (*ports.GitInfo, error) {
	return &ports.GitInfo{Branch: f.branch, IsClean: true}, nil
}

func (f fakeGit) IsAvailable() bool { return f.branch != "" }

func newHistoryService(t *testing.T, git ports.GitDetector) (*HistoryService, *clock.Manual, ports.Storage) {
	t.Helper()
	store := setupTestStorage(t)
	clk := clock.NewManual(testStart)
	svc := NewHistoryService(store.History(), clk, git, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc, clk, store
}

func TestHistoryService_Add(t *testing.T) {
	ctx := context.Background()
	svc, clk, store := newHistoryService(t, fakeGit{branch: "feature/timers"})

	t.Run("default label and branch", func(t *testing.T) {
		entry, err := svc.Add(ctx, AddEntryRequest{Label: "  ", Minutes: 25})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultTaskLabel, entry.Task)
		assert.Equal(t, testStart.UnixMilli(), entry.ID)
		assert.Equal(t, "feature/timers", entry.Branch)
	})

	t.Run("colliding timestamp is bumped", func(t *testing.T) {
		entry, err := svc.Add(ctx, AddEntryRequest{Label: "Second", Minutes: 5})
		require.NoError(t, err)
		assert.Equal(t, testStart.UnixMilli()+1, entry.ID)
	})

	t.Run("non-positive minutes rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, AddEntryRequest{Label: "Zero", Minutes: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})

	t.Run("newest first and persisted", func(t *testing.T) {
		clk.Advance(time.Minute)
		_, err := svc.Add(ctx, AddEntryRequest{Label: "Third", Minutes: 10, Interruptions: -2})
		require.NoError(t, err)

		entries := svc.List()
		require.Len(t, entries, 3)
		assert.Equal(t, "Third", entries[0].Task)
		assert.Zero(t, entries[0].Interruptions)

		stored, err := store.History().Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, entries, stored)
	})
}

func TestHistoryService_Edit(t *testing.T) {
	ctx := context.Background()
	svc, clk, _ := newHistoryService(t, nil)

	first, err := svc.Add(ctx, AddEntryRequest{Label: "Write", Minutes: 25})
	require.NoError(t, err)
	clk.Advance(time.Hour)
	second, err := svc.Add(ctx, AddEntryRequest{Label: "Read", Minutes: 15})
	require.NoError(t, err)
	assert.Empty(t, second.Branch)

	t.Run("label", func(t *testing.T) {
		got, err := svc.EditLabel(ctx, first.ID, "Write tests")
		require.NoError(t, err)
		assert.Equal(t, "Write tests", got.Task)

		_, err = svc.EditLabel(ctx, first.ID, " ")
		assert.ErrorIs(t, err, domain.ErrInvalidLabel)
	})

	t.Run("duration", func(t *testing.T) {
		got, err := svc.EditDuration(ctx, first.ID, 40)
		require.NoError(t, err)
		assert.Equal(t, 40, got.DurationMinutes)

		_, err = svc.EditDuration(ctx, first.ID, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
	})

	t.Run("date re-ids and re-sorts", func(t *testing.T) {
		got, err := svc.EditDate(ctx, second.ID, "2026-10-13")
		require.NoError(t, err)
		assert.Equal(t, 13, got.Time().Day())
		assert.Equal(t, 10, got.Time().Hour(), "date-only input keeps the time of day")

		entries := svc.List()
		require.Len(t, entries, 2)
		assert.Equal(t, first.ID, entries[0].ID)
		assert.Equal(t, got.ID, entries[1].ID)

		_, err = svc.EditDate(ctx, first.ID, "someday")
		assert.ErrorIs(t, err, domain.ErrUnparseableDate)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, first.ID))
		assert.ErrorIs(t, svc.Delete(ctx, first.ID), domain.ErrEntryNotFound)
		_, err := svc.Get(first.ID)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
		assert.Len(t, svc.List(), 1)
	})
}

func TestHistoryService_Stats(t *testing.T) {
	ctx := context.Background()
	svc, clk, _ := newHistoryService(t, nil)

	// Last week, Monday of this week, and today.
	clk.Set(testStart.AddDate(0, 0, -7))
	_, err := svc.Add(ctx, AddEntryRequest{Minutes: 60})
	require.NoError(t, err)
	clk.Set(domain.StartOfWeek(testStart).Add(time.Hour))
	_, err = svc.Add(ctx, AddEntryRequest{Minutes: 30})
	require.NoError(t, err)
	clk.Set(testStart)
	_, err = svc.Add(ctx, AddEntryRequest{Minutes: 120})
	require.NoError(t, err)

	st := svc.Stats()
	assert.Equal(t, 120, st.TodayMinutes)
	assert.Equal(t, 1, st.TodayCount)
	assert.Equal(t, 150, st.WeekMinutes)
	assert.Equal(t, 2, st.WeekCount)
	assert.Equal(t, 210, st.TotalMinutes)
	assert.Equal(t, 3, st.TotalCount)

	daily, weekly := svc.Progress(domain.Goals{DailyHours: 4, WeeklyHours: 20})
	assert.Equal(t, 50, daily)
	assert.Equal(t, 13, weekly)
}
