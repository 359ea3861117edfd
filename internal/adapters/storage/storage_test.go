package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

func newTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	st, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func kvBackends(t *testing.T) map[string]ports.KVStore {
	t.Helper()
	sqliteKV, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	diskKV, err := OpenDiskv(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqliteKV.Close()
		_ = diskKV.Close()
	})
	return map[string]ports.KVStore{"sqlite": sqliteKV, "diskv": diskKV}
}

func TestKVStore_Backends(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "missing")
			assert.ErrorIs(t, err, ports.ErrNotFound)

			require.NoError(t, kv.Set(ctx, "history", []byte(`[]`)))
			require.NoError(t, kv.Set(ctx, "history", []byte(`[1]`)))
			require.NoError(t, kv.Set(ctx, "goals", []byte(`{}`)))

			got, err := kv.Get(ctx, "history")
			require.NoError(t, err)
			assert.Equal(t, `[1]`, string(got))

			keys, err := kv.Keys(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"goals", "history"}, keys)

			require.NoError(t, kv.Delete(ctx, "goals"))
			require.NoError(t, kv.Delete(ctx, "goals"))
			_, err = kv.Get(ctx, "goals")
			assert.ErrorIs(t, err, ports.ErrNotFound)
		})
	}
}

func TestSettings_DefaultsAndCorruption(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	st := NewDocuments(kv)
	defer st.Close()

	modes, err := st.Settings().Modes(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultModeDurations(), modes)

	require.NoError(t, kv.Set(ctx, ports.KeyModes, []byte(`{"focus":"abc","short":10,"long":-3}`)))
	modes, err = st.Settings().Modes(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDurations{Focus: 25, Short: 10, Long: 15}, modes)

	require.NoError(t, kv.Set(ctx, ports.KeyModes, []byte(`not json`)))
	modes, err = st.Settings().Modes(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultModeDurations(), modes)

	sound, err := st.Settings().Sound(ctx)
	require.NoError(t, err)
	assert.True(t, sound)

	theme, err := st.Settings().Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeSystem, theme)

	deadline, err := st.Settings().Deadline(ctx)
	require.NoError(t, err)
	assert.Nil(t, deadline)
}

func TestHistory_LoadSanitizes(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	st := NewDocuments(kv)
	defer st.Close()

	require.NoError(t, kv.Set(ctx, ports.KeyHistory, []byte(`[
		{"id": 100, "task": "a", "duration": 5},
		{"id": 300, "task": "", "duration": "10"},
		{"id": 200, "task": "c", "duration": 0}
	]`)))

	entries, err := st.History().Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(300), entries[0].ID)
	assert.Equal(t, domain.DefaultTaskLabel, entries[0].Task)
	assert.Equal(t, int64(100), entries[1].ID)
}

func TestDeadline_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	target := time.UnixMilli(1_800_000_000_000)
	require.NoError(t, st.Settings().SaveDeadline(ctx, &target))

	got, err := st.Settings().Deadline(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(target))

	require.NoError(t, st.Settings().SaveDeadline(ctx, nil))
	got, err = st.Settings().Deadline(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func sampleBundle() *domain.Bundle {
	deadline := time.UnixMilli(1_800_000_000_000)
	return &domain.Bundle{
		Modes: domain.ModeDurations{Focus: 50, Short: 10, Long: 30},
		History: []domain.HistoryEntry{
			{ID: 1_760_000_100_000, Task: "Write", DurationMinutes: 25, Interruptions: 2, PausedSeconds: 40, Mode: domain.ModeFocus, Branch: "main"},
			{ID: 1_760_000_000_000, Task: "Read", DurationMinutes: 15},
		},
		Goals:    domain.Goals{DailyHours: 3.5, WeeklyHours: 15},
		Flow:     domain.FlowSettings{AutoStartBreaks: true, LongBreakInterval: 3, FocusCount: 2, FlowtimeRatio: 4},
		Theme:    domain.ThemeDark,
		Sound:    false,
		Queue:    []domain.TaskQueueItem{{ID: "a", Text: "First"}, {ID: "b", Text: "Second"}},
		Timers:   []domain.MultiTimer{{ID: 1_760_000_000_500, Name: "Tea", TotalSeconds: 180, TimeLeft: 90}},
		Deadline: &deadline,
		Breath:   domain.BreathPreference{Pattern: domain.PatternCustom, Custom: domain.CustomBreath{Inhale: 4, Exhale: 6}},
	}
}

func assertBundlesEqual(t *testing.T, want, got *domain.Bundle) {
	t.Helper()
	require.NotNil(t, got.Deadline)
	assert.True(t, want.Deadline.Equal(*got.Deadline))

	w, g := *want, *got
	w.Deadline, g.Deadline = nil, nil
	assert.Equal(t, w, g)
}

func TestBundle_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			want := sampleBundle()
			data, err := EncodeBundle(want, format)
			require.NoError(t, err)

			got, err := DecodeBundle(data, format)
			require.NoError(t, err)
			assertBundlesEqual(t, want, got)
		})
	}
}

func TestBundle_ImportExport(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	want := sampleBundle()
	require.NoError(t, Import(ctx, st, want))

	got, err := Export(ctx, st)
	require.NoError(t, err)
	assertBundlesEqual(t, want, got)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat(".json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
