package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/timerdeck/internal/domain"
)

func TestEngine_NewEngineStartsInFocus(t *testing.T) {
	h := newHarness(t)

	s := h.session()
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.Equal(t, domain.CategoryFocus, s.Category)
	assert.Equal(t, 25*60, s.SessionDuration)
	assert.Equal(t, 25*60, s.TimeLeft)
	assert.False(t, s.Running)
}

func TestEngine_ResetRestoresFullDuration(t *testing.T) {
	h := newHarness(t)
	target := testStart.Add(2 * time.Hour)
	require.NoError(t, h.settings.SetDeadline(h.ctx, &target))

	for _, mode := range domain.AllModes() {
		t.Run(string(mode), func(t *testing.T) {
			require.NoError(t, h.engine.SwitchMode(h.ctx, mode))
			require.NoError(t, h.engine.Start(h.ctx))
			h.clock.Tick(3)
			require.NoError(t, h.engine.Reset(h.ctx))

			s := h.session()
			assert.Equal(t, s.SessionDuration, s.TimeLeft)
			assert.False(t, s.Running)
			assert.Zero(t, s.ElapsedFlowtime)
			assert.Zero(t, s.Interruptions)
		})
	}
}

func TestEngine_CountdownRunsDownAndStops(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeCountdown))
	require.NoError(t, h.engine.SetDuration(h.ctx, "0:05"))
	require.NoError(t, h.engine.Start(h.ctx))

	prev := h.session().TimeLeft
	for i := 1; i <= 8; i++ {
		h.clock.Tick(1)
		s := h.session()
		assert.LessOrEqual(t, s.TimeLeft, prev, "tick %d", i)
		assert.GreaterOrEqual(t, s.TimeLeft, 0)
		if i < 5 {
			assert.True(t, s.Running, "tick %d", i)
		} else {
			assert.False(t, s.Running, "tick %d", i)
			assert.Zero(t, s.TimeLeft)
		}
		prev = s.TimeLeft
	}

	assert.Equal(t, domain.ModeCountdown, h.session().Mode)
	assert.Contains(t, h.rec.played(), domain.CueAlarm)
	assert.Contains(t, h.rec.notifications(), "Your countdown has finished.")
}

func TestEngine_FocusCompletionScenario(t *testing.T) {
	h := newHarness(t)
	h.setFlow(t, func(f *domain.FlowSettings) { f.FocusCount = 3 })

	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(25 * 60)

	s := h.session()
	assert.Equal(t, domain.ModeLong, s.Mode)
	assert.Equal(t, 15*60, s.TimeLeft)
	assert.False(t, s.Running)
	assert.Equal(t, 0, h.settings.Flow().FocusCount)

	entries := h.history.List()
	require.Len(t, entries, 1)
	assert.Equal(t, 25, entries[0].DurationMinutes)
	assert.Equal(t, domain.DefaultTaskLabel, entries[0].Task)
	assert.Equal(t, domain.ModeFocus, entries[0].Mode)
	assert.Contains(t, h.rec.notifications(), "Focus complete! Take a break.")
}

func TestEngine_FocusCycleAutoStart(t *testing.T) {
	h := newHarness(t)
	h.setFlow(t, func(f *domain.FlowSettings) { f.AutoStartBreaks = true })

	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(25 * 60)

	s := h.session()
	assert.Equal(t, domain.ModeShort, s.Mode)
	assert.True(t, s.Running, "break should auto-start")
	assert.Equal(t, 1, h.settings.Flow().FocusCount)

	h.clock.Tick(5 * 60)
	s = h.session()
	assert.Equal(t, domain.ModeFocus, s.Mode)
	assert.False(t, s.Running, "work should wait for a manual start")
	assert.Equal(t, 1, h.settings.Flow().FocusCount)
	assert.Contains(t, h.rec.notifications(), "Break over! Back to work.")
}

func TestEngine_FocusCompletionUsesActiveTask(t *testing.T) {
	h := newHarness(t)
	_, err := h.queue.Enqueue(h.ctx, "Deep work")
	require.NoError(t, err)
	require.NoError(t, h.engine.SetDuration(h.ctx, "1"))

	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(60)

	entries := h.history.List()
	require.Len(t, entries, 1)
	assert.Equal(t, "Deep work", entries[0].Task)
	assert.Equal(t, 1, entries[0].DurationMinutes)
	assert.Len(t, h.queue.List(), 1, "completing focus keeps the task queued")
}

func TestEngine_BreathingBoxCycle(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeBreath))
	require.NoError(t, h.engine.Start(h.ctx))

	h.clock.Tick(4)
	assert.Equal(t, 1, h.session().Breath.PhaseIndex)
	_, view := h.engine.Snapshot()
	assert.Equal(t, "Hold", view.Phase)
	assert.Equal(t, 100.0, view.BreathLevel)

	h.clock.Tick(12)
	s := h.session()
	assert.Equal(t, 0, s.Breath.PhaseIndex)
	assert.Equal(t, 0, s.Breath.PhaseTick)
	assert.Equal(t, 240-16, s.TimeLeft)
	assert.Contains(t, h.rec.played(), domain.CuePhase)
}

func TestEngine_BreathingCompletionGraceDelay(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeBreath))
	require.NoError(t, h.engine.Start(h.ctx))

	h.clock.Tick(240)
	s := h.session()
	assert.Equal(t, domain.ModeBreath, s.Mode)
	assert.False(t, s.Running)
	assert.Equal(t, domain.MessageBreatheNormally, s.Message)

	h.clock.Tick(2)
	assert.Equal(t, domain.ModeBreath, h.session().Mode)

	h.clock.Tick(1)
	assert.Equal(t, domain.ModeFocus, h.session().Mode)
}

func TestEngine_ResetCancelsGraceDelay(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeBreath))
	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(240)

	require.NoError(t, h.engine.Reset(h.ctx))
	h.clock.Tick(5)
	assert.Equal(t, domain.ModeBreath, h.session().Mode)
}

func TestEngine_BreathPatternSelection(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeBreath))

	require.NoError(t, h.engine.SelectBreathPattern(h.ctx, domain.PatternRelax))
	assert.Equal(t, 4*60, h.session().SessionDuration)
	assert.Equal(t, domain.PatternRelax, h.settings.Breath().Pattern)

	err := h.engine.SelectBreathPattern(h.ctx, "square")
	assert.ErrorIs(t, err, domain.ErrUnknownPattern)
	assert.Equal(t, domain.PatternRelax, h.settings.Breath().Pattern)

	custom := domain.CustomBreath{Inhale: 3, Exhale: 3, TotalMinutes: 1}
	require.NoError(t, h.engine.SetCustomBreath(h.ctx, custom))
	assert.Equal(t, 60, h.session().SessionDuration)

	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(3)
	assert.Equal(t, 1, h.session().Breath.PhaseIndex)
	h.clock.Tick(3)
	assert.Equal(t, 0, h.session().Breath.PhaseIndex)
}

func TestEngine_IntervalCompletesOnce(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SetInterval(h.ctx, 3, 2, 2))
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeInterval))
	events, cancel := h.engine.Subscribe(256)
	defer cancel()

	require.NoError(t, h.engine.Start(h.ctx))

	steps := []struct {
		ticks int
		rest  bool
		cycle int
		left  int
	}{
		{3, true, 1, 2},
		{2, false, 2, 3},
		{3, true, 2, 2},
	}
	for _, step := range steps {
		h.clock.Tick(step.ticks)
		s := h.session()
		assert.Equal(t, step.rest, s.Interval.Rest)
		assert.Equal(t, step.cycle, s.Interval.CurrentCycle)
		assert.Equal(t, step.left, s.TimeLeft)
		assert.True(t, s.Running)
	}
	assert.Zero(t, countEvents(drain(events), domain.EventCompleted), "completed too early")

	h.clock.Tick(2)
	s := h.session()
	assert.False(t, s.Running)
	assert.Equal(t, domain.MessageWorkoutDone, s.Message)
	assert.Equal(t, 2, s.Interval.CurrentCycle)

	h.clock.Tick(5)
	after := drain(events)
	assert.Equal(t, 1, countEvents(after, domain.EventCompleted))
	assert.Equal(t, domain.ModeFocus, h.session().Mode)
}

func TestEngine_FlowtimeStopStartsProportionalBreak(t *testing.T) {
	h := newHarness(t)

	t.Run("ratio break", func(t *testing.T) {
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeFlowtime))
		require.NoError(t, h.engine.Start(h.ctx))
		h.clock.Tick(600)
		assert.Equal(t, 600, h.session().ElapsedFlowtime)
		assert.Equal(t, "10:00", h.rec.lastView().Remaining)

		require.NoError(t, h.engine.Start(h.ctx))
		s := h.session()
		assert.Equal(t, domain.ModeShort, s.Mode)
		assert.Equal(t, 120, s.SessionDuration)
		assert.Equal(t, 120, s.TimeLeft)
		assert.Equal(t, 0, h.settings.Flow().FocusCount)

		entries := h.history.List()
		require.Len(t, entries, 1)
		assert.Equal(t, 10, entries[0].DurationMinutes)
		assert.Equal(t, domain.ModeFlowtime, entries[0].Mode)
	})

	t.Run("minimum break", func(t *testing.T) {
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeFlowtime))
		require.NoError(t, h.engine.Start(h.ctx))
		h.clock.Tick(100)
		require.NoError(t, h.engine.Start(h.ctx))

		s := h.session()
		assert.Equal(t, domain.ModeShort, s.Mode)
		assert.Equal(t, 60, s.TimeLeft)
		assert.Equal(t, 2, h.history.List()[0].DurationMinutes)
	})

	t.Run("pause keeps flowtime", func(t *testing.T) {
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeFlowtime))
		require.NoError(t, h.engine.Start(h.ctx))
		h.clock.Tick(10)
		require.NoError(t, h.engine.Pause(h.ctx))

		s := h.session()
		assert.Equal(t, domain.ModeFlowtime, s.Mode)
		assert.Equal(t, 10, s.ElapsedFlowtime)
		assert.Equal(t, 1, s.Interruptions)
	})
}

func TestEngine_PauseTracksInterruptions(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(10)
	require.NoError(t, h.engine.Pause(h.ctx))

	s := h.session()
	assert.False(t, s.Running)
	assert.Equal(t, 1, s.Interruptions)
	require.NotNil(t, s.PauseStartedAt)

	h.clock.Advance(30 * time.Second)
	assert.Equal(t, 1500-10, h.session().TimeLeft, "paused sessions do not tick")

	require.NoError(t, h.engine.Start(h.ctx))
	s = h.session()
	assert.Equal(t, 30, s.PausedSeconds)
	assert.Nil(t, s.PauseStartedAt)

	h.clock.Tick(5)
	assert.Equal(t, 1500-15, h.session().TimeLeft)

	t.Run("pause while stopped is a no-op", func(t *testing.T) {
		require.NoError(t, h.engine.Pause(h.ctx))
		require.NoError(t, h.engine.Pause(h.ctx))
		assert.Equal(t, 2, h.session().Interruptions)
	})

	t.Run("pausing a tool does not count", func(t *testing.T) {
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeStopwatch))
		require.NoError(t, h.engine.Start(h.ctx))
		h.clock.Tick(3)
		require.NoError(t, h.engine.Pause(h.ctx))
		s := h.session()
		assert.Equal(t, 3, s.TimeLeft)
		assert.Zero(t, s.Interruptions)
		assert.Nil(t, s.PauseStartedAt)
	})
}

func TestEngine_SetDuration(t *testing.T) {
	tests := []struct {
		name    string
		mode    domain.Mode
		running bool
		input   string
		wantErr error
		want    int
	}{
		{"minutes only", domain.ModeFocus, false, "10", nil, 600},
		{"minutes and seconds", domain.ModeCountdown, false, "01:30", nil, 90},
		{"running", domain.ModeFocus, true, "10", domain.ErrTimerRunning, 0},
		{"not editable", domain.ModeFlowtime, false, "10", domain.ErrNotEditable, 0},
		{"interval not editable", domain.ModeInterval, false, "10", domain.ErrNotEditable, 0},
		{"malformed", domain.ModeGrill, false, "abc", domain.ErrInvalidDuration, 0},
		{"zero", domain.ModeGrill, false, "00:00", domain.ErrInvalidDuration, 0},
		{"seconds out of range", domain.ModeGrill, false, "1:60", domain.ErrInvalidDuration, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.engine.SwitchMode(h.ctx, tt.mode))
			if tt.running {
				require.NoError(t, h.engine.Start(h.ctx))
			}
			before := h.session()

			err := h.engine.SetDuration(h.ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, h.session(), "failed edits leave state unchanged")
				return
			}
			require.NoError(t, err)
			s := h.session()
			assert.Equal(t, tt.want, s.SessionDuration)
			assert.Equal(t, tt.want, s.TimeLeft)

			require.NoError(t, h.engine.Reset(h.ctx))
			assert.Equal(t, before.SessionDuration, h.session().TimeLeft, "reset restores the configured length")
		})
	}
}

func TestEngine_SetDurationKeepsSessionCounters(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(10)
	require.NoError(t, h.engine.Pause(h.ctx))
	h.clock.Tick(5)

	require.NoError(t, h.engine.SetDuration(h.ctx, "20"))

	s := h.session()
	assert.Equal(t, 1200, s.SessionDuration)
	assert.Equal(t, 1200, s.TimeLeft)
	assert.Equal(t, 1, s.Interruptions)
	assert.NotNil(t, s.PauseStartedAt, "open pause is still tracked")

	require.NoError(t, h.engine.Start(h.ctx))
	s = h.session()
	assert.Equal(t, 1, s.Interruptions)
	assert.Equal(t, 5, s.PausedSeconds)
}

func TestEngine_SetDurationDoesNotOutliveSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SetDuration(h.ctx, "10"))
	require.Equal(t, 600, h.session().TimeLeft)

	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeShort))
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeFocus))
	assert.Equal(t, 1500, h.session().TimeLeft, "switching back loads the configured length")

	require.NoError(t, h.engine.SetDuration(h.ctx, "10"))
	require.NoError(t, h.engine.Reset(h.ctx))
	assert.Equal(t, 1500, h.session().TimeLeft)
}

func TestEngine_Deadline(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeDeadline))

	err := h.engine.Start(h.ctx)
	assert.ErrorIs(t, err, domain.ErrDeadlineNotSet)
	assert.False(t, h.session().Running)

	past := testStart.Add(-time.Minute)
	require.NoError(t, h.settings.SetDeadline(h.ctx, &past))
	err = h.engine.Start(h.ctx)
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
	assert.False(t, h.session().Running)

	target := testStart.Add(10 * time.Second)
	require.NoError(t, h.settings.SetDeadline(h.ctx, &target))
	require.NoError(t, h.engine.Reset(h.ctx))
	assert.Equal(t, 10, h.session().SessionDuration)

	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(9)
	s := h.session()
	assert.Equal(t, 1, s.TimeLeft)
	assert.True(t, s.Running)

	h.clock.Tick(1)
	s = h.session()
	assert.Zero(t, s.TimeLeft)
	assert.False(t, s.Running)
	assert.Contains(t, h.rec.notifications(), "The deadline has arrived.")
}

func TestEngine_GrillFlipReminder(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeGrill))
	require.NoError(t, h.engine.SetDuration(h.ctx, "0:10"))
	require.NoError(t, h.engine.Start(h.ctx))

	h.clock.Tick(4)
	assert.Empty(t, h.session().Message)

	h.clock.Tick(1)
	assert.Equal(t, domain.MessageFlip, h.session().Message)
	assert.Contains(t, h.rec.played(), domain.CueFlip)

	h.clock.Tick(5)
	assert.False(t, h.session().Running)
	assert.Equal(t, 1, countCue(h.rec.played(), domain.CueFlip))
}

func TestEngine_GroundingPrompts(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeGrounding))
	require.NoError(t, h.engine.Start(h.ctx))
	assert.Equal(t, "Name 5 things you can see", h.session().Message)

	h.clock.Tick(60)
	assert.Equal(t, "Name 4 things you can touch", h.session().Message)

	h.clock.Tick(4 * 60)
	s := h.session()
	assert.False(t, s.Running)
	assert.Equal(t, domain.ModeGrounding, s.Mode)
}

func TestEngine_CompleteActiveTask(t *testing.T) {
	h := newHarness(t)

	_, err := h.engine.CompleteActiveTask(h.ctx)
	assert.ErrorIs(t, err, domain.ErrQueueEmpty)

	_, err = h.queue.Enqueue(h.ctx, "Write docs")
	require.NoError(t, err)
	_, err = h.queue.Enqueue(h.ctx, "Review")
	require.NoError(t, err)

	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(61)

	entry, err := h.engine.CompleteActiveTask(h.ctx)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Write docs", entry.Task)
	assert.Equal(t, 2, entry.DurationMinutes)

	head, ok := h.queue.Active()
	require.True(t, ok)
	assert.Equal(t, "Review", head.Text)

	s := h.session()
	assert.Equal(t, domain.ModeShort, s.Mode)
	assert.False(t, s.Running)
	assert.Equal(t, 1, h.settings.Flow().FocusCount)
	assert.Contains(t, h.rec.notifications(), `You finished "Write docs". Enjoy your break!`)

	t.Run("outside focus work nothing is logged", func(t *testing.T) {
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeStopwatch))
		entry, err := h.engine.CompleteActiveTask(h.ctx)
		require.NoError(t, err)
		assert.Nil(t, entry)
		assert.Empty(t, h.queue.List())
		assert.Equal(t, domain.ModeStopwatch, h.session().Mode)
		assert.Len(t, h.history.List(), 1)
	})
}

func TestEngine_SideEffectFailures(t *testing.T) {
	t.Run("audio failure is swallowed", func(t *testing.T) {
		h := newHarness(t)
		h.rec.playErr = errBoom
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeCountdown))
		require.NoError(t, h.engine.SetDuration(h.ctx, "0:02"))
		require.NoError(t, h.engine.Start(h.ctx))
		h.clock.Tick(2)

		s := h.session()
		assert.False(t, s.Running)
		assert.Zero(t, s.TimeLeft)
		assert.Contains(t, h.rec.played(), domain.CueAlarm)
	})

	t.Run("notification failure disables notifications", func(t *testing.T) {
		h := newHarness(t)
		h.rec.notifyErr = errBoom
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeCountdown))
		for i := 0; i < 2; i++ {
			require.NoError(t, h.engine.SetDuration(h.ctx, "0:01"))
			require.NoError(t, h.engine.Start(h.ctx))
			h.clock.Tick(1)
			assert.False(t, h.session().Running)
		}
		assert.Len(t, h.rec.notifications(), 1)
	})

	t.Run("sound disabled", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.settings.SetSound(h.ctx, false))
		require.NoError(t, h.engine.SwitchMode(h.ctx, domain.ModeMicrobreak))
		require.NoError(t, h.engine.Start(h.ctx))
		h.clock.Tick(20)

		assert.False(t, h.session().Running)
		assert.Empty(t, h.rec.played())
	})
}

func TestEngine_StaleTickIsDropped(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.Start(h.ctx))

	h.engine.mu.Lock()
	stale := h.engine.gen
	h.engine.mu.Unlock()

	require.NoError(t, h.engine.Pause(h.ctx))
	require.NoError(t, h.engine.Start(h.ctx))
	before := h.session().TimeLeft

	h.engine.onTick(stale, h.clock.Now())
	assert.Equal(t, before, h.session().TimeLeft)

	h.clock.Tick(1)
	assert.Equal(t, before-1, h.session().TimeLeft)
}

func TestEngine_DisplayAndEvents(t *testing.T) {
	h := newHarness(t)
	events, cancel := h.engine.Subscribe(16)

	require.NoError(t, h.engine.Start(h.ctx))
	view := h.rec.lastView()
	assert.True(t, view.Running)
	assert.Equal(t, "25:00", view.Remaining)
	assert.Equal(t, "Focus", view.Label)
	assert.Equal(t, 1, h.rec.permissions)

	h.clock.Tick(2)
	assert.Equal(t, "24:58", h.rec.lastView().Remaining)

	got := drain(events)
	assert.Equal(t, 1, countEvents(got, domain.EventStarted))
	assert.Equal(t, 2, countEvents(got, domain.EventTick))

	cancel()
	_, ok := <-events
	assert.False(t, ok, "cancel closes the channel")
	cancel()
}

func TestEngine_SwitchModeUnknown(t *testing.T) {
	h := newHarness(t)
	err := h.engine.SwitchMode(h.ctx, domain.Mode("nap"))
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
	assert.Equal(t, domain.ModeFocus, h.session().Mode)
}

func TestEngine_AddHistory(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(5)
	require.NoError(t, h.engine.Pause(h.ctx))
	h.clock.Advance(20 * time.Second)

	entry, err := h.engine.AddHistory(h.ctx, "", 30, domain.HistoryCounters{})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTaskLabel, entry.Task)
	assert.Equal(t, 1, entry.Interruptions)
	assert.Equal(t, 20, entry.PausedSeconds)

	_, err = h.engine.AddHistory(h.ctx, "Nothing", 0, domain.HistoryCounters{})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestEngine_AddHistoryExplicitCounters(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.engine.Start(h.ctx))
	h.clock.Tick(5)
	require.NoError(t, h.engine.Pause(h.ctx))
	h.clock.Advance(20 * time.Second)

	zero, paused := 0, 300
	entry, err := h.engine.AddHistory(h.ctx, "Imported", 45, domain.HistoryCounters{Interruptions: &zero, PausedSeconds: &paused})
	require.NoError(t, err)
	assert.Zero(t, entry.Interruptions, "explicit zero wins over the session")
	assert.Equal(t, 300, entry.PausedSeconds)

	three := 3
	entry, err = h.engine.AddHistory(h.ctx, "Partial", 10, domain.HistoryCounters{Interruptions: &three})
	require.NoError(t, err)
	assert.Equal(t, 3, entry.Interruptions)
	assert.Equal(t, 20, entry.PausedSeconds, "unset field falls back to the session")
}

func countCue(cues []domain.Cue, c domain.Cue) int {
	n := 0
	for _, got := range cues {
		if got == c {
			n++
		}
	}
	return n
}
