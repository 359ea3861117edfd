package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
	"github.com/xvierd/timerdeck/internal/ports"
)

var errHistoryDisabled = errors.New("history is not configured")

// Engine defaults.
const (
	DefaultGraceDelay       = 3 * time.Second
	DefaultFlowtimeMinBreak = time.Minute
)

// EngineOptions wires an Engine to its collaborators. Display, Notifier,
// Audio, History and Queue may be nil.
type EngineOptions struct {
	Clock      ports.Clock
	Settings   *SettingsService
	History    *HistoryService
	Queue      *QueueService
	Display    ports.Display
	Notifier   ports.Notifier
	Audio      ports.AudioCue
	Logger     *slog.Logger
	Fixed      domain.FixedDurations
	Interval   domain.IntervalSession
	GraceDelay time.Duration
	// FlowtimeMinBreak is the shortest break offered after flowtime.
	FlowtimeMinBreak time.Duration
}

// Engine is the session state machine. All state lives behind mu; ticks
// arrive from a single driver and are applied atomically.
type Engine struct {
	mu       sync.Mutex
	clock    ports.Clock
	driver   ports.Driver
	gen      uint64
	registry domain.Registry
	state    domain.SessionState
	breath   *BreathingEngine
	interval *IntervalEngine

	flipped bool

	graceDelay time.Duration
	graceStop  func() bool
	graceSeq   uint64
	minBreak   time.Duration

	settings *SettingsService
	history  *HistoryService
	queue    *QueueService
	display  ports.Display
	notifier ports.Notifier
	audio    ports.AudioCue
	logger   *slog.Logger

	notifyOff atomic.Bool
	events    *broadcaster
}

// NewEngine creates an engine in focus mode, reset and paused.
func NewEngine(opts EngineOptions) *Engine {
	if opts.GraceDelay <= 0 {
		opts.GraceDelay = DefaultGraceDelay
	}
	if opts.FlowtimeMinBreak <= 0 {
		opts.FlowtimeMinBreak = DefaultFlowtimeMinBreak
	}
	if opts.Interval.WorkSeconds == 0 && opts.Interval.RestSeconds == 0 && opts.Interval.TotalCycles == 0 {
		opts.Interval = domain.DefaultInterval()
	}

	e := &Engine{
		clock:      opts.Clock,
		driver:     opts.Clock.NewDriver(time.Second),
		registry:   domain.NewRegistry(opts.Fixed),
		interval:   NewIntervalEngine(opts.Interval),
		graceDelay: opts.GraceDelay,
		minBreak:   opts.FlowtimeMinBreak,
		settings:   opts.Settings,
		history:    opts.History,
		queue:      opts.Queue,
		display:    opts.Display,
		notifier:   opts.Notifier,
		audio:      opts.Audio,
		logger:     orDiscard(opts.Logger),
		events:     newBroadcaster(),
	}
	e.breath = NewBreathingEngine(e.breathSession())
	e.state.Mode = domain.ModeFocus
	e.resetLocked(&effects{})
	return e
}

// effects collects the side effects of one locked operation. They are
// flushed after the lock is released.
type effects struct {
	cues       []domain.Cue
	notes      [][2]string
	events     []domain.EventType
	permission bool
	quiet      bool
}

func (fx *effects) cue(c domain.Cue)          { fx.cues = append(fx.cues, c) }
func (fx *effects) notify(title, body string) { fx.notes = append(fx.notes, [2]string{title, body}) }
func (fx *effects) event(t domain.EventType)  { fx.events = append(fx.events, t) }

// run applies fn under the lock and flushes its effects afterwards. A
// failed operation leaves no effects.
func (e *Engine) run(ctx context.Context, fn func(ctx context.Context, fx *effects) error) error {
	fx := &effects{}
	e.mu.Lock()
	err := fn(ctx, fx)
	session := e.state
	view := e.viewLocked()
	e.mu.Unlock()

	if err != nil || fx.quiet {
		return err
	}
	e.flush(fx, session, view)
	return nil
}

func (e *Engine) flush(fx *effects, session domain.SessionState, view domain.View) {
	if fx.permission && e.notifier != nil {
		e.notifier.RequestPermission()
	}
	if e.audio != nil && len(fx.cues) > 0 && e.soundEnabled() {
		for _, c := range fx.cues {
			if err := e.audio.Play(c); err != nil {
				e.logger.Warn("audio cue failed", "cue", c, "error", err)
			}
		}
	}
	if e.notifier != nil {
		for _, n := range fx.notes {
			if e.notifyOff.Load() {
				break
			}
			if err := e.notifier.Notify(n[0], n[1]); err != nil {
				e.logger.Warn("notifications disabled", "error", err)
				e.notifyOff.Store(true)
			}
		}
	}
	if e.display != nil {
		e.display.ShowSession(view)
	}
	now := e.clock.Now()
	for _, t := range fx.events {
		e.events.publish(domain.Event{Type: t, At: now, Session: session, View: view})
	}
}

func (e *Engine) soundEnabled() bool {
	return e.settings == nil || e.settings.SoundEnabled()
}

// Start toggles the session. A running session pauses, except flowtime,
// which stops and moves to a proportional break.
func (e *Engine) Start(ctx context.Context) error {
	return e.run(ctx, func(ctx context.Context, fx *effects) error {
		if e.state.Running {
			if e.state.Mode == domain.ModeFlowtime {
				e.stopFlowtimeLocked(ctx, fx)
				return nil
			}
			e.pauseLocked(fx)
			return nil
		}
		return e.startLocked(fx)
	})
}

// Pause stops a running session. Pausing focus work counts as an
// interruption.
func (e *Engine) Pause(ctx context.Context) error {
	return e.run(ctx, func(ctx context.Context, fx *effects) error {
		if !e.state.Running {
			fx.quiet = true
			return nil
		}
		e.pauseLocked(fx)
		return nil
	})
}

// Reset pauses and restores the mode's full duration.
func (e *Engine) Reset(ctx context.Context) error {
	return e.run(ctx, func(ctx context.Context, fx *effects) error {
		e.resetLocked(fx)
		return nil
	})
}

// SwitchMode stops the session and resets into mode.
func (e *Engine) SwitchMode(ctx context.Context, mode domain.Mode) error {
	if _, ok := e.registry[mode]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	return e.run(ctx, func(ctx context.Context, fx *effects) error {
		e.switchModeLocked(fx, mode)
		return nil
	})
}

// SetDuration applies a manual "MM" or "MM:SS" edit to the current
// session. Only paused, editable modes accept it. Interruption and pause
// counters are kept; the next Reset or SwitchMode restores the configured
// length.
func (e *Engine) SetDuration(ctx context.Context, text string) error {
	return e.run(ctx, func(ctx context.Context, fx *effects) error {
		if e.state.Running {
			return domain.ErrTimerRunning
		}
		if !e.registry[e.state.Mode].Editable {
			return domain.ErrNotEditable
		}
		seconds, err := domain.ParseTimeEdit(text)
		if err != nil {
			return err
		}
		e.state.SessionDuration = seconds
		e.state.TimeLeft = seconds
		e.flipped = false
		return nil
	})
}

// SelectBreathPattern chooses a catalog pattern or "custom".
func (e *Engine) SelectBreathPattern(ctx context.Context, key string) error {
	pref := domain.DefaultBreathPreference()
	if e.settings != nil {
		pref = e.settings.Breath()
	}
	pref.Pattern = key
	return e.applyBreath(ctx, pref)
}

// SetCustomBreath rebuilds and selects the custom pattern.
func (e *Engine) SetCustomBreath(ctx context.Context, custom domain.CustomBreath) error {
	return e.applyBreath(ctx, domain.BreathPreference{Pattern: domain.PatternCustom, Custom: custom})
}

func (e *Engine) applyBreath(ctx context.Context, pref domain.BreathPreference) error {
	session, err := domain.LookupBreath(pref.Pattern, pref.Custom)
	if err != nil {
		return err
	}
	return e.run(ctx, func(ctx context.Context, fx *effects) error {
		if e.settings != nil {
			if err := e.settings.SetBreath(ctx, pref); err != nil {
				return err
			}
		}
		e.breath.Load(session)
		if e.state.Mode == domain.ModeBreath {
			e.resetLocked(fx)
		} else {
			fx.quiet = true
		}
		return nil
	})
}

// SetInterval reconfigures the workout. An interval session in progress
// is reset.
func (e *Engine) SetInterval(ctx context.Context, work, rest, cycles int) error {
	return e.run(ctx, func(ctx context.Context, fx *effects) error {
		e.interval.Configure(work, rest, cycles)
		if e.state.Mode == domain.ModeInterval {
			e.resetLocked(fx)
		} else {
			fx.quiet = true
		}
		return nil
	})
}

// CompleteActiveTask pops the active task, logs the work done on it and,
// in focus work modes, moves on to the break.
func (e *Engine) CompleteActiveTask(ctx context.Context) (*domain.HistoryEntry, error) {
	if e.queue == nil {
		return nil, domain.ErrQueueEmpty
	}
	var logged *domain.HistoryEntry
	err := e.run(ctx, func(ctx context.Context, fx *effects) error {
		elapsed := e.state.ElapsedWork()
		head, err := e.queue.PopActive(ctx)
		if err != nil {
			return err
		}

		minutes := (elapsed + 59) / 60
		if minutes > 0 {
			if entry, ok := e.logLocked(ctx, head.Text, minutes); ok {
				logged = &entry
			}
		}
		fx.notify("Task Completed!", fmt.Sprintf("You finished %q. Enjoy your break!", head.Text))

		if e.state.Mode.IsWork() {
			prev := e.state.Mode
			e.stopDriverLocked()
			e.advanceCycleLocked(ctx, fx, prev, e.flowtimeBreak(prev, elapsed))
		}
		return nil
	})
	return logged, err
}

// AddHistory logs a manual entry. Counters left unset in override are
// taken from the current session.
func (e *Engine) AddHistory(ctx context.Context, label string, minutes int, override domain.HistoryCounters) (domain.HistoryEntry, error) {
	if e.history == nil {
		return domain.HistoryEntry{}, errHistoryDisabled
	}
	e.mu.Lock()
	interruptions := e.state.Interruptions
	paused := e.state.PausedSeconds + e.state.OpenPauseSeconds(e.clock.Now())
	mode := e.state.Mode
	e.mu.Unlock()

	if override.Interruptions != nil {
		interruptions = *override.Interruptions
	}
	if override.PausedSeconds != nil {
		paused = *override.PausedSeconds
	}
	if !mode.IsWork() {
		mode = ""
	}
	return e.history.Add(ctx, AddEntryRequest{
		Label:         label,
		Minutes:       minutes,
		Interruptions: interruptions,
		PausedSeconds: paused,
		Mode:          mode,
	})
}

// Snapshot returns a copy of the session and its display view.
func (e *Engine) Snapshot() (domain.SessionState, domain.View) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.viewLocked()
}

// Registry returns the mode table.
func (e *Engine) Registry() domain.Registry {
	return e.registry
}

// Subscribe returns a channel of engine events. Slow subscribers miss
// events rather than blocking the engine. cancel closes the channel.
func (e *Engine) Subscribe(buffer int) (<-chan domain.Event, func()) {
	return e.events.subscribe(buffer)
}

// Close stops the driver and any pending grace delay.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopDriverLocked()
	e.cancelGraceLocked()
	e.events.close()
}

func (e *Engine) startLocked(fx *effects) error {
	cfg := e.registry[e.state.Mode]
	now := e.clock.Now()

	switch {
	case cfg.Handler == domain.HandlerDeadline:
		target, err := e.deadlineTarget(now)
		if err != nil {
			return err
		}
		left := int(target.Sub(now) / time.Second)
		e.state.TimeLeft = left
		if left > e.state.SessionDuration {
			e.state.SessionDuration = left
		}
	case cfg.CountdownType() && e.state.TimeLeft <= 0:
		e.resetLocked(fx)
	}

	if e.state.PauseStartedAt != nil {
		e.state.PausedSeconds += e.state.OpenPauseSeconds(now)
		e.state.PauseStartedAt = nil
	}
	e.cancelGraceLocked()

	fx.permission = true
	e.state.Running = true
	if e.state.Mode == domain.ModeGrounding && e.state.Message == "" {
		e.state.Message = domain.GroundingPrompt(e.state.SessionDuration-e.state.TimeLeft, e.state.SessionDuration)
	}
	e.startDriverLocked()
	fx.event(domain.EventStarted)
	return nil
}

func (e *Engine) pauseLocked(fx *effects) {
	e.stopDriverLocked()
	e.state.Running = false
	if e.state.Mode.IsWork() {
		e.state.Interruptions++
		now := e.clock.Now()
		e.state.PauseStartedAt = &now
	}
	fx.event(domain.EventPaused)
}

func (e *Engine) resetLocked(fx *effects) {
	e.stopDriverLocked()
	e.cancelGraceLocked()

	e.state.Running = false
	e.state.Category = e.registry[e.state.Mode].Category
	e.state.ElapsedFlowtime = 0
	e.state.Interruptions = 0
	e.state.PausedSeconds = 0
	e.state.PauseStartedAt = nil
	e.state.Message = ""
	e.flipped = false

	e.breath.Reset()
	e.interval.Reset()
	e.state.Breath = e.breath.State()
	e.state.Interval = e.interval.State()

	e.state.SessionDuration = e.durationLocked(e.state.Mode)
	if e.registry[e.state.Mode].CountsUp() {
		e.state.TimeLeft = 0
	} else {
		e.state.TimeLeft = e.state.SessionDuration
	}
	fx.event(domain.EventReset)
}

func (e *Engine) switchModeLocked(fx *effects, mode domain.Mode) {
	e.stopDriverLocked()
	e.state.Mode = mode
	e.resetLocked(fx)
	fx.event(domain.EventModeChanged)
}

// durationLocked resolves a mode's session length from its source.
func (e *Engine) durationLocked(mode domain.Mode) int {
	cfg := e.registry[mode]
	switch cfg.Source {
	case domain.SourceModeTable:
		d := domain.DefaultModeDurations()
		if e.settings != nil {
			d = e.settings.Modes()
		}
		return d.Seconds(mode)
	case domain.SourceBreathing:
		return e.breath.Session().TotalMinutes * 60
	case domain.SourceInterval:
		return e.interval.PhaseSeconds()
	case domain.SourceFixed:
		return cfg.FixedSeconds
	case domain.SourceDeadline:
		target, err := e.deadlineTarget(e.clock.Now())
		if err != nil {
			return 0
		}
		return int(target.Sub(e.clock.Now()) / time.Second)
	}
	return 0
}

func (e *Engine) deadlineTarget(now time.Time) (time.Time, error) {
	var target *time.Time
	if e.settings != nil {
		target = e.settings.Deadline()
	}
	if target == nil {
		return time.Time{}, domain.ErrDeadlineNotSet
	}
	if !target.After(now) {
		return time.Time{}, domain.ErrDeadlinePassed
	}
	return *target, nil
}

func (e *Engine) breathSession() domain.BreathSession {
	pref := domain.DefaultBreathPreference()
	if e.settings != nil {
		pref = e.settings.Breath()
	}
	session, err := domain.LookupBreath(pref.Pattern, pref.Custom)
	if err != nil {
		e.logger.Warn("unknown breathing pattern, using box", "pattern", pref.Pattern)
		session, _ = domain.LookupBreath(domain.PatternBox, domain.CustomBreath{})
	}
	return session
}

func (e *Engine) startDriverLocked() {
	e.driver.Stop()
	e.gen++
	gen := e.gen
	e.driver.Start(func(now time.Time) {
		e.onTick(gen, now)
	})
}

func (e *Engine) stopDriverLocked() {
	e.driver.Stop()
	e.gen++
}

func (e *Engine) cancelGraceLocked() {
	e.graceSeq++
	if e.graceStop != nil {
		e.graceStop()
		e.graceStop = nil
	}
}

// scheduleGraceLocked switches to next after the grace delay unless the
// session is reset first.
func (e *Engine) scheduleGraceLocked(next domain.Mode) {
	e.cancelGraceLocked()
	seq := e.graceSeq
	e.graceStop = e.clock.AfterFunc(e.graceDelay, func() {
		_ = e.run(context.Background(), func(ctx context.Context, fx *effects) error {
			if seq != e.graceSeq {
				fx.quiet = true
				return nil
			}
			e.graceStop = nil
			e.switchModeLocked(fx, next)
			return nil
		})
	})
}

// logLocked appends a history entry for the current session's work.
func (e *Engine) logLocked(ctx context.Context, label string, minutes int) (domain.HistoryEntry, bool) {
	if e.history == nil {
		return domain.HistoryEntry{}, false
	}
	entry, err := e.history.Add(ctx, AddEntryRequest{
		Label:         label,
		Minutes:       minutes,
		Interruptions: e.state.Interruptions,
		PausedSeconds: e.state.PausedSeconds + e.state.OpenPauseSeconds(e.clock.Now()),
		Mode:          e.state.Mode,
	})
	if err != nil {
		e.logger.Error("failed to log session", "mode", e.state.Mode, "error", err)
		return domain.HistoryEntry{}, false
	}
	e.logger.Info("session logged", "task", entry.Task, "minutes", entry.DurationMinutes)
	return entry, true
}

func (e *Engine) activeLabel() string {
	if e.queue != nil {
		if head, ok := e.queue.Active(); ok {
			return head.Text
		}
	}
	return domain.DefaultTaskLabel
}

// flowtimeBreak returns the break earned by elapsed seconds of flowtime,
// or 0 for other modes.
func (e *Engine) flowtimeBreak(prev domain.Mode, elapsed int) int {
	if prev != domain.ModeFlowtime {
		return 0
	}
	ratio := domain.DefaultFlowSettings().FlowtimeRatio
	if e.settings != nil {
		ratio = e.settings.Flow().FlowtimeRatio
	}
	seconds := int(float64(elapsed) / ratio)
	if floor := int(e.minBreak / time.Second); seconds < floor {
		seconds = floor
	}
	return seconds
}

func (e *Engine) stopFlowtimeLocked(ctx context.Context, fx *effects) {
	e.stopDriverLocked()
	e.state.Running = false
	elapsed := e.state.ElapsedFlowtime
	if minutes := (elapsed + 59) / 60; minutes > 0 {
		e.logLocked(ctx, e.activeLabel(), minutes)
	}
	fx.event(domain.EventCompleted)
	e.advanceCycleLocked(ctx, fx, domain.ModeFlowtime, e.flowtimeBreak(domain.ModeFlowtime, elapsed))
}

// advanceCycleLocked applies the auto-transition after prev ends. A
// positive breakSeconds replaces the break's table length.
func (e *Engine) advanceCycleLocked(ctx context.Context, fx *effects, prev domain.Mode, breakSeconds int) {
	flow := domain.DefaultFlowSettings()
	if e.settings != nil {
		flow = e.settings.Flow()
	}

	// Counters belong to the finished session.
	e.state.Interruptions = 0
	e.state.PausedSeconds = 0
	e.state.PauseStartedAt = nil

	next, count := domain.Transition(prev, flow.FocusCount, flow.LongBreakInterval)
	if count != flow.FocusCount && e.settings != nil {
		if _, err := e.settings.UpdateFlow(ctx, func(f *domain.FlowSettings) { f.FocusCount = count }); err != nil {
			e.logger.Error("failed to persist focus count", "error", err)
		}
	}

	e.switchModeLocked(fx, next)
	if breakSeconds > 0 && next.IsBreak() {
		e.state.SessionDuration = breakSeconds
		e.state.TimeLeft = breakSeconds
	}

	auto := flow.AutoStartWork
	if next.IsBreak() {
		auto = flow.AutoStartBreaks
	}
	if auto {
		if err := e.startLocked(fx); err != nil {
			e.logger.Warn("auto-start failed", "mode", next, "error", err)
		}
	}
}

func (e *Engine) onTick(gen uint64, now time.Time) {
	_ = e.run(context.Background(), func(ctx context.Context, fx *effects) error {
		if gen != e.gen || !e.state.Running {
			fx.quiet = true
			return nil
		}
		e.tickLocked(ctx, fx, now)
		return nil
	})
}

func (e *Engine) tickLocked(ctx context.Context, fx *effects, now time.Time) {
	fx.event(domain.EventTick)
	cfg := e.registry[e.state.Mode]

	switch cfg.Handler {
	case domain.HandlerCountUp:
		e.state.TimeLeft++
		return
	case domain.HandlerFlowtime:
		e.state.ElapsedFlowtime++
		return
	case domain.HandlerDeadline:
		target, err := e.deadlineTarget(now)
		if err != nil {
			e.state.TimeLeft = 0
		} else {
			e.state.TimeLeft = int(target.Sub(now) / time.Second)
		}
	case domain.HandlerBreathing:
		e.state.TimeLeft--
		if e.breath.Advance() {
			fx.cue(domain.CuePhase)
			fx.event(domain.EventPhaseChanged)
		}
		e.state.Breath = e.breath.State()
	case domain.HandlerInterval:
		e.state.TimeLeft--
		if e.state.TimeLeft <= 0 {
			e.intervalPhaseEndedLocked(ctx, fx)
			return
		}
	default:
		e.state.TimeLeft--
	}

	e.hooksLocked(fx)
	if e.state.TimeLeft <= 0 {
		e.completeLocked(ctx, fx)
	}
}

// hooksLocked runs the per-tick reminders of the grill and grounding modes.
func (e *Engine) hooksLocked(fx *effects) {
	switch e.state.Mode {
	case domain.ModeGrill:
		if !e.flipped && e.state.TimeLeft > 0 && e.state.TimeLeft <= e.state.SessionDuration/2 {
			e.flipped = true
			e.state.Message = domain.MessageFlip
			fx.cue(domain.CueFlip)
			fx.notify("Grill", domain.MessageFlip)
			fx.event(domain.EventMessage)
		}
	case domain.ModeGrounding:
		prompt := domain.GroundingPrompt(e.state.SessionDuration-e.state.TimeLeft, e.state.SessionDuration)
		if prompt != e.state.Message && e.state.TimeLeft > 0 {
			e.state.Message = prompt
			fx.cue(domain.CueChime)
			fx.event(domain.EventMessage)
		}
	}
}

func (e *Engine) intervalPhaseEndedLocked(ctx context.Context, fx *effects) {
	switch e.interval.PhaseEnded() {
	case IntervalToRest:
		e.state.Message = domain.MessageRest
	case IntervalToWork:
		e.state.Message = domain.MessageWork
	case IntervalComplete:
		e.state.Interval = e.interval.State()
		e.state.TimeLeft = 0
		e.completeLocked(ctx, fx)
		return
	default:
		return
	}
	e.state.Interval = e.interval.State()
	e.state.SessionDuration = e.interval.PhaseSeconds()
	e.state.TimeLeft = e.state.SessionDuration
	fx.cue(domain.CueChime)
	fx.event(domain.EventCycleChanged)
}

func (e *Engine) completeLocked(ctx context.Context, fx *effects) {
	mode := e.state.Mode
	e.stopDriverLocked()
	e.state.Running = false
	e.state.TimeLeft = 0

	fx.cue(domain.CueAlarm)
	title, body := domain.CompletionMessage(mode)
	fx.notify(title, body)
	fx.event(domain.EventCompleted)
	e.logger.Info("session completed", "mode", mode)

	switch mode {
	case domain.ModeBreath:
		e.state.Message = domain.MessageBreatheNormally
		e.scheduleGraceLocked(domain.ModeFocus)
	case domain.ModeInterval:
		e.state.Message = domain.MessageWorkoutDone
		e.scheduleGraceLocked(domain.ModeFocus)
	case domain.ModeFocus:
		minutes := (e.state.SessionDuration + 59) / 60
		if minutes > 0 {
			e.logLocked(ctx, e.activeLabel(), minutes)
		}
		e.advanceCycleLocked(ctx, fx, mode, 0)
	case domain.ModeShort, domain.ModeLong:
		e.advanceCycleLocked(ctx, fx, mode, 0)
	}
}

func (e *Engine) viewLocked() domain.View {
	s := e.state
	v := domain.View{
		Mode:      s.Mode,
		Label:     modes.Label(s.Mode),
		Remaining: domain.FormatClock(s.DisplayValue()),
		Percent:   s.Progress() * 100,
		Running:   s.Running,
		Message:   s.Message,
	}
	switch s.Mode {
	case domain.ModeBreath:
		v.Phase = e.breath.Phase().Label()
		v.BreathLevel = e.breath.Level()
	case domain.ModeInterval:
		v.Phase = domain.MessageWork
		if s.Interval.Rest {
			v.Phase = domain.MessageRest
		}
		v.Cycle = fmt.Sprintf("%d/%d", s.Interval.CurrentCycle, s.Interval.TotalCycles)
	}
	return v
}
