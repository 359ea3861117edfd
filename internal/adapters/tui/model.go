// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
)

// Controller drives the session clock.
type Controller interface {
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Reset(ctx context.Context) error
	SwitchMode(ctx context.Context, mode domain.Mode) error
	SetDuration(ctx context.Context, text string) error
	CompleteActiveTask(ctx context.Context) (*domain.HistoryEntry, error)
	Snapshot() (domain.SessionState, domain.View)
}

// TimerController manages the kitchen timers.
type TimerController interface {
	Create(ctx context.Context, name string, seconds int, start bool) (domain.MultiTimer, error)
	CreatePreset(ctx context.Context, key string) (domain.MultiTimer, error)
	Toggle(ctx context.Context, id int64) (domain.MultiTimer, error)
	Reset(ctx context.Context, id int64) (domain.MultiTimer, error)
	Delete(ctx context.Context, id int64) error
	List() []domain.MultiTimer
}

// TaskQueue holds pending tasks. The head is the active task.
type TaskQueue interface {
	Enqueue(ctx context.Context, text string) (domain.TaskQueueItem, error)
	List() []domain.TaskQueueItem
}

// Options wires a Model to the services.
type Options struct {
	Engine Controller
	Timers TimerController
	Queue  TaskQueue
	// Stats returns today's totals and the daily and weekly goal progress.
	Stats      func() (domain.Stats, int, int)
	Theme      *config.ThemeConfig
	Appearance domain.Theme
}

type panel int

const (
	panelClock panel = iota
	panelTimers
)

type inputKind int

const (
	inputNone inputKind = iota
	inputDuration
	inputTask
	inputTimer
)

// actionMsg reports the outcome of a service call run off the update loop.
type actionMsg struct {
	err  error
	note string
}

// Model represents the TUI state.
type Model struct {
	ctx    context.Context
	engine Controller
	timers TimerController
	queue  TaskQueue
	stats  func() (domain.Stats, int, int)

	session   domain.SessionState
	view      domain.View
	timerList []domain.MultiTimer
	tasks     []domain.TaskQueueItem
	today     domain.Stats
	daily     int
	weekly    int

	panel     panel
	cursor    int
	picker    *pickerModel
	input     textinput.Model
	inputKind inputKind

	keys     keyMap
	help     help.Model
	progress progress.Model
	theme    config.ThemeConfig

	status string
	err    error
	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, opts Options) Model {
	theme := resolveTheme(opts.Theme)
	input := textinput.New()
	input.CharLimit = 64
	input.Width = 32

	m := Model{
		ctx:      ctx,
		engine:   opts.Engine,
		timers:   opts.Timers,
		queue:    opts.Queue,
		stats:    opts.Stats,
		input:    input,
		keys:     defaultKeys(),
		help:     help.New(),
		progress: progress.New(progress.WithGradient(theme.GradientStart, theme.GradientEnd), progress.WithoutPercentage()),
		theme:    theme,
	}
	m.refresh()
	return m
}

// Init initializes the TUI. The engines push every change, so no tick
// loop is needed.
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh pulls fresh copies of everything the view shows.
func (m *Model) refresh() {
	if m.engine != nil {
		m.session, m.view = m.engine.Snapshot()
	}
	if m.timers != nil {
		m.timerList = m.timers.List()
	}
	if m.queue != nil {
		m.tasks = m.queue.List()
	}
	if m.stats != nil {
		m.today, m.daily, m.weekly = m.stats()
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.timerList) {
		m.cursor = len(m.timerList) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(min(msg.Width-8, 60), 10)
		m.help.Width = msg.Width
		return m, nil

	case viewMsg:
		m.view = domain.View(msg)
		if m.engine != nil {
			m.session, _ = m.engine.Snapshot()
		}
		if m.stats != nil {
			m.today, m.daily, m.weekly = m.stats()
		}
		return m, nil

	case timersMsg:
		m.timerList = msg
		m.clampCursor()
		return m, nil

	case actionMsg:
		m.err = msg.err
		if msg.note != "" {
			m.status = msg.note
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker != nil {
		return m.handlePicker(msg)
	}
	if m.inputKind != inputNone {
		return m.handleInput(msg)
	}

	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Timers):
		if m.panel == panelClock {
			m.panel = panelTimers
		} else {
			m.panel = panelClock
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.panel == panelTimers {
			if t, ok := m.selectedTimer(); ok {
				return m, m.do(func(ctx context.Context) error {
					_, err := m.timers.Toggle(ctx, t.ID)
					return err
				})
			}
			return m, nil
		}
		if m.session.Running {
			return m, m.do(m.engine.Pause)
		}
		return m, m.do(m.engine.Start)

	case key.Matches(msg, m.keys.Reset):
		if m.panel == panelTimers {
			if t, ok := m.selectedTimer(); ok {
				return m, m.do(func(ctx context.Context) error {
					_, err := m.timers.Reset(ctx, t.ID)
					return err
				})
			}
			return m, nil
		}
		m.status = ""
		return m, m.do(m.engine.Reset)

	case key.Matches(msg, m.keys.Mode):
		p := newPicker(m.session.Mode, m.theme)
		m.picker = &p
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		if m.session.Running {
			m.err = domain.ErrTimerRunning
			return m, nil
		}
		return m.openInput(inputDuration, "Duration (MM:SS): ", m.view.Remaining)

	case key.Matches(msg, m.keys.AddTask):
		return m.openInput(inputTask, "Task: ", "")

	case key.Matches(msg, m.keys.Complete):
		return m, m.completeTask()

	case key.Matches(msg, m.keys.NewTimer):
		if m.timers == nil {
			return m, nil
		}
		m.panel = panelTimers
		return m.openInput(inputTimer, "Timer (preset or name MM:SS): ", "")

	case key.Matches(msg, m.keys.Up):
		if m.panel == panelTimers && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.panel == panelTimers && m.cursor < len(m.timerList)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Delete):
		if m.panel == panelTimers {
			if t, ok := m.selectedTimer(); ok {
				return m, m.do(func(ctx context.Context) error {
					return m.timers.Delete(ctx, t.ID)
				})
			}
		}
	}
	return m, nil
}

func (m Model) handlePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	p := next.(pickerModel)
	switch {
	case p.chosen:
		m.picker = nil
		mode, _ := p.Selected()
		m.status = ""
		return m, m.do(func(ctx context.Context) error {
			return m.engine.SwitchMode(ctx, mode)
		})
	case p.aborted:
		m.picker = nil
		return m, nil
	}
	m.picker = &p
	return m, cmd
}

func (m Model) openInput(kind inputKind, prompt, value string) (tea.Model, tea.Cmd) {
	m.inputKind = kind
	m.input.Reset()
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) closeInput() {
	m.inputKind = inputNone
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		kind, text := m.inputKind, m.input.Value()
		m.closeInput()
		return m, m.submit(kind, text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(kind inputKind, text string) tea.Cmd {
	switch kind {
	case inputDuration:
		return m.do(func(ctx context.Context) error {
			return m.engine.SetDuration(ctx, text)
		})
	case inputTask:
		queue, ctx := m.queue, m.ctx
		return func() tea.Msg {
			item, err := queue.Enqueue(ctx, text)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{note: fmt.Sprintf("Queued %q", item.Text)}
		}
	case inputTimer:
		timers, ctx := m.timers, m.ctx
		return func() tea.Msg {
			t, err := createTimer(ctx, timers, text)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{note: fmt.Sprintf("Started %s (%s)", t.Name, domain.FormatClock(t.TotalSeconds))}
		}
	}
	return nil
}

// createTimer accepts "name MM:SS", a bare "MM:SS" or a preset key.
func createTimer(ctx context.Context, timers TimerController, text string) (domain.MultiTimer, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return domain.MultiTimer{}, domain.ErrInvalidLabel
	}
	if seconds, err := domain.ParseTimeEdit(fields[len(fields)-1]); err == nil {
		name := strings.Join(fields[:len(fields)-1], " ")
		return timers.Create(ctx, name, seconds, true)
	}
	return timers.CreatePreset(ctx, text)
}

// do runs an engine call as a command. Engine calls push views through
// the program, so they must never run inside Update.
func (m Model) do(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionMsg{err: fn(ctx)}
	}
}

func (m Model) completeTask() tea.Cmd {
	engine, ctx := m.engine, m.ctx
	return func() tea.Msg {
		entry, err := engine.CompleteActiveTask(ctx)
		if err != nil {
			return actionMsg{err: err}
		}
		if entry == nil {
			return actionMsg{note: "Task completed"}
		}
		return actionMsg{note: fmt.Sprintf("Logged %d min for %q", entry.DurationMinutes, entry.Task)}
	}
}

func (m Model) selectedTimer() (domain.MultiTimer, bool) {
	if m.timers == nil || m.cursor < 0 || m.cursor >= len(m.timerList) {
		return domain.MultiTimer{}, false
	}
	return m.timerList[m.cursor], true
}

// View renders the TUI.
func (m Model) View() string {
	if m.picker != nil {
		return m.place(m.picker.View())
	}

	width := m.width
	if width == 0 {
		width = 80
	}
	color := accent(m.theme, m.session.Category, m.session.Running)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	accentStyle := lipgloss.NewStyle().Foreground(color)

	profile := modes.ForMode(m.view.Mode)
	var b strings.Builder

	status := "paused"
	if m.view.Running {
		status = "running"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", profile.Icon(), m.view.Label)))
	b.WriteString(dimStyle.Render("  ·  " + status))
	b.WriteString("\n")

	if len(m.tasks) > 0 {
		line := "▸ " + truncate.StringWithTail(m.tasks[0].Text, uint(max(width-20, 10)), "…")
		if rest := len(m.tasks) - 1; rest > 0 {
			line += dimStyle.Render(fmt.Sprintf("  (+%d queued)", rest))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(bigClock(m.view.Remaining, color, width))
	b.WriteString("\n\n")

	if detail := m.detailLine(); detail != "" {
		b.WriteString(accentStyle.Render(detail) + "\n")
	}
	if m.view.Message != "" {
		b.WriteString(wordwrap.String(m.view.Message, max(width-8, 20)) + "\n")
	} else if !m.view.Running {
		b.WriteString(dimStyle.Render(profile.StartHint()) + "\n")
	}

	switch {
	case m.view.Mode == domain.ModeBreath:
		b.WriteString(m.progress.ViewAs(m.view.BreathLevel / 100) + "\n")
	case m.view.Percent > 0 || m.registryCountdown():
		b.WriteString(m.progress.ViewAs(m.view.Percent/100) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("Today %dm · %d sessions   Goals %d%% daily · %d%% weekly",
		m.today.TodayMinutes, m.today.TodayCount, m.daily, m.weekly)))
	b.WriteString("\n")

	if m.panel == panelTimers || len(m.timerList) > 0 {
		b.WriteString("\n" + m.timersView(width) + "\n")
	}

	if m.inputKind != inputNone {
		b.WriteString("\n" + m.input.View() + "\n")
	} else if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
		b.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + dimStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return m.place(b.String())
}

func (m Model) detailLine() string {
	var parts []string
	if m.view.Phase != "" {
		parts = append(parts, m.view.Phase)
	}
	if m.view.Cycle != "" {
		parts = append(parts, "cycle "+m.view.Cycle)
	}
	return strings.Join(parts, " · ")
}

func (m Model) registryCountdown() bool {
	return defaultRegistry[m.view.Mode].CountdownType()
}

func (m Model) timersView(width int) string {
	var b strings.Builder
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
	b.WriteString(header.Render("Timers") + "\n")
	if len(m.timerList) == 0 {
		b.WriteString(dimStyle.Render("  none yet · n to add") + "\n")
		return b.String()
	}
	toolColor := lipgloss.Color(m.theme.ColorTools)
	for i, t := range m.timerList {
		marker := "  "
		if m.panel == panelTimers && i == m.cursor {
			marker = lipgloss.NewStyle().Foreground(toolColor).Bold(true).Render("▸ ")
		}
		state := "⏸"
		if t.Running {
			state = "▶"
		} else if t.Finished() {
			state = "✓"
		}
		name := truncate.StringWithTail(t.Name, uint(max(width-24, 8)), "…")
		line := fmt.Sprintf("%s %-20s %s", state, name, domain.FormatClock(t.TimeLeft))
		if t.Running {
			line = lipgloss.NewStyle().Foreground(toolColor).Render(line)
		} else {
			line = dimStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

func (m Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
