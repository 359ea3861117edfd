package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/modes"
)

// pickerItem is one selectable mode.
type pickerItem struct {
	mode  domain.Mode
	group string
	label string
	desc  string
}

// pickerModel lists the modes under their group headings. Typing filters
// the list by fuzzy match on key and label.
type pickerModel struct {
	items   []pickerItem
	visible []int
	filter  textinput.Model
	cursor  int
	chosen  bool
	aborted bool
	theme   config.ThemeConfig
	// standalone pickers quit the program on a decision.
	standalone bool
}

func newPicker(current domain.Mode, theme config.ThemeConfig) pickerModel {
	var items []pickerItem
	for _, g := range modes.Grouped() {
		for _, m := range g.Modes {
			p := modes.ForMode(m)
			items = append(items, pickerItem{mode: m, group: g.Name, label: p.Label(), desc: p.Description()})
		}
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"
	filter.CharLimit = 24
	filter.Focus()

	p := pickerModel{items: items, filter: filter, theme: theme}
	p.refilter()
	for i, idx := range p.visible {
		if items[idx].mode == current {
			p.cursor = i
		}
	}
	return p
}

// Selected returns the mode under the cursor.
func (p pickerModel) Selected() (domain.Mode, bool) {
	if p.cursor < 0 || p.cursor >= len(p.visible) {
		return "", false
	}
	return p.items[p.visible[p.cursor]].mode, true
}

func (p *pickerModel) refilter() {
	query := strings.TrimSpace(p.filter.Value())
	visible := make([]int, 0, len(p.items))
	if query == "" {
		for i := range p.items {
			visible = append(visible, i)
		}
	} else {
		names := make([]string, len(p.items))
		for i, it := range p.items {
			names[i] = string(it.mode) + " " + strings.ToLower(it.label)
		}
		for _, match := range fuzzy.Find(strings.ToLower(query), names) {
			visible = append(visible, match.Index)
		}
	}
	p.visible = visible
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p pickerModel) Init() tea.Cmd { return textinput.Blink }

func (p pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch km.String() {
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	case "down", "ctrl+n":
		if p.cursor < len(p.visible)-1 {
			p.cursor++
		}
		return p, nil
	case "enter":
		if _, ok := p.Selected(); ok {
			p.chosen = true
			return p, p.quit()
		}
		return p, nil
	case "esc", "ctrl+c":
		p.aborted = true
		return p, p.quit()
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(km)
	p.refilter()
	return p, cmd
}

func (p pickerModel) quit() tea.Cmd {
	if p.standalone {
		return tea.Quit
	}
	return nil
}

func (p pickerModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.theme.ColorTitle))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.theme.ColorHelp))
	groupStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.theme.ColorHelp))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Switch mode") + "\n")
	b.WriteString("  " + p.filter.View() + "\n\n")

	grouped := strings.TrimSpace(p.filter.Value()) == ""
	lastGroup := ""
	for i, idx := range p.visible {
		it := p.items[idx]
		if grouped && it.group != lastGroup {
			if lastGroup != "" {
				b.WriteString("\n")
			}
			b.WriteString(groupStyle.Render("  "+it.group) + "\n")
			lastGroup = it.group
		}
		line := fmt.Sprintf(" %-11s %s", it.label, it.desc)
		if i == p.cursor {
			color := lipgloss.Color(categoryHex(p.theme, categoryOf(it.mode)))
			arrow := lipgloss.NewStyle().Foreground(color).Bold(true).Render("▸")
			b.WriteString("  " + arrow + lipgloss.NewStyle().Foreground(color).Bold(true).Render(line) + "\n")
		} else {
			b.WriteString(dimStyle.Render("   "+line) + "\n")
		}
	}
	if len(p.visible) == 0 {
		b.WriteString(dimStyle.Render("    no matching mode") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓ navigate · enter select · esc back") + "\n")
	return b.String()
}

// categoryOf looks the mode's category up in the default registry. The
// category never depends on configured durations.
func categoryOf(m domain.Mode) domain.Category {
	return defaultRegistry[m].Category
}

var defaultRegistry = domain.NewRegistry(domain.DefaultFixedDurations())

// RunModePicker shows the mode picker on its own and returns the chosen
// mode. ok is false when the user backs out.
func RunModePicker(current domain.Mode, theme *config.ThemeConfig) (domain.Mode, bool, error) {
	p := newPicker(current, resolveTheme(theme))
	p.standalone = true

	result, err := tea.NewProgram(p).Run()
	if err != nil {
		return "", false, err
	}
	final := result.(pickerModel)
	if final.aborted || !final.chosen {
		return "", false, nil
	}
	mode, ok := final.Selected()
	return mode, ok, nil
}
