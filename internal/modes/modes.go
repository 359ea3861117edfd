// Package modes encapsulates the presentation of each timer mode.
// The TUI and CLI query the Profile interface for titles, hints and
// grouping instead of scattering mode checks everywhere.
package modes

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/timerdeck/internal/domain"
)

// Profile defines the interface for mode-specific presentation.
type Profile interface {
	// Mode returns the mode identifier.
	Mode() domain.Mode

	// Label returns the short name shown in headers and tables.
	Label() string

	// Icon returns a one-rune marker for compact views.
	Icon() string

	// Description returns a one-line summary of the mode.
	Description() string

	// StartHint returns the hint shown while the mode is idle.
	StartHint() string

	// Group returns the heading the mode is listed under.
	Group() string
}

type profile struct {
	mode        domain.Mode
	label       string
	icon        string
	description string
	hint        string
	category    domain.Category
}

func (p profile) Mode() domain.Mode   { return p.mode }
func (p profile) Label() string       { return p.label }
func (p profile) Icon() string        { return p.icon }
func (p profile) Description() string { return p.description }
func (p profile) StartHint() string   { return p.hint }

func (p profile) Group() string {
	switch p.category {
	case domain.CategoryFocus:
		return "Focus"
	case domain.CategoryWellness:
		return "Wellness"
	case domain.CategoryFitness:
		return "Fitness"
	default:
		return "Tools"
	}
}

var profiles = map[domain.Mode]profile{
	domain.ModeFocus: {
		mode: domain.ModeFocus, label: "Focus", icon: "●", category: domain.CategoryFocus,
		description: "Fixed-length focus session followed by a break",
		hint:        "Press space to start focusing",
	},
	domain.ModeShort: {
		mode: domain.ModeShort, label: "Short Break", icon: "○", category: domain.CategoryFocus,
		description: "Short rest between focus sessions",
		hint:        "Stand up and stretch",
	},
	domain.ModeLong: {
		mode: domain.ModeLong, label: "Long Break", icon: "◎", category: domain.CategoryFocus,
		description: "Longer rest after a full cycle",
		hint:        "Step away from the screen",
	},
	domain.ModeFlowtime: {
		mode: domain.ModeFlowtime, label: "Flowtime", icon: "∞", category: domain.CategoryFocus,
		description: "Open-ended focus with a proportional break",
		hint:        "Stop whenever your focus fades",
	},
	domain.ModeBreath: {
		mode: domain.ModeBreath, label: "Breathing", icon: "~", category: domain.CategoryWellness,
		description: "Guided breathing pattern",
		hint:        "Follow the prompts",
	},
	domain.ModeGrounding: {
		mode: domain.ModeGrounding, label: "Grounding", icon: "5", category: domain.CategoryWellness,
		description: "5-4-3-2-1 senses exercise",
		hint:        "Notice your surroundings",
	},
	domain.ModeMicrobreak: {
		mode: domain.ModeMicrobreak, label: "Micro-break", icon: "·", category: domain.CategoryWellness,
		description: "Look 20 feet away for 20 seconds",
		hint:        "Rest your eyes",
	},
	domain.ModeInterval: {
		mode: domain.ModeInterval, label: "Interval", icon: "⚡", category: domain.CategoryFitness,
		description: "Alternating work and rest cycles",
		hint:        "Warm up before you start",
	},
	domain.ModeStopwatch: {
		mode: domain.ModeStopwatch, label: "Stopwatch", icon: "⏱", category: domain.CategoryTools,
		description: "Counts up from zero",
		hint:        "Press space to start counting",
	},
	domain.ModeCountdown: {
		mode: domain.ModeCountdown, label: "Countdown", icon: "⏳", category: domain.CategoryTools,
		description: "Plain editable countdown",
		hint:        "Press e to set the time",
	},
	domain.ModeDeadline: {
		mode: domain.ModeDeadline, label: "Deadline", icon: "⚑", category: domain.CategoryTools,
		description: "Counts down to a target date and time",
		hint:        "Set a target with `timerdeck deadline`",
	},
	domain.ModeGrill: {
		mode: domain.ModeGrill, label: "Grill", icon: "♨", category: domain.CategoryTools,
		description: "Cooking countdown with a flip reminder",
		hint:        "Flip at the halfway point",
	},
}

// ForMode returns the Profile for m. Unknown modes get the focus profile.
func ForMode(m domain.Mode) Profile {
	if p, ok := profiles[m]; ok {
		return p
	}
	return profiles[domain.ModeFocus]
}

// Label is shorthand for ForMode(m).Label().
func Label(m domain.Mode) string {
	return ForMode(m).Label()
}

// Resolve matches user input against mode keys and labels. Exact keys
// win; otherwise the best fuzzy match is returned.
func Resolve(input string) (domain.Mode, error) {
	if m, err := domain.ParseMode(input); err == nil {
		return m, nil
	}
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" {
		return "", fmt.Errorf("%w: empty name", domain.ErrUnknownMode)
	}

	all := domain.AllModes()
	names := make([]string, 0, len(all)*2)
	owners := make([]domain.Mode, 0, len(all)*2)
	for _, m := range all {
		names = append(names, string(m), strings.ToLower(profiles[m].label))
		owners = append(owners, m, m)
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownMode, input)
	}
	return owners[matches[0].Index], nil
}

// Grouped returns the modes under their group headings in display order.
func Grouped() []Group {
	var groups []Group
	for _, m := range domain.AllModes() {
		name := ForMode(m).Group()
		if len(groups) == 0 || groups[len(groups)-1].Name != name {
			groups = append(groups, Group{Name: name})
		}
		groups[len(groups)-1].Modes = append(groups[len(groups)-1].Modes, m)
	}
	return groups
}

// Group is a heading with its modes.
type Group struct {
	Name  string
	Modes []domain.Mode
}
