package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// digitMap holds the five-row glyphs of the clock font. Digits are three
// or four cells wide, the colon one.
var digitMap = map[rune][5]string{
	'0': {
		"████",
		"█  █",
		"█  █",
		"█  █",
		"████",
	},
	'1': {
		" █ ",
		"██ ",
		" █ ",
		" █ ",
		"███",
	},
	'2': {
		"████",
		"   █",
		"████",
		"█   ",
		"████",
	},
	'3': {
		"████",
		"   █",
		"████",
		"   █",
		"████",
	},
	'4': {
		"█  █",
		"█  █",
		"████",
		"   █",
		"   █",
	},
	'5': {
		"████",
		"█   ",
		"████",
		"   █",
		"████",
	},
	'6': {
		"████",
		"█   ",
		"████",
		"█  █",
		"████",
	},
	'7': {
		"████",
		"   █",
		"  █ ",
		" █  ",
		" █  ",
	},
	'8': {
		"████",
		"█  █",
		"████",
		"█  █",
		"████",
	},
	'9': {
		"████",
		"█  █",
		"████",
		"   █",
		"████",
	},
	':': {
		" ",
		"█",
		" ",
		"█",
		" ",
	},
}

// glyphGap separates adjacent glyphs.
const glyphGap = " "

// bigClock renders a clock string such as "14:32" or "1:05:00" in the
// five-line font. It falls back to a single bold line when the glyphs
// would not fit in width.
func bigClock(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)

	var rows [5]string
	for _, ch := range clock {
		glyph, ok := digitMap[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i] != "" {
				rows[i] += glyphGap
			}
			rows[i] += glyph[i]
		}
	}
	if rows[0] == "" || lipgloss.Width(rows[0]) > width-4 {
		return style.Render(clock)
	}

	styled := make([]string, len(rows))
	for i, row := range rows {
		styled[i] = style.Render(row)
	}
	return strings.Join(styled, "\n")
}
