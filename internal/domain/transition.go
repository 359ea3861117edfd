package domain

// DefaultLongBreakInterval is the number of focus sessions before a long break.
const DefaultLongBreakInterval = 4

// Transition decides the mode that follows prev in the focus cycle and the
// updated focus count. Completing a focus session counts it; once the
// count reaches longBreakInterval a long break follows and the count
// starts over. Breaks always lead back to focus.
func Transition(prev Mode, focusCount, longBreakInterval int) (Mode, int) {
	if longBreakInterval < 1 {
		longBreakInterval = DefaultLongBreakInterval
	}
	if focusCount < 0 {
		focusCount = 0
	}

	switch prev {
	case ModeFocus:
		next := focusCount + 1
		if next >= longBreakInterval {
			return ModeLong, 0
		}
		return ModeShort, next
	case ModeFlowtime:
		return ModeShort, focusCount
	default:
		return ModeFocus, focusCount
	}
}
