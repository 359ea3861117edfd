package domain

// CompletionMessage returns the notification title and body for a mode
// reaching zero.
func CompletionMessage(m Mode) (title, body string) {
	switch m {
	case ModeFocus:
		return "Focus complete!", "Focus complete! Take a break."
	case ModeShort, ModeLong:
		return "Break over!", "Break over! Back to work."
	case ModeBreath:
		return "Breathing complete", "Breathe normally."
	case ModeGrounding:
		return "Grounding complete", "Notice how you feel now."
	case ModeMicrobreak:
		return "Micro-break over", "Eyes back on the screen."
	case ModeInterval:
		return "Workout complete!", "All cycles done. Cool down."
	case ModeDeadline:
		return "Deadline reached", "The deadline has arrived."
	case ModeGrill:
		return "Grill timer done", "Take it off the heat."
	}
	return "Time's up!", "Your countdown has finished."
}

// Grounding step prompts, shown in order across the session.
var groundingPrompts = []string{
	"Name 5 things you can see",
	"Name 4 things you can touch",
	"Name 3 things you can hear",
	"Name 2 things you can smell",
	"Name 1 thing you can taste",
}

// GroundingPrompt returns the 5-4-3-2-1 prompt for the elapsed share of
// a grounding session.
func GroundingPrompt(elapsed, total int) string {
	if total <= 0 {
		return groundingPrompts[0]
	}
	step := elapsed * len(groundingPrompts) / total
	if step >= len(groundingPrompts) {
		step = len(groundingPrompts) - 1
	}
	if step < 0 {
		step = 0
	}
	return groundingPrompts[step]
}

// Messages shown by the engine.
const (
	MessageBreatheNormally = "Breathe normally"
	MessageFlip            = "Flip it!"
	MessageRest            = "Rest"
	MessageWork            = "Work"
	MessageWorkoutDone     = "Workout complete"
)
