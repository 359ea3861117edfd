package domain

// Cue names a sound played by the audio port.
type Cue string

const (
	CueAlarm Cue = "alarm"
	CueChime Cue = "chime"
	CueFlip  Cue = "flip"
	CuePhase Cue = "phase"
)
