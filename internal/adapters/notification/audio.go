package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/domain"
	"github.com/xvierd/timerdeck/internal/ports"
)

var _ ports.AudioCue = (*Audio)(nil)

// tone is one beep of a cue.
type tone struct {
	freq float64
	ms   int
}

var cueTones = map[domain.Cue][]tone{
	domain.CueAlarm: {{880, 300}, {880, 300}, {880, 300}},
	domain.CueChime: {{660, 150}},
	domain.CueFlip:  {{520, 200}, {780, 200}},
	domain.CuePhase: {{440, 120}},
}

// Audio plays cues as system beeps.
type Audio struct {
	cfg  *config.NotificationConfig
	beep func(freq float64, duration int) error
}

// NewAudio creates an audio player gated by the sound setting.
func NewAudio(cfg *config.NotificationConfig) *Audio {
	return &Audio{cfg: cfg, beep: beeep.Beep}
}

// Play beeps the tones of cue. Unknown cues use the default beep.
func (a *Audio) Play(cue domain.Cue) error {
	if a.cfg == nil || !a.cfg.Sound {
		return nil
	}
	tones, ok := cueTones[cue]
	if !ok {
		tones = []tone{{beeep.DefaultFreq, beeep.DefaultDuration}}
	}
	for _, t := range tones {
		if err := a.beep(t.freq, t.ms); err != nil {
			return err
		}
	}
	return nil
}
