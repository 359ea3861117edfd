package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/timerdeck/internal/config"
	"github.com/xvierd/timerdeck/internal/domain"
)

func TestNotifier(t *testing.T) {
	t.Run("disabled drops notifications", func(t *testing.T) {
		n := New(&config.NotificationConfig{Enabled: false})
		calls := 0
		n.send = func(string, string, any) error { calls++; return nil }

		n.RequestPermission()
		require.NoError(t, n.Notify("a", "b"))
		assert.Zero(t, calls)
		assert.False(t, n.Ready())
	})

	t.Run("enabled forwards and returns errors", func(t *testing.T) {
		n := New(&config.NotificationConfig{Enabled: true})
		var got []string
		n.send = func(title, body string, _ any) error {
			got = append(got, title+"|"+body)
			return nil
		}

		n.RequestPermission()
		assert.True(t, n.Ready())
		require.NoError(t, n.Notify("Focus complete!", "Take a break."))
		assert.Equal(t, []string{"Focus complete!|Take a break."}, got)

		n.send = func(string, string, any) error { return errors.New("no dbus") }
		assert.Error(t, n.Notify("x", "y"))
	})

	t.Run("nil config", func(t *testing.T) {
		n := New(nil)
		assert.False(t, n.IsEnabled())
		assert.NoError(t, n.Notify("a", "b"))
	})
}

func TestAudio(t *testing.T) {
	t.Run("plays tones per cue", func(t *testing.T) {
		a := NewAudio(&config.NotificationConfig{Sound: true})
		var freqs []float64
		a.beep = func(freq float64, _ int) error {
			freqs = append(freqs, freq)
			return nil
		}

		require.NoError(t, a.Play(domain.CueAlarm))
		assert.Len(t, freqs, 3)

		freqs = nil
		require.NoError(t, a.Play(domain.CuePhase))
		assert.Equal(t, []float64{440}, freqs)
	})

	t.Run("sound off is silent", func(t *testing.T) {
		a := NewAudio(&config.NotificationConfig{Sound: false})
		a.beep = func(float64, int) error {
			t.Fatal("unexpected beep")
			return nil
		}
		assert.NoError(t, a.Play(domain.CueChime))
	})

	t.Run("beep failure is returned", func(t *testing.T) {
		a := NewAudio(&config.NotificationConfig{Sound: true})
		a.beep = func(float64, int) error { return errors.New("no audio device") }
		assert.Error(t, a.Play(domain.CueFlip))
	})
}
