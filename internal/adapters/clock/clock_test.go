package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_DriverTicksOncePerSecond(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	d := m.NewDriver(time.Second)

	ticks := 0
	d.Start(func(time.Time) { ticks++ })
	assert.True(t, d.Active())

	m.Tick(5)
	assert.Equal(t, 5, ticks)

	d.Stop()
	assert.False(t, d.Active())
	m.Tick(3)
	assert.Equal(t, 5, ticks)
}

func TestManual_StopFromInsideTick(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	d := m.NewDriver(time.Second)

	ticks := 0
	d.Start(func(time.Time) {
		ticks++
		if ticks == 2 {
			d.Stop()
		}
	})
	m.Tick(10)
	assert.Equal(t, 2, ticks)
}

func TestManual_StartTwiceIsNoop(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	d := m.NewDriver(time.Second)

	first, second := 0, 0
	d.Start(func(time.Time) { first++ })
	d.Start(func(time.Time) { second++ })
	m.Tick(2)
	assert.Equal(t, 2, first)
	assert.Zero(t, second)
}

func TestManual_AfterFunc(t *testing.T) {
	m := NewManual(time.Unix(0, 0))

	fired := 0
	m.AfterFunc(3*time.Second, func() { fired++ })
	stop := m.AfterFunc(2*time.Second, func() { fired += 10 })
	require.True(t, stop())
	assert.False(t, stop())

	m.Tick(2)
	assert.Zero(t, fired)
	m.Tick(1)
	assert.Equal(t, 1, fired)
	m.Tick(5)
	assert.Equal(t, 1, fired)
}

func TestManual_NowAdvances(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	m.Advance(90 * time.Second)
	assert.Equal(t, start.Add(90*time.Second), m.Now())
}

func TestSystem_DriverStops(t *testing.T) {
	d := System{}.NewDriver(5 * time.Millisecond)

	var ticks atomic.Int32
	d.Start(func(time.Time) { ticks.Add(1) })
	require.Eventually(t, func() bool { return ticks.Load() >= 2 }, time.Second, time.Millisecond)

	d.Stop()
	assert.False(t, d.Active())
	// Allow an in-flight tick to land, then confirm the count is stable.
	time.Sleep(20 * time.Millisecond)
	settled := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load())
}
