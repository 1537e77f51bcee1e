package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contagion/internal/contamination"
	"contagion/internal/core"
)

type recordingPlayer struct {
	played []beep.Streamer
}

func (r *recordingPlayer) Play(s beep.Streamer) { r.played = append(r.played, s) }

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			peak = max(peak, smp[0], -smp[0])
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestToneLengthAndGain(t *testing.T) {
	n, peak := drain(NewTone(440, 0, 100*time.Millisecond, 0.5, SampleRate))
	assert.Equal(t, SampleRate.N(100*time.Millisecond), n)
	assert.LessOrEqual(t, peak, 0.5)
	assert.Greater(t, peak, 0.4)
}

func TestToneStartsAndEndsSilent(t *testing.T) {
	s := NewTone(440, 0, 50*time.Millisecond, 1, SampleRate)
	buf := make([][2]float64, 1)
	_, ok := s.Stream(buf)
	require.True(t, ok)
	assert.Zero(t, buf[0][0])
}

func TestAlarmImplementsListener(t *testing.T) {
	var _ contamination.Listener = (*Alarm)(nil)

	rec := &recordingPlayer{}
	a := NewAlarm(rec, zerolog.Nop())
	a.OnEnterContamination(core.Pt(1, 1), 1, 1)
	a.OnExitContamination(core.Pt(1, 1), 1, 1)
	require.Len(t, rec.played, 2)

	enter, _ := drain(rec.played[0])
	exit, _ := drain(rec.played[1])
	assert.Greater(t, enter, exit)
}

func TestAlarmWithoutPlayer(t *testing.T) {
	a := NewAlarm(nil, zerolog.Nop())
	assert.NotPanics(t, func() {
		a.OnEnterContamination(core.Point{}, 0, 0)
		a.OnExitContamination(core.Point{}, 0, 0)
	})
}

func TestAlarmFollowsTracker(t *testing.T) {
	g, err := core.NewTileGrid(4, 4, 1, core.Point{})
	require.NoError(t, err)
	state := contamination.New(g)
	tracker := contamination.NewTracker(state)
	rec := &recordingPlayer{}
	tracker.Subscribe(NewAlarm(rec, zerolog.Nop()))

	pos := contamination.PositionFunc(func() (core.Point, bool) { return core.Pt(1.5, 1.5), true })
	tracker.Update(pos)
	assert.Empty(t, rec.played)

	state.ContaminateTile(1, 1)
	tracker.Update(pos)
	tracker.Update(pos)
	assert.Len(t, rec.played, 1)

	state.ClearContamination(1, 1)
	tracker.Update(pos)
	assert.Len(t, rec.played, 2)
}
