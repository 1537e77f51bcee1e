// Package audio plays a contamination alarm when the tracked player enters or
// leaves contaminated ground.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"contagion/internal/core"
)

// Player queues a streamer for playback.
type Player interface {
	Play(s beep.Streamer)
}

// Alarm implements contamination.Listener with a rising tone on entry and a
// falling tone on exit.
type Alarm struct {
	player Player
	rate   beep.SampleRate
	log    zerolog.Logger
}

// NewAlarm plays through p. A nil p makes the alarm silent.
func NewAlarm(p Player, log zerolog.Logger) *Alarm {
	return &Alarm{player: p, rate: SampleRate, log: log.With().Str("component", "audio").Logger()}
}

// OnEnterContamination implements contamination.Listener.
func (a *Alarm) OnEnterContamination(pos core.Point, ix, iy int) {
	a.play(NewTone(440, 440, 180*time.Millisecond, 0.3, a.rate))
	a.log.Debug().Int("x", ix).Int("y", iy).Msg("alarm on")
}

// OnExitContamination implements contamination.Listener.
func (a *Alarm) OnExitContamination(pos core.Point, ix, iy int) {
	a.play(NewTone(660, -330, 120*time.Millisecond, 0.2, a.rate))
}

func (a *Alarm) play(s beep.Streamer) {
	if a.player == nil {
		return
	}
	a.player.Play(s)
}

// Speaker mixes streamers into the system audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// OpenSpeaker initializes the audio device. Callers should treat an error as
// "no sound" and carry on.
func OpenSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	sp := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(sp.mixer)
	return sp, nil
}

// Play implements Player.
func (sp *Speaker) Play(s beep.Streamer) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.closed {
		return
	}
	speaker.Lock()
	sp.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.closed {
		return
	}
	sp.closed = true
	speaker.Clear()
	speaker.Close()
}
