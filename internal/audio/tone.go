package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SampleRate is the output rate used for every generated tone.
const SampleRate = beep.SampleRate(44100)

// tone is a sine sweep from freq to freq+sweep with a short linear attack and
// release.
type tone struct {
	freq, sweep float64
	gain        float64
	phase       float64
	pos, total  int
	edge        int
	rate        beep.SampleRate
}

// NewTone returns a finite streamer of d length.
func NewTone(freq, sweep float64, d time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &tone{
		freq:  freq,
		sweep: sweep,
		gain:  gain,
		total: total,
		edge:  max(total/10, 1),
		rate:  rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.total)
		env := 1.0
		if t.pos < t.edge {
			env = float64(t.pos) / float64(t.edge)
		} else if rest := t.total - t.pos; rest < t.edge {
			env = float64(rest) / float64(t.edge)
		}
		v := math.Sin(2*math.Pi*t.phase) * env * t.gain
		samples[i][0] = v
		samples[i][1] = v

		t.phase += (t.freq + t.sweep*progress) / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
