package hazard

import (
	"github.com/rs/zerolog"

	"contagion/internal/core"
	"contagion/internal/event"
	"contagion/internal/sequence"
	pcore "contagion/pkg/core"
)

// SpreadConfig controls the periodic creep of contamination into
// neighbouring tiles.
type SpreadConfig struct {
	ActiveFrom int     `mapstructure:"active_from"`
	Interval   float64 `mapstructure:"interval"`
	Attempts   int     `mapstructure:"attempts"`
	Radius     float64 `mapstructure:"radius"`
}

var neighbours = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Spread grows contamination from random contaminated tiles into clean
// 4-neighbours once the wave counter reaches ActiveFrom.
type Spread struct {
	cfg   SpreadConfig
	grid  *core.TileGrid
	field Field
	rng   *pcore.RNG
	stamp Stamper
	timer core.Accumulator
	wave  int
	sub   event.Subscription
	grown int
	log   zerolog.Logger
}

// NewSpread constructs a detached Spread generator.
func NewSpread(cfg SpreadConfig, grid *core.TileGrid, field Field, rng *pcore.RNG, stamp Stamper, log zerolog.Logger) *Spread {
	if cfg.Interval <= 0 {
		cfg.Interval = 1
	}
	return &Spread{
		cfg:   cfg,
		grid:  grid,
		field: field,
		rng:   rng,
		stamp: stamp,
		timer: core.Accumulator{Interval: cfg.Interval},
		log:   log.With().Str("component", "hazard.spread").Logger(),
	}
}

// Attach subscribes to q so the generator learns the current wave.
func (s *Spread) Attach(q *sequence.Sequencer) {
	s.Detach()
	if q != nil {
		s.wave = q.Current()
		s.sub = q.Subscribe(s)
	}
}

// Detach cancels the sequencer subscription.
func (s *Spread) Detach() {
	s.sub.Cancel()
	s.sub = event.Subscription{}
}

// OnResetSequence implements sequence.Subscriber.
func (s *Spread) OnResetSequence(seq int) { s.wave = seq }

// Active reports whether the current wave enables spreading.
func (s *Spread) Active() bool {
	return s.cfg.ActiveFrom > 0 && s.wave >= s.cfg.ActiveFrom
}

// Grown returns the number of tiles the generator has spread into.
func (s *Spread) Grown() int { return s.grown }

// Reset restarts the timer and forgets the wave.
func (s *Spread) Reset() {
	s.timer.Reset()
	s.wave = 0
}

// Tick advances the spread timer by dt seconds of game time.
func (s *Spread) Tick(dt float64) {
	if !s.Active() || s.grid == nil || s.field == nil || s.stamp == nil {
		return
	}
	if !s.timer.Advance(dt) || s.field.ContaminatedCount() == 0 {
		return
	}
	size := s.grid.Size()
	for i := 0; i < s.cfg.Attempts; i++ {
		x, y := s.rng.IntN(size.W), s.rng.IntN(size.H)
		if !s.field.IsContaminated(x, y) {
			continue
		}
		d := neighbours[s.rng.IntN(len(neighbours))]
		nx, ny := x+d[0], y+d[1]
		if !s.grid.InBounds(nx, ny) || s.field.IsContaminated(nx, ny) {
			continue
		}
		s.stamp.EnemyBurst(s.grid.IndexToWorld(nx, ny), s.cfg.Radius)
		s.grown++
	}
}
