// Package arena wires the tile grid, contamination field, territory mask,
// occupancy engine, reset sequencer and hazard generators into one playable
// round.
package arena

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"contagion/internal/contamination"
	"contagion/internal/core"
	"contagion/internal/event"
	"contagion/internal/hazard"
	"contagion/internal/mask"
	"contagion/internal/occupancy"
	"contagion/internal/sequence"
	pcore "contagion/pkg/core"
)

// Name is the registry key of the arena session.
const Name = "arena"

// edgeInset keeps clamped positions this fraction of a tile inside the far
// edges.
const edgeInset = 1e-6

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session and component logs to log.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithMeter publishes occupancy metrics through m.
func WithMeter(m metric.Meter) Option {
	return func(s *Session) { s.meter = m }
}

// WithSequencer attaches the hazards to a sequencer owned by the caller
// instead of a private one. A shared sequencer is driven by its owner: the
// session neither restarts it on Reset nor advances it from the wave timer.
func WithSequencer(q *sequence.Sequencer) Option {
	return func(s *Session) {
		s.seq = q
		s.sharedSeq = q != nil
	}
}

// Stats summarizes a round so far.
type Stats struct {
	Ticks    int
	Elapsed  float64
	Wave     int
	Bursts   int
	Grown    int
	Cleared  int
	Hits     int
	Entries  int
	Exposure float64
	Outcome  Outcome
	Sample   occupancy.Sample
	Fraction float64
}

// Session is one arena round. It is not safe for concurrent use; frontends
// drive it from their update loop.
type Session struct {
	cfg Config

	grid    *core.TileGrid
	state   *contamination.State
	tracker *contamination.Tracker
	mask    *mask.Territory
	engine  *occupancy.Engine
	seq     *sequence.Sequencer
	burst   *hazard.Burst
	spread  *hazard.Spread
	rng     *pcore.RNG
	waves   core.Accumulator

	sharedSeq bool
	entries   event.Subscription

	player   core.Point
	exposure float64
	outcome  Outcome
	stats    Stats
	display  []uint8

	log   zerolog.Logger
	meter metric.Meter
}

// New builds a session and resets it with cfg.Seed.
func New(cfg Config, opts ...Option) (*Session, error) {
	s := &Session{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.log = s.log.With().Str("component", "arena").Logger()

	grid, err := core.NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize, cfg.Origin())
	if err != nil {
		return nil, fmt.Errorf("arena grid: %w", err)
	}
	s.grid = grid
	s.state = contamination.New(grid, contamination.WithLogger(s.log))
	s.tracker = contamination.NewTracker(s.state, contamination.WithLogger(s.log))
	s.mask = mask.New(grid, cfg.PixelsPerTile)

	engineOpts := []occupancy.Option{occupancy.WithLogger(s.log)}
	if s.meter != nil {
		engineOpts = append(engineOpts, occupancy.WithMeter(s.meter))
	}
	s.engine = occupancy.New(cfg.Occupancy, s.mask, engineOpts...)

	if s.seq == nil {
		s.seq = sequence.New(s.log)
	}
	s.rng = pcore.NewRNG(cfg.Seed)
	s.burst = hazard.NewBurst(cfg.Burst, grid, s.rng, s, s.log)
	s.spread = hazard.NewSpread(cfg.Spread, grid, s.state, s.rng, s, s.log)
	s.burst.Attach(s.seq)
	s.spread.Attach(s.seq)
	s.entries = s.tracker.Subscribe(contamination.ListenerFuncs{
		Enter: func(pos core.Point, ix, iy int) {
			s.stats.Entries++
			s.log.Debug().Stringer("pos", pos).Int("x", ix).Int("y", iy).Msg("player entered contamination")
		},
		Exit: func(pos core.Point, ix, iy int) {
			s.log.Debug().Stringer("pos", pos).Int("x", ix).Int("y", iy).Msg("player left contamination")
		},
	})

	s.display = make([]uint8, grid.Len())
	s.Reset(cfg.Seed)
	return s, nil
}

// Name implements core.Sim.
func (s *Session) Name() string { return Name }

// Size implements core.Sim.
func (s *Session) Size() core.Size { return s.grid.Size() }

// Config returns the configuration the session was built with.
func (s *Session) Config() Config { return s.cfg }

// Grid exposes the tile grid.
func (s *Session) Grid() *core.TileGrid { return s.grid }

// State exposes the contamination field.
func (s *Session) State() *contamination.State { return s.state }

// Mask exposes the territory mask.
func (s *Session) Mask() *mask.Territory { return s.mask }

// Engine exposes the occupancy engine.
func (s *Session) Engine() *occupancy.Engine { return s.engine }

// Sequencer exposes the wave counter.
func (s *Session) Sequencer() *sequence.Sequencer { return s.seq }

// Player returns the tracked player position.
func (s *Session) Player() core.Point { return s.player }

// Position implements contamination.PositionProvider.
func (s *Session) Position() (core.Point, bool) { return s.player, true }

// Inside reports whether the player currently stands on contamination.
func (s *Session) Inside() bool { return s.tracker.Inside() }

// Exposure returns how long the player has been continuously contaminated.
func (s *Session) Exposure() float64 { return s.exposure }

// Outcome returns the judge's verdict after the last step.
func (s *Session) Outcome() Outcome { return s.outcome }

// Stats returns a snapshot of the round counters.
func (s *Session) Stats() Stats {
	st := s.stats
	st.Wave = s.seq.Current()
	st.Bursts = s.burst.Spawned()
	st.Grown = s.spread.Grown()
	st.Exposure = s.exposure
	st.Outcome = s.outcome
	st.Sample = s.engine.Sample()
	st.Fraction = s.state.Fraction()
	return st
}

// OnContamination subscribes l to the player's enter/exit transitions.
func (s *Session) OnContamination(l contamination.Listener) event.Subscription {
	return s.tracker.Subscribe(l)
}

// Close detaches the hazards from the sequencer and drops the session's own
// tracker listener. It is safe to call more than once.
func (s *Session) Close() {
	s.burst.Detach()
	s.spread.Detach()
	s.entries.Cancel()
	s.entries = event.Subscription{}
}

// Reset clears the field and the mask. With a private sequencer it also
// restarts the wave counter and opens wave 1.
func (s *Session) Reset(seed int64) {
	s.cfg.Seed = seed
	s.rng.Reseed(seed)
	s.state.Reset()
	s.mask.Reset()
	s.tracker.Reset()
	s.engine.Reset()
	s.spread.Reset()
	s.waves = core.Accumulator{Interval: s.cfg.WaveInterval}
	s.player = s.centerOfGrid()
	s.exposure = 0
	s.outcome = Ongoing
	s.stats = Stats{}

	if !s.sharedSeq {
		s.seq.Restart()
		s.seq.RegenerateAllZones()
	} else {
		s.spread.OnResetSequence(s.seq.Current())
	}
	s.tracker.Update(s)
	s.engine.SampleNow()
	s.engine.Snap()
	s.rebuildDisplay()
	s.log.Info().Int64("seed", seed).Int("w", s.grid.Size().W).Int("h", s.grid.Size().H).Msg("arena reset")
}

// Regenerate opens the next wave.
func (s *Session) Regenerate() int {
	return s.seq.RegenerateAllZones()
}

// WeaponHit decontaminates a disc and claims it for the player. It returns
// the number of tiles cleared.
func (s *Session) WeaponHit(center core.Point, radiusWorld float64) int {
	n := s.state.ClearCircleWorld(center, radiusWorld)
	s.mask.PaintCircle(mask.Player, center, radiusWorld, true)
	s.stats.Hits++
	s.stats.Cleared += n
	return n
}

// EnemyBurst contaminates a disc and claims it for the enemy. It implements
// hazard.Stamper.
func (s *Session) EnemyBurst(center core.Point, radiusWorld float64) {
	s.state.ContaminateCircleWorld(center, radiusWorld)
	s.mask.PaintCircle(mask.Enemy, center, radiusWorld, true)
}

// MovePlayer places the player at p, clamped to the arena. The far edges are
// exclusive so the player always maps to a valid tile.
func (s *Session) MovePlayer(p core.Point) {
	lo, hi := s.grid.Bounds()
	inset := s.grid.TileSize() * edgeInset
	maxX := math.Max(lo.X, hi.X-inset)
	maxY := math.Max(lo.Y, hi.Y-inset)
	s.player = core.Pt(clampFloat(p.X, lo.X, maxX), clampFloat(p.Y, lo.Y, maxY))
}

// Steer moves the player along dir at PlayerSpeed for dt seconds. dir is
// normalized when longer than one.
func (s *Session) Steer(dir core.Point, dt float64) {
	l := math.Hypot(dir.X, dir.Y)
	if l == 0 || math.IsNaN(l) || !(dt > 0) {
		return
	}
	if l > 1 {
		dir = dir.Scale(1 / l)
	}
	s.MovePlayer(s.player.Add(dir.Scale(s.cfg.PlayerSpeed * dt)))
}

// Step advances the round by one frame.
func (s *Session) Step(dt core.Delta) {
	s.stats.Ticks++
	if s.outcome == Ongoing {
		s.stats.Elapsed += dt.Scaled
		if !s.sharedSeq && s.cfg.WaveInterval > 0 && s.waves.Advance(dt.Scaled) {
			s.Regenerate()
		}
		s.spread.Tick(dt.Scaled)
		s.tracker.Update(s)
		if s.tracker.Inside() {
			s.exposure += dt.Scaled
		} else {
			s.exposure = 0
		}
	}
	s.engine.Tick(dt)
	if s.outcome == Ongoing {
		s.outcome = s.cfg.Judge.Decide(s.engine.Sample(), s.exposure)
		if s.outcome != Ongoing {
			s.log.Info().Stringer("outcome", s.outcome).Int("wave", s.seq.Current()).Float64("elapsed", s.stats.Elapsed).Msg("round over")
		}
	}
	s.rebuildDisplay()
}

func (s *Session) centerOfGrid() core.Point {
	lo, hi := s.grid.Bounds()
	return core.Pt((lo.X+hi.X)/2, (lo.Y+hi.Y)/2)
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	core.Register(Name, func(cfg map[string]string) (core.Sim, error) {
		s, err := New(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
