// Package hazard holds the enemy generators that key their spawn cadence off
// the reset sequencer.
package hazard

import (
	"github.com/rs/zerolog"

	"contagion/internal/core"
	"contagion/internal/event"
	"contagion/internal/sequence"
	pcore "contagion/pkg/core"
)

// Stamper applies an enemy burst to the logical grid and the territory mask.
type Stamper interface {
	EnemyBurst(center core.Point, radiusWorld float64)
}

// Field is the read side of the contamination state.
type Field interface {
	IsContaminated(x, y int) bool
	ContaminatedCount() int
}

// BurstConfig controls wave-triggered enemy bursts.
type BurstConfig struct {
	Cadence   sequence.Cadence `mapstructure:"cadence"`
	Count     int              `mapstructure:"count"`
	RadiusMin float64          `mapstructure:"radius_min"`
	RadiusMax float64          `mapstructure:"radius_max"`
}

// Burst spawns Count enemy bursts on every due sequence value.
type Burst struct {
	cfg     BurstConfig
	grid    *core.TileGrid
	rng     *pcore.RNG
	stamp   Stamper
	sub     event.Subscription
	spawned int
	log     zerolog.Logger
}

// NewBurst constructs a detached Burst generator.
func NewBurst(cfg BurstConfig, grid *core.TileGrid, rng *pcore.RNG, stamp Stamper, log zerolog.Logger) *Burst {
	if cfg.RadiusMax < cfg.RadiusMin {
		cfg.RadiusMax = cfg.RadiusMin
	}
	return &Burst{cfg: cfg, grid: grid, rng: rng, stamp: stamp, log: log.With().Str("component", "hazard.burst").Logger()}
}

// Attach subscribes to q, replacing any earlier subscription.
func (b *Burst) Attach(q *sequence.Sequencer) {
	b.Detach()
	if q != nil {
		b.sub = q.Subscribe(b)
	}
}

// Detach cancels the sequencer subscription.
func (b *Burst) Detach() {
	b.sub.Cancel()
	b.sub = event.Subscription{}
}

// Spawned returns the number of bursts issued so far.
func (b *Burst) Spawned() int { return b.spawned }

// OnResetSequence implements sequence.Subscriber.
func (b *Burst) OnResetSequence(seq int) {
	if !b.cfg.Cadence.Due(seq) || b.grid == nil || b.stamp == nil || b.grid.Len() == 0 {
		return
	}
	for i := 0; i < b.cfg.Count; i++ {
		center := randomTileCenter(b.grid, b.rng)
		radius := b.rng.Range(b.cfg.RadiusMin, b.cfg.RadiusMax)
		b.stamp.EnemyBurst(center, radius)
		b.spawned++
		b.log.Debug().Int("seq", seq).Stringer("center", center).Float64("radius", radius).Msg("enemy burst")
	}
}

// randomTileCenter draws a world point inside the grid and snaps it onto the
// center of a valid tile.
func randomTileCenter(g *core.TileGrid, rng *pcore.RNG) core.Point {
	lo, hi := g.Bounds()
	p := core.Pt(rng.Range(lo.X, hi.X), rng.Range(lo.Y, hi.Y))
	ix, iy := g.SnapToNearest(p)
	return g.IndexToWorld(ix, iy)
}
