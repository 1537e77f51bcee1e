package arena

import (
	"contagion/internal/core"
	pcore "contagion/pkg/core"
)

// Bot plays the player side for headless runs: it walks towards a random
// contaminated tile and fires the weapon whenever the target is in reach.
type Bot struct {
	s        *Session
	rng      *pcore.RNG
	cooldown core.Accumulator
	target   core.Point
	hasTgt   bool
	reach    float64
	attempts int
}

// NewBot drives s, firing at most once per fireInterval scaled seconds.
func NewBot(s *Session, seed int64, fireInterval float64) *Bot {
	return &Bot{
		s:        s,
		rng:      pcore.NewRNG(seed),
		cooldown: core.Accumulator{Interval: fireInterval},
		reach:    s.cfg.WeaponRadius * 2,
		attempts: 32,
	}
}

// Step steers and fires for one frame. Call it before Session.Step.
func (b *Bot) Step(dt core.Delta) {
	if b.s.Outcome() != Ongoing {
		return
	}
	ready := b.cooldown.Advance(dt.Scaled)
	if !b.hasTgt || !b.stillContaminated() {
		b.hasTgt = b.pickTarget()
	}
	if !b.hasTgt {
		return
	}
	d := b.target.Sub(b.s.Player())
	dist2 := d.X*d.X + d.Y*d.Y
	if dist2 > b.reach*b.reach {
		b.s.Steer(d, dt.Scaled)
		return
	}
	if ready {
		b.s.WeaponHit(b.target, b.s.cfg.WeaponRadius)
		b.hasTgt = false
	}
}

func (b *Bot) stillContaminated() bool {
	ix, iy, ok := b.s.grid.WorldToIndex(b.target)
	return ok && b.s.state.IsContaminated(ix, iy)
}

func (b *Bot) pickTarget() bool {
	if b.s.state.ContaminatedCount() == 0 {
		return false
	}
	size := b.s.grid.Size()
	for i := 0; i < b.attempts; i++ {
		x, y := b.rng.IntN(size.W), b.rng.IntN(size.H)
		if b.s.state.IsContaminated(x, y) {
			b.target = b.s.grid.IndexToWorld(x, y)
			return true
		}
	}
	return false
}
