package app

import "contagion/internal/core"

// Controller is the arena surface the GUI drives.
type Controller interface {
	core.Sim
	Grid() *core.TileGrid
	WeaponHit(center core.Point, radiusWorld float64) int
	EnemyBurst(center core.Point, radiusWorld float64)
	Steer(dir core.Point, dt float64)
	Regenerate() int
	WeaponReach() float64
	BurstReach() float64
}

// ScreenToWorld maps a screen pixel of the tile view to world space. scale is
// the number of screen pixels per tile.
func ScreenToWorld(g *core.TileGrid, scale, x, y int) core.Point {
	if g == nil {
		return core.Point{}
	}
	if scale <= 0 {
		scale = 1
	}
	k := g.TileSize() / float64(scale)
	return g.Origin().Add(core.Pt(float64(x)*k, float64(y)*k))
}

// SteerVector turns held direction keys into a movement direction. Screen y
// grows downwards, like tile rows.
func SteerVector(up, down, left, right bool) core.Point {
	var d core.Point
	if up {
		d.Y--
	}
	if down {
		d.Y++
	}
	if left {
		d.X--
	}
	if right {
		d.X++
	}
	return d
}
