package core

import (
	"errors"
	"fmt"
	"math"
)

// MinTileSize is the smallest tile edge accepted; smaller values are clamped.
const MinTileSize = 1e-4

// ErrInvalidDimensions is returned when a grid is built with negative dimensions.
var ErrInvalidDimensions = errors.New("grid dimensions must be non-negative")

// TileGrid maps world space onto a row-major grid of square tiles.
type TileGrid struct {
	w, h     int
	tileSize float64
	origin   Point
}

// NewTileGrid builds a grid of w*h tiles whose (0,0) corner sits at origin.
// A non-positive tile size is clamped to MinTileSize.
func NewTileGrid(w, h int, tileSize float64, origin Point) (*TileGrid, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	if !(tileSize > MinTileSize) {
		tileSize = MinTileSize
	}
	return &TileGrid{w: w, h: h, tileSize: tileSize, origin: origin}, nil
}

// Size reports the grid dimensions in tiles.
func (g *TileGrid) Size() Size { return Size{W: g.w, H: g.h} }

// TileSize returns the world-space edge length of a tile.
func (g *TileGrid) TileSize() float64 { return g.tileSize }

// Origin returns the world position of the grid's minimum corner.
func (g *TileGrid) Origin() Point { return g.origin }

// Len returns the number of tiles.
func (g *TileGrid) Len() int { return g.w * g.h }

// Index returns the linear slice index for coordinates (x, y).
func (g *TileGrid) Index(x, y int) int { return y*g.w + x }

// InBounds reports whether (x, y) addresses a tile.
func (g *TileGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Bounds returns the world-space rectangle covered by the grid.
func (g *TileGrid) Bounds() (min, max Point) {
	return g.origin, g.origin.Add(Pt(float64(g.w)*g.tileSize, float64(g.h)*g.tileSize))
}

// WorldToIndex converts a world position into tile indices. Indices are
// floored, so positions left of or above the origin yield negative values.
func (g *TileGrid) WorldToIndex(p Point) (ix, iy int, inBounds bool) {
	local := p.Sub(g.origin)
	ix = floorInt(local.X / g.tileSize)
	iy = floorInt(local.Y / g.tileSize)
	return ix, iy, g.InBounds(ix, iy)
}

// IndexToWorld returns the world position of the center of tile (ix, iy).
func (g *TileGrid) IndexToWorld(ix, iy int) Point {
	return g.origin.Add(Pt((float64(ix)+0.5)*g.tileSize, (float64(iy)+0.5)*g.tileSize))
}

// SnapToNearest resolves p to a tile, clamping out-of-range indices onto the
// grid edge. An empty grid always yields (0, 0).
func (g *TileGrid) SnapToNearest(p Point) (ix, iy int) {
	ix, iy, _ = g.WorldToIndex(p)
	return clampInt(ix, 0, g.w-1), clampInt(iy, 0, g.h-1)
}

func floorInt(v float64) int {
	if math.IsNaN(v) {
		return math.MinInt32
	}
	f := math.Floor(v)
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
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
