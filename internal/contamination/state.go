// Package contamination owns the authoritative per-tile hazard field and the
// circle stamping used by weapon hits and enemy bursts.
package contamination

import (
	"math"

	"github.com/rs/zerolog"

	"contagion/internal/core"
	"contagion/internal/logging"
)

// MinRadius is the smallest stamp radius in world units; smaller values are clamped.
const MinRadius = 1e-4

// TileState is the hazard flag of one tile.
type TileState uint8

const (
	Clean TileState = iota
	Contaminated
)

func (s TileState) String() string {
	if s == Contaminated {
		return "contaminated"
	}
	return "clean"
}

// Option configures a State or Tracker.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

// WithLogger routes diagnostics to log.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// State stores one TileState per grid tile. The backing slice is sized once
// at construction and never resized.
type State struct {
	grid  *core.TileGrid
	tiles []TileState
	count int
	diag  *logging.Once
}

// New allocates a clean field for grid. A nil grid yields an inert State on
// which every mutation is a no-op and every query reports clean.
func New(grid *core.TileGrid, opts ...Option) *State {
	o := buildOptions(opts)
	s := &State{grid: grid, diag: logging.NewOnce(logging.Component(o.log, "contamination"))}
	if grid != nil {
		s.tiles = make([]TileState, grid.Len())
	}
	return s
}

// Grid returns the tile grid the field is laid over.
func (s *State) Grid() *core.TileGrid { return s.grid }

// Tiles exposes the backing slice in row-major order. Callers must not resize it.
func (s *State) Tiles() []TileState { return s.tiles }

// At returns the state of tile (x, y), Clean when out of range.
func (s *State) At(x, y int) TileState {
	if !s.ready() || !s.grid.InBounds(x, y) {
		return Clean
	}
	return s.tiles[s.grid.Index(x, y)]
}

// IsContaminated reports whether tile (x, y) is contaminated. Out-of-range
// coordinates report false.
func (s *State) IsContaminated(x, y int) bool {
	return s.At(x, y) == Contaminated
}

// IsContaminatedWorld resolves p to a tile and reports its state.
func (s *State) IsContaminatedWorld(p core.Point) bool {
	if !s.ready() {
		return false
	}
	x, y, ok := s.grid.WorldToIndex(p)
	return ok && s.IsContaminated(x, y)
}

// ContaminateTile marks a single tile. It returns true when the tile changed.
func (s *State) ContaminateTile(x, y int) bool {
	return s.set(x, y, Contaminated)
}

// ClearContamination cleans a single tile. Out-of-range coordinates are ignored.
func (s *State) ClearContamination(x, y int) bool {
	return s.set(x, y, Clean)
}

// ContaminateCircleWorld marks every tile of the circle stamp at center and
// returns how many tiles changed.
func (s *State) ContaminateCircleWorld(center core.Point, radiusWorld float64) int {
	return s.stampCircle(center, radiusWorld, Contaminated)
}

// ClearCircleWorld cleans every tile of the circle stamp at center and
// returns how many tiles changed.
func (s *State) ClearCircleWorld(center core.Point, radiusWorld float64) int {
	return s.stampCircle(center, radiusWorld, Clean)
}

// ContaminatedCount returns the number of contaminated tiles.
func (s *State) ContaminatedCount() int { return s.count }

// Fraction returns the contaminated share of the logical grid.
func (s *State) Fraction() float64 {
	if len(s.tiles) == 0 {
		return 0
	}
	return float64(s.count) / float64(len(s.tiles))
}

// Reset cleans every tile.
func (s *State) Reset() {
	clear(s.tiles)
	s.count = 0
}

// CircleTiles calls fn for every in-bounds tile covered by the stamp at center.
//
// Membership compares integer offsets from the tile containing center against
// the radius in tile units, so a stamp whose center is not on a tile center is
// rasterized as if it were.
func CircleTiles(grid *core.TileGrid, center core.Point, radiusWorld float64, fn func(x, y int)) {
	if grid == nil || fn == nil {
		return
	}
	if !(radiusWorld > MinRadius) {
		radiusWorld = MinRadius
	}
	cx, cy, _ := grid.WorldToIndex(center)
	r := radiusWorld / grid.TileSize()
	r2 := r * r

	size := grid.Size()
	reach := ceilReach(r, cx, cy, size)
	x0, x1 := max(cx-reach, 0), min(cx+reach, size.W-1)
	y0, y1 := max(cy-reach, 0), min(cy+reach, size.H-1)

	for y := y0; y <= y1; y++ {
		dy := float64(y - cy)
		for x := x0; x <= x1; x++ {
			dx := float64(x - cx)
			if dx*dx+dy*dy > r2 {
				continue
			}
			fn(x, y)
		}
	}
}

// ceilReach returns ceil(r) bounded so that the box never extends further
// than needed to cover the grid from (cx, cy).
func ceilReach(r float64, cx, cy int, size core.Size) int {
	limit := max(abs(cx)+size.W, abs(cy)+size.H)
	c := math.Ceil(r)
	if math.IsNaN(c) || c > float64(limit) {
		return limit
	}
	return int(c)
}

func (s *State) stampCircle(center core.Point, radiusWorld float64, to TileState) int {
	if !s.ready() {
		return 0
	}
	changed := 0
	CircleTiles(s.grid, center, radiusWorld, func(x, y int) {
		if s.set(x, y, to) {
			changed++
		}
	})
	return changed
}

func (s *State) set(x, y int, to TileState) bool {
	if !s.ready() || !s.grid.InBounds(x, y) {
		return false
	}
	i := s.grid.Index(x, y)
	if s.tiles[i] == to {
		return false
	}
	s.tiles[i] = to
	if to == Contaminated {
		s.count++
	} else {
		s.count--
	}
	return true
}

func (s *State) ready() bool {
	if s == nil {
		return false
	}
	if s.grid == nil {
		s.diag.Warn("grid", "contamination grid not initialized; ignoring")
		return false
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
