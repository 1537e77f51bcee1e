// Package mask implements the territory mask: two alpha layers recording
// per-faction paint at sub-tile resolution.
package mask

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"contagion/internal/core"
)

// Channel selects a faction layer.
type Channel uint8

const (
	Player Channel = iota
	Enemy
)

// Other returns the opposing channel.
func (c Channel) Other() Channel {
	if c == Player {
		return Enemy
	}
	return Player
}

func (c Channel) String() string {
	if c == Enemy {
		return "enemy"
	}
	return "player"
}

// Buffers is the read-only view the occupancy sampler consumes.
type Buffers interface {
	PlayerMaskBuffer() *image.Alpha
	EnemyMaskBuffer() *image.Alpha
}

// Painter is the write side used when world events stamp paint.
type Painter interface {
	PaintCircle(ch Channel, center core.Point, radiusWorld float64, clearOther bool)
	ClearCircle(ch Channel, center core.Point, radiusWorld float64)
}

const (
	// MinRadiusPixels is the smallest disc radius rasterized, in pixels.
	MinRadiusPixels = 1e-3
	// MaxPixelsPerTile bounds the mask resolution.
	MaxPixelsPerTile = 64

	// kappa places cubic control points so four segments approximate a circle.
	kappa = 0.5522847498307936
)

// Territory is a CPU-side territory mask covering a tile grid's world bounds.
type Territory struct {
	grid   *core.TileGrid
	ppt    int
	scale  float64
	layers [2]*image.Alpha

	raster  *vector.Rasterizer
	scratch image.Alpha
}

var (
	_ Buffers = (*Territory)(nil)
	_ Painter = (*Territory)(nil)
)

// New allocates both layers at pixelsPerTile resolution, clamped to
// [1, MaxPixelsPerTile]. A nil grid produces a mask without buffers.
func New(grid *core.TileGrid, pixelsPerTile int) *Territory {
	if pixelsPerTile < 1 {
		pixelsPerTile = 1
	}
	if pixelsPerTile > MaxPixelsPerTile {
		pixelsPerTile = MaxPixelsPerTile
	}
	t := &Territory{grid: grid, ppt: pixelsPerTile, raster: vector.NewRasterizer(0, 0)}
	if grid == nil {
		return t
	}
	t.scale = float64(pixelsPerTile) / grid.TileSize()
	size := grid.Size()
	bounds := image.Rect(0, 0, size.W*pixelsPerTile, size.H*pixelsPerTile)
	t.layers[Player] = image.NewAlpha(bounds)
	t.layers[Enemy] = image.NewAlpha(bounds)
	return t
}

// PixelsPerTile returns the mask resolution.
func (t *Territory) PixelsPerTile() int { return t.ppt }

// PlayerMaskBuffer implements Buffers.
func (t *Territory) PlayerMaskBuffer() *image.Alpha { return t.layers[Player] }

// EnemyMaskBuffer implements Buffers.
func (t *Territory) EnemyMaskBuffer() *image.Alpha { return t.layers[Enemy] }

// Buffer returns the layer for ch.
func (t *Territory) Buffer(ch Channel) *image.Alpha {
	if int(ch) >= len(t.layers) {
		return nil
	}
	return t.layers[ch]
}

// WorldToPixel converts a world position into continuous mask coordinates.
func (t *Territory) WorldToPixel(p core.Point) (float64, float64) {
	if t.grid == nil {
		return 0, 0
	}
	local := p.Sub(t.grid.Origin())
	return local.X * t.scale, local.Y * t.scale
}

// AlphaAt returns the paint alpha of ch under world position p, 0 outside the mask.
func (t *Territory) AlphaAt(ch Channel, p core.Point) uint8 {
	buf := t.Buffer(ch)
	if buf == nil {
		return 0
	}
	px, py := t.WorldToPixel(p)
	x, y := int(math.Floor(px)), int(math.Floor(py))
	if !(image.Point{X: x, Y: y}.In(buf.Rect)) {
		return 0
	}
	return buf.Pix[buf.PixOffset(x, y)]
}

// PaintCircle composites an anti-aliased disc into ch. When clearOther is set
// the same disc is erased from the opposing channel.
func (t *Territory) PaintCircle(ch Channel, center core.Point, radiusWorld float64, clearOther bool) {
	cov, at, ok := t.coverage(center, radiusWorld)
	if !ok {
		return
	}
	if dst := t.Buffer(ch); dst != nil {
		composite(dst, cov, at, paintOver)
	}
	if clearOther {
		if dst := t.Buffer(ch.Other()); dst != nil {
			composite(dst, cov, at, erase)
		}
	}
}

// ClearCircle erases an anti-aliased disc from ch.
func (t *Territory) ClearCircle(ch Channel, center core.Point, radiusWorld float64) {
	cov, at, ok := t.coverage(center, radiusWorld)
	if !ok {
		return
	}
	if dst := t.Buffer(ch); dst != nil {
		composite(dst, cov, at, erase)
	}
}

// Reset erases both layers.
func (t *Territory) Reset() {
	for _, l := range t.layers {
		if l != nil {
			clear(l.Pix)
		}
	}
}

// Coverage returns the weighted paint share of ch over every pixel.
func (t *Territory) Coverage(ch Channel) float64 {
	buf := t.Buffer(ch)
	if buf == nil || len(buf.Pix) == 0 {
		return 0
	}
	var sum uint64
	for _, a := range buf.Pix {
		sum += uint64(a)
	}
	return float64(sum) / (255 * float64(len(buf.Pix)))
}

// coverage rasterizes the disc into the scratch layer and returns it with the
// mask-space offset of its origin.
func (t *Territory) coverage(center core.Point, radiusWorld float64) (*image.Alpha, image.Point, bool) {
	if t.grid == nil || t.layers[Player] == nil {
		return nil, image.Point{}, false
	}
	cx, cy := t.WorldToPixel(center)
	r := radiusWorld * t.scale
	if !(r > MinRadiusPixels) {
		r = MinRadiusPixels
	}
	if math.IsNaN(cx) || math.IsNaN(cy) {
		return nil, image.Point{}, false
	}

	full := t.layers[Player].Rect
	box := image.Rect(
		clampCoord(math.Floor(cx-r)), clampCoord(math.Floor(cy-r)),
		clampCoord(math.Ceil(cx+r)), clampCoord(math.Ceil(cy+r)),
	).Intersect(full)
	if box.Empty() {
		return nil, image.Point{}, false
	}

	w, h := box.Dx(), box.Dy()
	if cap(t.scratch.Pix) < w*h {
		t.scratch.Pix = make([]uint8, w*h)
	}
	t.scratch.Pix = t.scratch.Pix[:w*h]
	clear(t.scratch.Pix)
	t.scratch.Stride = w
	t.scratch.Rect = image.Rect(0, 0, w, h)

	ox, oy := cx-float64(box.Min.X), cy-float64(box.Min.Y)
	t.raster.Reset(w, h)
	addCircle(t.raster, float32(ox), float32(oy), float32(r))
	t.raster.Draw(&t.scratch, t.scratch.Rect, image.Opaque, image.Point{})
	return &t.scratch, box.Min, true
}

func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

type blendFunc func(dst, cov uint8) uint8

func paintOver(dst, cov uint8) uint8 {
	return dst + uint8((uint16(cov)*uint16(255-dst)+127)/255)
}

func erase(dst, cov uint8) uint8 {
	return uint8((uint16(dst)*uint16(255-cov) + 127) / 255)
}

func composite(dst, cov *image.Alpha, at image.Point, blend blendFunc) {
	w, h := cov.Rect.Dx(), cov.Rect.Dy()
	for y := 0; y < h; y++ {
		src := cov.Pix[y*cov.Stride : y*cov.Stride+w]
		off := dst.PixOffset(at.X, at.Y+y)
		row := dst.Pix[off : off+w]
		for x, c := range src {
			if c == 0 {
				continue
			}
			row[x] = blend(row[x], c)
		}
	}
}

func clampCoord(v float64) int {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int(v)
}
