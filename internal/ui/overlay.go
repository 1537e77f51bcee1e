//go:build ebiten

package ui

import (
	"image/color"

	"contagion/internal/core"
	"contagion/internal/mask"
	"contagion/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type territoryProvider interface {
	Mask() *mask.Territory
}

type playerProvider interface {
	Grid() *core.TileGrid
	Player() core.Point
	Inside() bool
}

type weaponProvider interface {
	WeaponReach() float64
}

// Overlay draws optional visuals on top of the tile view: the territory mask,
// the player marker with weapon reach, and tile grid lines.
type Overlay struct {
	sim   core.Sim
	scale int

	showMask   bool
	showPlayer bool
	showGrid   bool

	painter *render.MaskPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showMask: true, showPlayer: true}
	if provider, ok := sim.(territoryProvider); ok {
		if m := provider.Mask(); m != nil && m.PlayerMaskBuffer() != nil {
			b := m.PlayerMaskBuffer().Rect
			o.painter = render.NewMaskPainter(b.Dx(), b.Dy(), m.PixelsPerTile())
		}
	}
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showMask = !o.showMask
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showPlayer = !o.showPlayer
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showGrid = !o.showGrid
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showMask && o.painter != nil {
		if provider, ok := o.sim.(territoryProvider); ok {
			m := provider.Mask()
			o.painter.Blit(screen, m.PlayerMaskBuffer(), m.EnemyMaskBuffer(), scale)
		}
	}
	if o.showGrid {
		o.drawGrid(screen, size, scale)
	}
	if o.showPlayer {
		if provider, ok := o.sim.(playerProvider); ok {
			o.drawPlayer(screen, provider, scale)
		}
	}
}

func (o *Overlay) drawGrid(screen *ebiten.Image, size core.Size, scale int) {
	if scale < 4 {
		return
	}
	col := color.RGBA{R: 255, G: 255, B: 255, A: 24}
	w, h := float32(size.W*scale), float32(size.H*scale)
	for x := 0; x <= size.W; x++ {
		fx := float32(x * scale)
		vector.StrokeLine(screen, fx, 0, fx, h, 1, col, false)
	}
	for y := 0; y <= size.H; y++ {
		fy := float32(y * scale)
		vector.StrokeLine(screen, 0, fy, w, fy, 1, col, false)
	}
}

func (o *Overlay) drawPlayer(screen *ebiten.Image, provider playerProvider, scale int) {
	g := provider.Grid()
	if g == nil {
		return
	}
	k := float64(scale) / g.TileSize()
	origin := g.Origin()
	p := provider.Player().Sub(origin).Scale(k)

	ring := color.RGBA{R: 250, G: 250, B: 250, A: 230}
	if provider.Inside() {
		ring = color.RGBA{R: 160, G: 255, B: 80, A: 255}
	}
	vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(scale)*0.9, 2, ring, true)

	if wp, ok := o.sim.(weaponProvider); ok {
		mx, my := ebiten.CursorPosition()
		r := float32(wp.WeaponReach() * k)
		vector.StrokeCircle(screen, float32(mx), float32(my), r, 1, color.RGBA{R: 70, G: 150, B: 255, A: 160}, true)
	}
}
