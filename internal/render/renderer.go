//go:build ebiten

package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads palette-indexed cell data into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(max(w, 1), max(h, 1))
	return gp
}

// Blit uploads the provided cells into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h || len(cells) == 0 {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

// MaskPainter draws the territory layers as a translucent overlay.
type MaskPainter struct {
	w, h       int
	ppt        int
	img        *ebiten.Image
	buf        []byte
	PlayerTint color.RGBA
	EnemyTint  color.RGBA
}

// NewMaskPainter allocates a painter for layers of w*h pixels covering tiles
// of ppt pixels each.
func NewMaskPainter(w, h, ppt int) *MaskPainter {
	return &MaskPainter{
		w: w, h: h, ppt: max(ppt, 1),
		img:        ebiten.NewImage(max(w, 1), max(h, 1)),
		buf:        make([]byte, 4*w*h),
		PlayerTint: color.RGBA{R: 70, G: 150, B: 255, A: 110},
		EnemyTint:  color.RGBA{R: 255, G: 60, B: 90, A: 110},
	}
}

// Blit composes both layers and draws them scaled so one tile spans scale
// screen pixels.
func (mp *MaskPainter) Blit(dst *ebiten.Image, player, enemy *image.Alpha, scale int) {
	if mp.w == 0 || mp.h == 0 {
		return
	}
	fillTerritoryRGBA(mp.buf, mp.w, mp.h, player, enemy, mp.PlayerTint, mp.EnemyTint)
	mp.img.WritePixels(mp.buf)

	k := float64(scale) / float64(mp.ppt)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, k)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(mp.img, op)
}
