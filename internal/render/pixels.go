package render

import (
	"image"
	"image/color"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillTerritoryRGBA tints buf with the two territory layers. Each layer's
// alpha scales its tint; where both overlap the enemy tint is drawn over the
// player tint. Output is premultiplied, as ebiten expects. Layers whose bounds
// differ from the buffer are ignored.
func fillTerritoryRGBA(buf []byte, w, h int, player, enemy *image.Alpha, playerTint, enemyTint color.RGBA) {
	clear(buf[:4*w*h])
	fillLayer(buf, w, h, player, playerTint)
	fillLayer(buf, w, h, enemy, enemyTint)
}

func fillLayer(buf []byte, w, h int, layer *image.Alpha, tint color.RGBA) {
	if layer == nil || layer.Rect.Dx() != w || layer.Rect.Dy() != h {
		return
	}
	for y := 0; y < h; y++ {
		row := layer.Pix[y*layer.Stride : y*layer.Stride+w]
		for x, a := range row {
			if a == 0 {
				continue
			}
			k := uint32(a) * uint32(tint.A) / 255
			base := (y*w + x) * 4
			inv := 255 - k
			buf[base+0] = uint8((uint32(tint.R)*k + uint32(buf[base+0])*inv) / 255)
			buf[base+1] = uint8((uint32(tint.G)*k + uint32(buf[base+1])*inv) / 255)
			buf[base+2] = uint8((uint32(tint.B)*k + uint32(buf[base+2])*inv) / 255)
			buf[base+3] = uint8(k + uint32(buf[base+3])*inv/255)
		}
	}
}
