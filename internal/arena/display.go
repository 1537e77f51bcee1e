package arena

import (
	"image/color"

	"contagion/internal/mask"
)

const (
	displayTerritoryMask = 0x03
	displayContaminated  = 0x04
	displayPlayer        = 0x08

	// claimAlpha is the mask alpha above which a tile center counts as claimed.
	claimAlpha = 128
)

// Territory values carried in the low bits of a display cell.
const (
	TerritoryNeutral uint8 = iota
	TerritoryPlayer
	TerritoryEnemy
)

var arenaPalette = buildArenaPalette()

// Palette exposes the color palette used for rendering Cells.
func (s *Session) Palette() []color.RGBA {
	return arenaPalette
}

// Cells implements core.Sim. Each value encodes territory, contamination and
// the player marker of one tile.
func (s *Session) Cells() []uint8 { return s.display }

// DecodeCell splits a display value into its parts.
func DecodeCell(v uint8) (territory uint8, contaminated, player bool) {
	return v & displayTerritoryMask, v&displayContaminated != 0, v&displayPlayer != 0
}

func buildArenaPalette() []color.RGBA {
	palette := make([]color.RGBA, 16)
	for i := range palette {
		territory, contaminated, player := DecodeCell(uint8(i))
		palette[i] = toRGBA(paletteColorFor(territory, contaminated, player))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func paletteColorFor(territory uint8, contaminated, player bool) color.NRGBA {
	if player {
		return color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	}
	var base color.NRGBA
	switch territory {
	case TerritoryPlayer:
		base = color.NRGBA{R: 40, G: 110, B: 190, A: 255}
	case TerritoryEnemy:
		base = color.NRGBA{R: 150, G: 40, B: 60, A: 255}
	default:
		base = color.NRGBA{R: 28, G: 30, B: 36, A: 255}
	}
	if contaminated {
		return blendColors(base, color.NRGBA{R: 120, G: 220, B: 60, A: 255}, 0.7)
	}
	return base
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}

func encodeDisplayValue(territory uint8, contaminated, player bool) uint8 {
	value := territory & displayTerritoryMask
	if contaminated {
		value |= displayContaminated
	}
	if player {
		value |= displayPlayer
	}
	return value
}

func (s *Session) rebuildDisplay() {
	size := s.grid.Size()
	px, py, _ := s.grid.WorldToIndex(s.player)
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			center := s.grid.IndexToWorld(x, y)
			territory := TerritoryNeutral
			p := s.mask.AlphaAt(mask.Player, center)
			e := s.mask.AlphaAt(mask.Enemy, center)
			switch {
			case p >= claimAlpha && p >= e:
				territory = TerritoryPlayer
			case e >= claimAlpha:
				territory = TerritoryEnemy
			}
			s.display[s.grid.Index(x, y)] = encodeDisplayValue(territory, s.state.IsContaminated(x, y), x == px && y == py)
		}
	}
}
