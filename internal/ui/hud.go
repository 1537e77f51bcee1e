//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"contagion/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type occupancyProvider interface {
	Occupancy() (player, enemy float64)
}

type statusProvider interface {
	StatusLines() []string
}

var (
	panelBG    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	trackColor = color.RGBA{R: 40, G: 42, B: 50, A: 255}
	playerFill = color.RGBA{R: 70, G: 150, B: 255, A: 255}
	enemyFill  = color.RGBA{R: 255, G: 60, B: 90, A: 255}
)

// HUD renders the occupancy bars, round status and tuning controls to the
// right of the arena view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []control
	setter       core.FloatParameterSetter
	panelOffsetX int
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0)}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = newControls(provider.ParameterControls())
		h.layoutControls()
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.setter = setter
	}
	return h
}

// Update refreshes control values from the simulation and handles clicks on
// the panel buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		return
	}
	snap := provider.Parameters()
	for i := range h.controls {
		h.controls[i].refresh(snap)
	}
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelBG)
	h.drawStatus()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	pt := image.Pt(mx-h.panelOffsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pt.In(c.minus):
			c.adjust(h.setter, -1)
			return
		case pt.In(c.plus):
			c.adjust(h.setter, 1)
			return
		}
	}
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := panelPadding
	if provider, ok := h.sim.(occupancyProvider); ok {
		player, enemy := provider.Occupancy()
		h.drawBar(y, "Player", player, playerFill)
		y += barBlock
		h.drawBar(y, "Enemy", enemy, enemyFill)
		y += barBlock
	}
	if provider, ok := h.sim.(statusProvider); ok {
		for _, line := range provider.StatusLines() {
			y += statusLine
			text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		}
	}
}

func (h *HUD) drawBar(top int, label string, ratio float64, fill color.RGBA) {
	if math.IsNaN(ratio) {
		ratio = 0
	}
	ratio = math.Max(0, math.Min(1, ratio))
	text.Draw(h.panel, fmt.Sprintf("%s %5.1f%%", label, ratio*100), basicfont.Face7x13, panelPadding, top+headerBaseline, textColor)
	x := float32(panelPadding)
	y := float32(top + headerBaseline + 6)
	w := float32(h.width - 2*panelPadding)
	vector.DrawFilledRect(h.panel, x, y, w, barHeight, trackColor, false)
	vector.DrawFilledRect(h.panel, x, y, w*float32(ratio), barHeight, fill, false)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, "Tuning", face, panelPadding, controlsHeaderY, textColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsHeaderY+lineHeight, dimColor)
		return
	}
	for i := range h.controls {
		c := &h.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.panel, c.spec.Label, face, panelPadding, y, textColor)

		value := c.text()
		valueColor := textColor
		if !c.known {
			valueColor = dimColor
		}
		x := c.minus.Min.X - buttonGap - text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, x, y, valueColor)

		_, canDec := c.next(-1)
		_, canInc := c.next(1)
		h.drawButton(c.minus, "-", canDec && h.setter != nil)
		h.drawButton(c.plus, "+", canInc && h.setter != nil)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := plus.Sub(image.Pt(buttonGap+buttonSize, 0))
		h.controls[i].top = top
		h.controls[i].minus = minus
		h.controls[i].plus = plus
	}
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	barHeight      = 8
	barBlock       = headerBaseline + 20
	statusLine     = 16
	statusHeight   = 2*barBlock + 5*statusLine + 16

	controlsHeaderY = panelPadding + statusHeight + headerBaseline
	controlsTop     = controlsHeaderY + 14
)
