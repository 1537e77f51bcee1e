//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"contagion/internal/core"
	"contagion/internal/render"
	"contagion/internal/ui"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts an arena controller to the ebiten.Game interface.
type Game struct {
	ctl     Controller
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.Clock
	palette []color.RGBA

	scale    int
	hudWidth int
	seed     int64
	log      zerolog.Logger
}

// New constructs a Game for the provided arena.
func New(ctl Controller, cfg *Config, log zerolog.Logger) *Game {
	size := ctl.Size()
	g := &Game{
		ctl:      ctl,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(ctl, cfg.Scale),
		hud:      ui.NewHUD(ctl, cfg.HUDWidth),
		clock:    core.NewClock(),
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		seed:     cfg.Seed,
		log:      log.With().Str("component", "app").Logger(),
	}
	g.clock.SetScale(cfg.TimeScale)
	if p, ok := ctl.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	return g
}

// Reset reinitializes the arena with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.ctl.Reset(seed)
	g.log.Info().Int64("seed", seed).Msg("reset")
}

// Update handles per-frame input and advances the arena.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clock.SetPaused(!g.clock.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.ctl.Regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.clock.SetScale(g.clock.Scale() / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.clock.SetScale(g.clock.Scale() * 2)
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	dt := g.clock.Advance(1 / float64(ebiten.TPS()))
	if !g.clock.Paused() {
		g.handleWorldInput(dt.Scaled)
	}
	g.ctl.Step(dt)
	return nil
}

func (g *Game) handleWorldInput(dt float64) {
	dir := SteerVector(
		ebiten.IsKeyPressed(ebiten.KeyW),
		ebiten.IsKeyPressed(ebiten.KeyS),
		ebiten.IsKeyPressed(ebiten.KeyA),
		ebiten.IsKeyPressed(ebiten.KeyD),
	)
	g.ctl.Steer(dir, dt)

	mx, my := ebiten.CursorPosition()
	if mx < 0 || mx >= g.viewWidth() {
		return
	}
	at := ScreenToWorld(g.ctl.Grid(), g.scale, mx, my)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		n := g.ctl.WeaponHit(at, g.ctl.WeaponReach())
		g.log.Debug().Stringer("at", at).Int("cleared", n).Msg("weapon hit")
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.ctl.EnemyBurst(at, g.ctl.BurstReach())
	}
}

// Draw renders the current arena state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.ctl.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctl.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}

func (g *Game) viewWidth() int { return g.ctl.Size().W * g.scale }
