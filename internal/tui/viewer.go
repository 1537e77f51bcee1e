// Package tui renders an arena round in a terminal with tcell.
package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"contagion/internal/arena"
	"contagion/internal/core"
)

const (
	cellWidth = 2
	// steerPulse is how long one key press pushes the player, in game seconds.
	steerPulse = 0.15
)

// Viewer draws a session into a tcell screen and maps keys to arena actions.
type Viewer struct {
	s      *arena.Session
	screen tcell.Screen
	clock  *core.Clock
	seed   int64
	steer  core.Point
	log    zerolog.Logger
}

// New binds s to screen. The screen must already be initialized.
func New(s *arena.Session, screen tcell.Screen, seed int64, log zerolog.Logger) *Viewer {
	return &Viewer{s: s, screen: screen, clock: core.NewClock(), seed: seed, log: log.With().Str("component", "tui").Logger()}
}

// Paused reports whether game time is frozen.
func (v *Viewer) Paused() bool { return v.clock.Paused() }

// HandleKey applies one key press. It reports false when the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.steer = core.Pt(0, -1)
	case tcell.KeyDown:
		v.steer = core.Pt(0, 1)
	case tcell.KeyLeft:
		v.steer = core.Pt(-1, 0)
	case tcell.KeyRight:
		v.steer = core.Pt(1, 0)
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'w':
		v.steer = core.Pt(0, -1)
	case 's':
		v.steer = core.Pt(0, 1)
	case 'a':
		v.steer = core.Pt(-1, 0)
	case 'd':
		v.steer = core.Pt(1, 0)
	case ' ', 'f':
		if !v.clock.Paused() {
			n := v.s.WeaponHit(v.s.Player(), v.s.WeaponReach())
			v.log.Debug().Int("cleared", n).Msg("weapon hit")
		}
	case 'b':
		if !v.clock.Paused() {
			v.s.EnemyBurst(v.s.Player(), v.s.BurstReach())
		}
	case 'g':
		v.s.Regenerate()
	case 'p':
		v.clock.SetPaused(!v.clock.Paused())
	case 'r':
		v.s.Reset(v.seed)
	}
	return true
}

// Step advances the session by dt wall seconds, applying any pending steer
// pulse.
func (v *Viewer) Step(dt float64) {
	d := v.clock.Advance(dt)
	if v.steer != (core.Point{}) && d.Scaled > 0 {
		v.s.Steer(v.steer, steerPulse)
		v.steer = core.Point{}
	}
	v.s.Step(d)
}

// Draw renders the tiles, the player and the status lines.
func (v *Viewer) Draw() {
	v.screen.Clear()
	size := v.s.Size()
	cells := v.s.Cells()
	palette := v.s.Palette()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			c := cells[y*size.W+x]
			col := palette[min(int(c), len(palette)-1)]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
			glyph := [cellWidth]rune{' ', ' '}
			if _, contaminated, player := arena.DecodeCell(c); player {
				glyph = [cellWidth]rune{'(', ')'}
				style = style.Foreground(tcell.ColorBlack)
			} else if contaminated {
				glyph = [cellWidth]rune{'░', '░'}
				style = style.Foreground(tcell.NewRGBColor(200, 255, 120))
			}
			for i, r := range glyph {
				v.screen.SetContent(x*cellWidth+i, y, r, nil, style)
			}
		}
	}

	lines := v.s.StatusLines()
	player, enemy := v.s.Occupancy()
	lines = append([]string{bar("player", player), bar("enemy ", enemy)}, lines...)
	if v.clock.Paused() {
		lines = append(lines, "PAUSED")
	}
	lines = append(lines, "wasd/arrows move  space fire  b burst  g wave  p pause  r reset  q quit")
	for i, line := range lines {
		putString(v.screen, 0, size.H+1+i, line, tcell.StyleDefault)
	}
	v.screen.Show()
}

// Run drives the viewer at tps frames per second until ctx ends or the user
// quits.
func (v *Viewer) Run(ctx context.Context, tps int) error {
	tps = max(tps, 1)
	frame := time.Second / time.Duration(tps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	go pollEvents(v.screen, events, done)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			v.Step(frame.Seconds())
			v.Draw()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func bar(label string, ratio float64) string {
	const width = 30
	if math.IsNaN(ratio) {
		ratio = 0
	}
	ratio = max(0, min(1, ratio))
	n := int(ratio*width + 0.5)
	b := make([]rune, 0, width)
	for i := 0; i < width; i++ {
		if i < n {
			b = append(b, '█')
		} else {
			b = append(b, '·')
		}
	}
	return fmt.Sprintf("%s [%s] %5.1f%%", label, string(b), ratio*100)
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
