package contamination

import (
	"contagion/internal/core"
	"contagion/internal/event"
	"contagion/internal/logging"
)

// PositionProvider supplies the tracked world position once per tick. It
// reports false while no position is available yet.
type PositionProvider interface {
	Position() (core.Point, bool)
}

// PositionFunc adapts a function to PositionProvider.
type PositionFunc func() (core.Point, bool)

// Position implements PositionProvider.
func (f PositionFunc) Position() (core.Point, bool) {
	if f == nil {
		return core.Point{}, false
	}
	return f()
}

// Listener receives transitions of the tracked position into and out of
// contaminated tiles.
type Listener interface {
	OnEnterContamination(pos core.Point, ix, iy int)
	OnExitContamination(pos core.Point, ix, iy int)
}

// ListenerFuncs adapts a pair of optional callbacks to Listener.
type ListenerFuncs struct {
	Enter func(pos core.Point, ix, iy int)
	Exit  func(pos core.Point, ix, iy int)
}

// OnEnterContamination implements Listener.
func (l ListenerFuncs) OnEnterContamination(pos core.Point, ix, iy int) {
	if l.Enter != nil {
		l.Enter(pos, ix, iy)
	}
}

// OnExitContamination implements Listener.
func (l ListenerFuncs) OnExitContamination(pos core.Point, ix, iy int) {
	if l.Exit != nil {
		l.Exit(pos, ix, iy)
	}
}

// Transition is one enter or exit event.
type Transition struct {
	Entered bool
	Pos     core.Point
	X, Y    int
}

// Tracker detects per-tick changes of the contamination state under a tracked
// position and fans them out to listeners.
type Tracker struct {
	state  *State
	inside bool
	tile   [2]int
	subs   event.Listeners[Transition]
	diag   *logging.Once
}

// NewTracker constructs a Tracker over state. The tracked position starts out
// as clean.
func NewTracker(state *State, opts ...Option) *Tracker {
	o := buildOptions(opts)
	return &Tracker{state: state, diag: logging.NewOnce(logging.Component(o.log, "contamination.tracker"))}
}

// Subscribe registers l for enter/exit events.
func (t *Tracker) Subscribe(l Listener) event.Subscription {
	if l == nil {
		return event.Subscription{}
	}
	return t.subs.Subscribe(func(tr Transition) {
		if tr.Entered {
			l.OnEnterContamination(tr.Pos, tr.X, tr.Y)
			return
		}
		l.OnExitContamination(tr.Pos, tr.X, tr.Y)
	})
}

// Listeners reports the number of active subscribers.
func (t *Tracker) Listeners() int { return t.subs.Len() }

// Inside reports the contamination state observed on the last update.
func (t *Tracker) Inside() bool { return t.inside }

// Tile returns the tile resolved on the last successful update.
func (t *Tracker) Tile() (ix, iy int) { return t.tile[0], t.tile[1] }

// Update polls the provider once. When the contamination state under the
// position differs from the previous update exactly one Transition is emitted.
// A missing state, grid or position makes the call a silent no-op.
func (t *Tracker) Update(p PositionProvider) {
	if t.state == nil || t.state.Grid() == nil {
		t.diag.Warn("grid", "tracker has no contamination grid; skipping")
		return
	}
	if p == nil {
		t.diag.Warn("position", "tracker has no position provider; skipping")
		return
	}
	pos, ok := p.Position()
	if !ok {
		return
	}
	ix, iy, _ := t.state.Grid().WorldToIndex(pos)
	t.tile = [2]int{ix, iy}
	now := t.state.IsContaminated(ix, iy)
	if now == t.inside {
		return
	}
	t.inside = now
	t.subs.Emit(Transition{Entered: now, Pos: pos, X: ix, Y: iy})
}

// Reset forgets the previous observation without emitting anything.
func (t *Tracker) Reset() {
	t.inside = false
	t.tile = [2]int{}
}
