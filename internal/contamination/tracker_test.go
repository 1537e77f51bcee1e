package contamination

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"contagion/internal/core"
)

type recorder struct {
	events []string
	tiles  [][2]int
}

func (r *recorder) OnEnterContamination(pos core.Point, ix, iy int) {
	r.events = append(r.events, "enter")
	r.tiles = append(r.tiles, [2]int{ix, iy})
}

func (r *recorder) OnExitContamination(pos core.Point, ix, iy int) {
	r.events = append(r.events, "exit")
	r.tiles = append(r.tiles, [2]int{ix, iy})
}

func fixed(p core.Point) PositionFunc {
	return func() (core.Point, bool) { return p, true }
}

func TestTrackerEmitsOncePerTransition(t *testing.T) {
	s := New(newGrid(t, 10, 10, 1))
	tr := NewTracker(s)
	rec := &recorder{}
	tr.Subscribe(rec)

	pos := fixed(core.Pt(3.5, 3.5))
	tr.Update(pos)
	assert.Empty(t, rec.events)

	s.ContaminateCircleWorld(core.Pt(3.5, 3.5), 1)
	tr.Update(pos)
	tr.Update(pos)
	tr.Update(pos)
	assert.Equal(t, []string{"enter"}, rec.events)
	assert.True(t, tr.Inside())

	s.ClearContamination(3, 3)
	tr.Update(pos)
	tr.Update(pos)
	assert.Equal(t, []string{"enter", "exit"}, rec.events)
	assert.Equal(t, [][2]int{{3, 3}, {3, 3}}, rec.tiles)
}

func TestTrackerMovingAcrossTiles(t *testing.T) {
	s := New(newGrid(t, 10, 1, 1))
	s.ContaminateTile(4, 0)
	s.ContaminateTile(5, 0)
	tr := NewTracker(s)
	rec := &recorder{}
	tr.Subscribe(rec)

	for x := 0.5; x < 10; x++ {
		tr.Update(fixed(core.Pt(x, 0.5)))
	}
	assert.Equal(t, []string{"enter", "exit"}, rec.events)
	assert.Equal(t, [][2]int{{4, 0}, {6, 0}}, rec.tiles)
}

func TestTrackerOutOfBoundsReadsClean(t *testing.T) {
	s := New(newGrid(t, 2, 2, 1))
	s.ContaminateCircleWorld(core.Pt(1, 1), 5)
	tr := NewTracker(s)
	rec := &recorder{}
	tr.Subscribe(rec)

	tr.Update(fixed(core.Pt(0.5, 0.5)))
	tr.Update(fixed(core.Pt(-3, -3)))
	assert.Equal(t, []string{"enter", "exit"}, rec.events)
	assert.Equal(t, [2]int{-3, -3}, rec.tiles[1])
}

func TestTrackerNoOpWithoutDependencies(t *testing.T) {
	rec := &recorder{}

	tr := NewTracker(nil)
	tr.Subscribe(rec)
	tr.Update(fixed(core.Pt(1, 1)))

	s := New(newGrid(t, 2, 2, 1))
	s.ContaminateTile(0, 0)
	tr = NewTracker(s)
	tr.Subscribe(rec)
	tr.Update(nil)
	tr.Update(PositionFunc(nil))
	tr.Update(PositionFunc(func() (core.Point, bool) { return core.Pt(0.5, 0.5), false }))

	assert.Empty(t, rec.events)
	assert.False(t, tr.Inside())
}

func TestTrackerUnsubscribe(t *testing.T) {
	s := New(newGrid(t, 2, 2, 1))
	tr := NewTracker(s)
	rec := &recorder{}
	sub := tr.Subscribe(rec)
	assert.Equal(t, 1, tr.Listeners())
	sub.Cancel()
	assert.Zero(t, tr.Listeners())

	s.ContaminateTile(0, 0)
	tr.Update(fixed(core.Pt(0.5, 0.5)))
	assert.Empty(t, rec.events)
	assert.True(t, tr.Inside())
}

func TestTrackerListenerFuncs(t *testing.T) {
	s := New(newGrid(t, 2, 2, 1))
	tr := NewTracker(s)
	entered := 0
	tr.Subscribe(ListenerFuncs{Enter: func(core.Point, int, int) { entered++ }})

	s.ContaminateTile(1, 1)
	p := fixed(core.Pt(1.5, 1.5))
	tr.Update(p)
	s.Reset()
	tr.Update(p)
	assert.Equal(t, 1, entered)
}

func TestTrackerResetIsSilent(t *testing.T) {
	s := New(newGrid(t, 2, 2, 1))
	s.ContaminateTile(0, 0)
	tr := NewTracker(s)
	rec := &recorder{}
	tr.Subscribe(rec)
	tr.Update(fixed(core.Pt(0.5, 0.5)))
	tr.Reset()
	assert.False(t, tr.Inside())
	assert.Equal(t, []string{"enter"}, rec.events)
}
