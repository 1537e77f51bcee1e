package contamination

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contagion/internal/core"
	"contagion/internal/logging"
)

func newGrid(t *testing.T, w, h int, tile float64) *core.TileGrid {
	t.Helper()
	g, err := core.NewTileGrid(w, h, tile, core.Point{})
	require.NoError(t, err)
	return g
}

func contaminatedSet(s *State) map[[2]int]bool {
	out := map[[2]int]bool{}
	size := s.Grid().Size()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if s.IsContaminated(x, y) {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func TestContaminateCircleNineTiles(t *testing.T) {
	s := New(newGrid(t, 10, 10, 1))
	changed := s.ContaminateCircleWorld(core.Pt(5, 5), 1.5)

	want := map[[2]int]bool{}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			want[[2]int{5 + dx, 5 + dy}] = true
		}
	}
	assert.Equal(t, 9, changed)
	assert.Equal(t, want, contaminatedSet(s))
	assert.Equal(t, 9, s.ContaminatedCount())
	assert.InDelta(t, 0.09, s.Fraction(), 1e-12)
}

func TestCircleUsesTileOffsetsNotStampCenter(t *testing.T) {
	s := New(newGrid(t, 10, 10, 1))
	s.ContaminateCircleWorld(core.Pt(5.9, 5.9), 1)

	want := map[[2]int]bool{
		{5, 5}: true, {4, 5}: true, {6, 5}: true, {5, 4}: true, {5, 6}: true,
	}
	assert.Equal(t, want, contaminatedSet(s))
}

func TestCenterTileAlwaysContaminated(t *testing.T) {
	g, err := core.NewTileGrid(16, 12, 0.75, core.Pt(-3, 2))
	require.NoError(t, err)
	radii := []float64{1e-9, 0.01, 0.3, 0.75, 1.1, 2.6, 5}
	for _, r := range radii {
		for y := 0; y < 12; y++ {
			for x := 0; x < 16; x++ {
				s := New(g)
				c := g.IndexToWorld(x, y).Add(core.Pt(0.3, -0.2))
				s.ContaminateCircleWorld(c, r)
				ix, iy, ok := g.WorldToIndex(c)
				require.True(t, ok)
				require.True(t, s.IsContaminated(ix, iy), "radius %v at %v", r, c)
			}
		}
	}
}

func TestClearCircleReversesContaminate(t *testing.T) {
	s := New(newGrid(t, 20, 20, 0.5))
	centers := []core.Point{core.Pt(5, 5), core.Pt(0.1, 9.9), core.Pt(-1, 3), core.Pt(7.26, 2.01)}
	for _, c := range centers {
		for _, r := range []float64{0.2, 1, 2.75} {
			s.ContaminateCircleWorld(c, r)
			s.ClearCircleWorld(c, r)
			require.Zero(t, s.ContaminatedCount(), "center %v radius %v", c, r)
			require.Empty(t, contaminatedSet(s))
		}
	}
}

func TestStampIsIdempotent(t *testing.T) {
	s := New(newGrid(t, 10, 10, 1))
	first := s.ContaminateCircleWorld(core.Pt(2, 2), 2)
	again := s.ContaminateCircleWorld(core.Pt(2, 2), 2)
	assert.Positive(t, first)
	assert.Zero(t, again)
	assert.Equal(t, first, s.ContaminatedCount())

	cleared := s.ClearCircleWorld(core.Pt(2, 2), 2)
	assert.Equal(t, first, cleared)
	assert.Zero(t, s.ClearCircleWorld(core.Pt(2, 2), 2))
}

func TestStampClipsAtGridEdge(t *testing.T) {
	s := New(newGrid(t, 4, 4, 1))
	s.ContaminateCircleWorld(core.Pt(0.5, 0.5), 1)
	want := map[[2]int]bool{{0, 0}: true, {1, 0}: true, {0, 1}: true}
	assert.Equal(t, want, contaminatedSet(s))
}

func TestStampCenteredOffGridReachesInside(t *testing.T) {
	s := New(newGrid(t, 4, 4, 1))
	s.ContaminateCircleWorld(core.Pt(-0.5, 1.5), 1)
	assert.Equal(t, map[[2]int]bool{{0, 1}: true}, contaminatedSet(s))
}

func TestHugeRadiusCoversGrid(t *testing.T) {
	s := New(newGrid(t, 6, 5, 1))
	s.ContaminateCircleWorld(core.Pt(3, 3), math.Inf(1))
	assert.Equal(t, 30, s.ContaminatedCount())
	s.ClearCircleWorld(core.Pt(-1e12, 1e12), 1e13)
	assert.Zero(t, s.ContaminatedCount())
}

func TestDegenerateRadiusStampsCenterOnly(t *testing.T) {
	for _, r := range []float64{0, -4, math.NaN()} {
		s := New(newGrid(t, 5, 5, 1))
		assert.Equal(t, 1, s.ContaminateCircleWorld(core.Pt(2.5, 2.5), r))
		assert.True(t, s.IsContaminated(2, 2))
	}
}

func TestOutOfRangeQueriesAreSafe(t *testing.T) {
	s := New(newGrid(t, 3, 3, 1))
	s.ContaminateCircleWorld(core.Pt(1.5, 1.5), 5)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {math.MaxInt32, 1}} {
		assert.False(t, s.IsContaminated(p[0], p[1]))
		assert.False(t, s.ClearContamination(p[0], p[1]))
		assert.False(t, s.ContaminateTile(p[0], p[1]))
	}
	assert.Equal(t, 9, s.ContaminatedCount())
}

func TestPointOperations(t *testing.T) {
	s := New(newGrid(t, 3, 3, 1))
	assert.True(t, s.ContaminateTile(1, 2))
	assert.False(t, s.ContaminateTile(1, 2))
	assert.True(t, s.IsContaminatedWorld(core.Pt(1.2, 2.9)))
	assert.True(t, s.ClearContamination(1, 2))
	assert.False(t, s.ClearContamination(1, 2))
	assert.Zero(t, s.ContaminatedCount())
}

func TestResetCleansEverything(t *testing.T) {
	s := New(newGrid(t, 8, 8, 1))
	s.ContaminateCircleWorld(core.Pt(4, 4), 3)
	require.Positive(t, s.ContaminatedCount())
	s.Reset()
	assert.Zero(t, s.ContaminatedCount())
	assert.Len(t, s.Tiles(), 64)
	for _, v := range s.Tiles() {
		assert.Equal(t, Clean, v)
	}
}

func TestNilGridIsInertAndLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	s := New(nil, WithLogger(logging.New(&buf, "debug", logging.FormatJSON)))
	for i := 0; i < 4; i++ {
		assert.Zero(t, s.ContaminateCircleWorld(core.Pt(1, 1), 2))
		assert.False(t, s.IsContaminated(0, 0))
	}
	assert.Zero(t, s.Fraction())
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestTileStateString(t *testing.T) {
	assert.Equal(t, "clean", Clean.String())
	assert.Equal(t, "contaminated", Contaminated.String())
}
