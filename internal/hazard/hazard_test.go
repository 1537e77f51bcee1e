package hazard

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contagion/internal/contamination"
	"contagion/internal/core"
	"contagion/internal/sequence"
	pcore "contagion/pkg/core"
)

type stampRecorder struct {
	state   *contamination.State
	centers []core.Point
	radii   []float64
}

func (r *stampRecorder) EnemyBurst(center core.Point, radius float64) {
	r.centers = append(r.centers, center)
	r.radii = append(r.radii, radius)
	if r.state != nil {
		r.state.ContaminateCircleWorld(center, radius)
	}
}

func testGrid(t *testing.T, w, h int) *core.TileGrid {
	t.Helper()
	g, err := core.NewTileGrid(w, h, 2, core.Pt(-10, -10))
	require.NoError(t, err)
	return g
}

func TestBurstFollowsCadence(t *testing.T) {
	g := testGrid(t, 10, 10)
	rec := &stampRecorder{}
	b := NewBurst(BurstConfig{Cadence: sequence.Cadence{Start: 2, Every: 3}, Count: 2, RadiusMin: 1, RadiusMax: 3},
		g, pcore.NewRNG(7), rec, zerolog.Nop())
	q := sequence.New(zerolog.Nop())
	b.Attach(q)

	for i := 0; i < 8; i++ {
		q.RegenerateAllZones()
	}
	// due at 2, 5, 8
	assert.Equal(t, 6, b.Spawned())
	require.Len(t, rec.centers, 6)
	for i, c := range rec.centers {
		ix, iy, ok := g.WorldToIndex(c)
		require.True(t, ok)
		assert.Equal(t, g.IndexToWorld(ix, iy), c, "burst must land on a tile center")
		assert.GreaterOrEqual(t, rec.radii[i], 1.0)
		assert.Less(t, rec.radii[i], 3.0)
	}
}

func TestBurstDeterministicForSeed(t *testing.T) {
	run := func() []core.Point {
		rec := &stampRecorder{}
		b := NewBurst(BurstConfig{Cadence: sequence.Cadence{Start: 1, Every: 1}, Count: 3, RadiusMin: 1, RadiusMax: 1},
			testGrid(t, 16, 16), pcore.NewRNG(99), rec, zerolog.Nop())
		for seq := 1; seq <= 4; seq++ {
			b.OnResetSequence(seq)
		}
		return rec.centers
	}
	assert.Equal(t, run(), run())
}

func TestBurstDetach(t *testing.T) {
	rec := &stampRecorder{}
	b := NewBurst(BurstConfig{Cadence: sequence.Cadence{Start: 1, Every: 1}, Count: 1, RadiusMin: 1, RadiusMax: 1},
		testGrid(t, 4, 4), pcore.NewRNG(1), rec, zerolog.Nop())
	q := sequence.New(zerolog.Nop())
	b.Attach(q)
	b.Attach(q)
	assert.Equal(t, 1, q.Subscribers())

	q.RegenerateAllZones()
	b.Detach()
	q.RegenerateAllZones()
	assert.Equal(t, 1, b.Spawned())
	assert.Zero(t, q.Subscribers())
}

func TestBurstWithoutDependencies(t *testing.T) {
	b := NewBurst(BurstConfig{Cadence: sequence.Cadence{Start: 1, Every: 1}, Count: 1}, nil, pcore.NewRNG(1), nil, zerolog.Nop())
	assert.NotPanics(t, func() { b.OnResetSequence(1) })
	assert.Zero(t, b.Spawned())
}

func TestSpreadWaitsForWave(t *testing.T) {
	g := testGrid(t, 6, 6)
	state := contamination.New(g)
	state.ContaminateTile(3, 3)
	rec := &stampRecorder{state: state}
	s := NewSpread(SpreadConfig{ActiveFrom: 2, Interval: 0.5, Attempts: 64, Radius: 0.5}, g, state, pcore.NewRNG(3), rec, zerolog.Nop())
	q := sequence.New(zerolog.Nop())
	s.Attach(q)

	s.Tick(1)
	assert.Zero(t, s.Grown())

	q.RegenerateAllZones()
	q.RegenerateAllZones()
	require.True(t, s.Active())
	for i := 0; i < 10; i++ {
		s.Tick(0.5)
	}
	assert.Positive(t, s.Grown())
	assert.Equal(t, 1+s.Grown(), state.ContaminatedCount())

	for _, c := range rec.centers {
		ix, iy, ok := g.WorldToIndex(c)
		require.True(t, ok)
		assert.True(t, state.IsContaminated(ix, iy))
	}
}

func TestSpreadNeedsContaminationToGrow(t *testing.T) {
	g := testGrid(t, 4, 4)
	state := contamination.New(g)
	rec := &stampRecorder{state: state}
	s := NewSpread(SpreadConfig{ActiveFrom: 1, Interval: 0.1, Attempts: 8, Radius: 0.5}, g, state, pcore.NewRNG(3), rec, zerolog.Nop())
	s.OnResetSequence(1)
	for i := 0; i < 10; i++ {
		s.Tick(0.1)
	}
	assert.Zero(t, s.Grown())
	assert.Empty(t, rec.centers)
}

func TestSpreadResetDeactivates(t *testing.T) {
	s := NewSpread(SpreadConfig{ActiveFrom: 1}, nil, nil, pcore.NewRNG(1), nil, zerolog.Nop())
	s.OnResetSequence(3)
	assert.True(t, s.Active())
	s.Reset()
	assert.False(t, s.Active())
}
