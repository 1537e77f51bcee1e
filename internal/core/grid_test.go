package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTileGridRejectsNegativeDimensions(t *testing.T) {
	_, err := NewTileGrid(-1, 4, 1, Point{})
	require.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewTileGrid(4, -1, 1, Point{})
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestNewTileGridClampsTileSize(t *testing.T) {
	for _, size := range []float64{0, -3, math.NaN()} {
		g, err := NewTileGrid(2, 2, size, Point{})
		require.NoError(t, err)
		assert.Equal(t, MinTileSize, g.TileSize())
	}
}

func TestWorldToIndexFloorsTowardNegativeInfinity(t *testing.T) {
	g, err := NewTileGrid(10, 10, 2, Pt(-4, -4))
	require.NoError(t, err)

	cases := []struct {
		p      Point
		ix, iy int
		in     bool
	}{
		{Pt(-4, -4), 0, 0, true},
		{Pt(-4.01, -3.99), -1, 0, false},
		{Pt(-2.5, 0.1), 0, 2, true},
		{Pt(15.99, 15.99), 9, 9, true},
		{Pt(16, 0), 10, 2, false},
		{Pt(-5.9, -6.1), -1, -2, false},
	}
	for _, tc := range cases {
		ix, iy, in := g.WorldToIndex(tc.p)
		assert.Equal(t, tc.ix, ix, "ix for %v", tc.p)
		assert.Equal(t, tc.iy, iy, "iy for %v", tc.p)
		assert.Equal(t, tc.in, in, "inBounds for %v", tc.p)
	}
}

func TestIndexToWorldRoundTrip(t *testing.T) {
	g, err := NewTileGrid(13, 7, 0.37, Pt(3.3, -8.1))
	require.NoError(t, err)
	for y := 0; y < 7; y++ {
		for x := 0; x < 13; x++ {
			ix, iy, in := g.WorldToIndex(g.IndexToWorld(x, y))
			require.True(t, in)
			require.Equal(t, x, ix)
			require.Equal(t, y, iy)
		}
	}
}

func TestIndexToWorldReturnsTileCenter(t *testing.T) {
	g, err := NewTileGrid(4, 4, 2, Pt(10, 20))
	require.NoError(t, err)
	assert.Equal(t, Pt(11, 21), g.IndexToWorld(0, 0))
	assert.Equal(t, Pt(17, 25), g.IndexToWorld(3, 2))
}

func TestSnapToNearestClamps(t *testing.T) {
	g, err := NewTileGrid(5, 3, 1, Point{})
	require.NoError(t, err)

	ix, iy := g.SnapToNearest(Pt(-10, 1.5))
	assert.Equal(t, 0, ix)
	assert.Equal(t, 1, iy)

	ix, iy = g.SnapToNearest(Pt(99, 99))
	assert.Equal(t, 4, ix)
	assert.Equal(t, 2, iy)

	ix, iy = g.SnapToNearest(Pt(2.2, 0.4))
	assert.Equal(t, 2, ix)
	assert.Equal(t, 0, iy)
}

func TestEmptyGridSnapsToOrigin(t *testing.T) {
	g, err := NewTileGrid(0, 0, 1, Point{})
	require.NoError(t, err)
	ix, iy := g.SnapToNearest(Pt(3, 3))
	assert.Equal(t, 0, ix)
	assert.Equal(t, 0, iy)
	assert.False(t, g.InBounds(0, 0))
}

func TestBoundsCoversAllTiles(t *testing.T) {
	g, err := NewTileGrid(8, 4, 0.5, Pt(1, 1))
	require.NoError(t, err)
	lo, hi := g.Bounds()
	assert.Equal(t, Pt(1, 1), lo)
	assert.Equal(t, Pt(5, 3), hi)
}
