package report

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contagion/internal/arena"
	"contagion/internal/occupancy"
)

func smallConfig() arena.Config {
	cfg := arena.DefaultConfig()
	cfg.Width, cfg.Height = 24, 16
	cfg.PixelsPerTile = 2
	return cfg
}

func TestRunSortedAndDeterministic(t *testing.T) {
	opts := Options{Runs: 4, Ticks: 60, TPS: 30, Seed: 10, Workers: 3, FireRate: 0.2}
	a := Run(smallConfig(), opts, zerolog.Nop())
	b := Run(smallConfig(), opts, zerolog.Nop())

	require.Len(t, a, 4)
	for i, r := range a {
		require.NoError(t, r.Err)
		assert.Equal(t, int64(10+i), r.Seed)
		assert.Equal(t, b[i].Stats, r.Stats)
		assert.Positive(t, r.Stats.Ticks)
	}
}

func TestRunReportsConstructionErrors(t *testing.T) {
	cfg := smallConfig()
	cfg.Width = -1
	res := Run(cfg, Options{Runs: 2, Ticks: 1}, zerolog.Nop())
	require.Len(t, res, 2)
	for _, r := range res {
		assert.Error(t, r.Err)
	}
	assert.Equal(t, 2, Summarize(res).Failed)
}

func TestRunNoRuns(t *testing.T) {
	assert.Nil(t, Run(smallConfig(), Options{}, zerolog.Nop()))
}

func TestSummarize(t *testing.T) {
	res := []Result{
		{Seed: 1, Stats: arena.Stats{Outcome: arena.Won, Elapsed: 10, Sample: occupancy.Sample{CurrentPlayer: 0.8, CurrentEnemy: 0.1}}},
		{Seed: 2, Stats: arena.Stats{Outcome: arena.Lost, Elapsed: 20, Sample: occupancy.Sample{CurrentPlayer: 0.2, CurrentEnemy: 0.7}}},
		{Seed: 3, Err: errors.New("boom")},
	}
	s := Summarize(res)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, 1, s.Won)
	assert.Equal(t, 1, s.Lost)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 0.5, s.MeanPlayer, 1e-9)
	assert.InDelta(t, 0.4, s.MeanEnemy, 1e-9)
	assert.InDelta(t, 15, s.MeanElapsed, 1e-9)
}

func TestStringContainsRows(t *testing.T) {
	res := []Result{
		{Seed: 7, Stats: arena.Stats{Outcome: arena.Won, Wave: 3}},
		{Seed: 8, Err: errors.New("bad grid")},
	}
	out := String(res, 1500*time.Millisecond)
	assert.Contains(t, out, "seed")
	assert.Contains(t, out, "won")
	assert.Contains(t, out, "error: bad grid")
	assert.Contains(t, out, "2 runs in 1.5s")
}
