package occupancy

import (
	"context"
	"math"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"contagion/internal/logging"
)

const instrumentationName = "contagion/internal/occupancy"

var (
	playerAttrs = metric.WithAttributeSet(attribute.NewSet(attribute.String("channel", "player")))
	enemyAttrs  = metric.WithAttributeSet(attribute.NewSet(attribute.String("channel", "enemy")))
)

// instruments mirrors the displayed ratios into atomics so an exporter
// goroutine can observe them without touching the tick-owned Sample.
type instruments struct {
	samples metric.Int64Counter
	gauge   metric.Float64ObservableGauge

	player atomic.Uint64
	enemy  atomic.Uint64
}

func newInstruments(m metric.Meter, diag *logging.Once) *instruments {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}
	in := &instruments{}
	var err error
	in.samples, err = m.Int64Counter(
		"occupancy.samples",
		metric.WithDescription("Sampling passes over the territory mask"),
	)
	if err != nil {
		diag.Warn("metrics", "occupancy sample counter unavailable: "+err.Error())
		in.samples = noop.Int64Counter{}
	}
	in.gauge, err = m.Float64ObservableGauge(
		"occupancy.ratio",
		metric.WithDescription("Displayed occupancy ratio per faction"),
		metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
			o.Observe(math.Float64frombits(in.player.Load()), playerAttrs)
			o.Observe(math.Float64frombits(in.enemy.Load()), enemyAttrs)
			return nil
		}),
	)
	if err != nil {
		diag.Warn("metrics", "occupancy ratio gauge unavailable: "+err.Error())
	}
	return in
}

func (in *instruments) recordSample() {
	in.samples.Add(context.Background(), 1)
}

func (in *instruments) publish(s Sample) {
	in.player.Store(math.Float64bits(s.CurrentPlayer))
	in.enemy.Store(math.Float64bits(s.CurrentEnemy))
}
