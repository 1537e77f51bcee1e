// Package occupancy turns the territory mask into the smoothed per-faction
// occupancy ratios that drive the win/loss judge.
package occupancy

import (
	"image"
	"math"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"contagion/internal/core"
	"contagion/internal/logging"
)

const (
	MinStride         = 1
	MaxStride         = 16
	MaxUpdateInterval = 1.0
)

// Source is the read side of the territory mask.
type Source interface {
	PlayerMaskBuffer() *image.Alpha
	EnemyMaskBuffer() *image.Alpha
}

// Config controls sampling cadence, aggregation and display smoothing.
type Config struct {
	WeightedAlpha   bool    `mapstructure:"weighted_alpha"`
	SampleStride    int     `mapstructure:"sample_stride"`
	UpdateInterval  float64 `mapstructure:"update_interval"`
	NormalizeTo100  bool    `mapstructure:"normalize_to_100"`
	SmoothSpeed     float64 `mapstructure:"smooth_speed"`
	UseUnscaledTime bool    `mapstructure:"use_unscaled_time"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		WeightedAlpha:   true,
		SampleStride:    4,
		UpdateInterval:  0.1,
		NormalizeTo100:  false,
		SmoothSpeed:     0.5,
		UseUnscaledTime: true,
	}
}

// Sanitize clamps every field into its supported range.
func (c Config) Sanitize() Config {
	c.SampleStride = clampStride(c.SampleStride)
	if !(c.UpdateInterval > 0) {
		c.UpdateInterval = 0
	}
	if c.UpdateInterval > MaxUpdateInterval {
		c.UpdateInterval = MaxUpdateInterval
	}
	if !(c.SmoothSpeed > 0) {
		c.SmoothSpeed = 0
	}
	return c
}

// Sample is the engine state after the most recent tick.
type Sample struct {
	RawPlayer, RawEnemy         float64
	TargetPlayer, TargetEnemy   float64
	CurrentPlayer, CurrentEnemy float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes diagnostics to log.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.diag = logging.NewOnce(logging.Component(log, "occupancy")) }
}

// WithMeter publishes engine metrics through m instead of the global meter.
func WithMeter(m metric.Meter) Option {
	return func(e *Engine) { e.meter = m }
}

// Engine samples a Source on a polled timer and smooths the displayed ratios
// every tick.
type Engine struct {
	cfg    Config
	src    Source
	timer  core.Accumulator
	sample Sample
	taken  uint64

	diag    *logging.Once
	meter   metric.Meter
	metrics *instruments
}

// New constructs an Engine. src may be nil and bound later with SetSource.
func New(cfg Config, src Source, opts ...Option) *Engine {
	e := &Engine{src: src, diag: logging.NewOnce(zerolog.Nop())}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.SetConfig(cfg)
	e.metrics = newInstruments(e.meter, e.diag)
	return e
}

// Config returns the sanitized configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetConfig replaces the configuration. The sampling timer restarts.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg.Sanitize()
	e.timer = core.Accumulator{Interval: e.cfg.UpdateInterval}
}

// SetSource binds the mask the engine reads from.
func (e *Engine) SetSource(src Source) { e.src = src }

// Sample returns the latest raw, target and displayed ratios.
func (e *Engine) Sample() Sample { return e.sample }

// Samples returns how many sampling passes have run.
func (e *Engine) Samples() uint64 { return e.taken }

// Tick advances the sampling timer and the display smoothing by one frame.
func (e *Engine) Tick(dt core.Delta) {
	step := dt.Pick(e.cfg.UseUnscaledTime)
	if math.IsNaN(step) || step < 0 {
		step = 0
	}
	if e.timer.Advance(step) {
		e.SampleNow()
	}
	e.smooth(step)
}

// SampleNow runs one full sampling pass immediately and updates the targets.
// Displayed values are left to the smoothing step.
func (e *Engine) SampleNow() {
	var player, enemy *image.Alpha
	if e.src == nil {
		e.diag.Warn("mask", "territory mask not bound; occupancy reads as zero")
	} else {
		player, enemy = e.src.PlayerMaskBuffer(), e.src.EnemyMaskBuffer()
		if !readable(player) {
			e.diag.Warn("player_buffer", "player mask buffer unreadable; channel reads as zero")
		}
		if !readable(enemy) {
			e.diag.Warn("enemy_buffer", "enemy mask buffer unreadable; channel reads as zero")
		}
	}
	s := &e.sample
	s.RawPlayer = SampleRatio(player, e.cfg.SampleStride, e.cfg.WeightedAlpha)
	s.RawEnemy = SampleRatio(enemy, e.cfg.SampleStride, e.cfg.WeightedAlpha)
	s.TargetPlayer, s.TargetEnemy = Normalize(s.RawPlayer, s.RawEnemy, e.cfg.NormalizeTo100)
	e.taken++
	e.metrics.recordSample()
}

// Snap jumps the displayed values to their targets.
func (e *Engine) Snap() {
	e.sample.CurrentPlayer = e.sample.TargetPlayer
	e.sample.CurrentEnemy = e.sample.TargetEnemy
	e.metrics.publish(e.sample)
}

// Reset zeroes every ratio and restarts the sampling timer.
func (e *Engine) Reset() {
	e.sample = Sample{}
	e.timer.Reset()
	e.metrics.publish(e.sample)
}

func (e *Engine) smooth(dt float64) {
	s := &e.sample
	if e.cfg.SmoothSpeed <= 0 {
		s.CurrentPlayer, s.CurrentEnemy = s.TargetPlayer, s.TargetEnemy
	} else {
		limit := e.cfg.SmoothSpeed * dt
		s.CurrentPlayer = MoveTowards(s.CurrentPlayer, s.TargetPlayer, limit)
		s.CurrentEnemy = MoveTowards(s.CurrentEnemy, s.TargetEnemy, limit)
	}
	e.metrics.publish(*s)
}
