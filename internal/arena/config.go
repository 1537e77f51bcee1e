package arena

import (
	"strconv"

	"contagion/internal/core"
	"contagion/internal/hazard"
	"contagion/internal/occupancy"
	"contagion/internal/sequence"
)

// Judge holds the thresholds that end a round.
type Judge struct {
	WinRatio    float64 `mapstructure:"win_ratio"`
	LoseRatio   float64 `mapstructure:"lose_ratio"`
	MaxExposure float64 `mapstructure:"max_exposure"`
}

// Config controls arena dimensions, weapons, hazards and judging.
type Config struct {
	Width    int     `mapstructure:"width"`
	Height   int     `mapstructure:"height"`
	TileSize float64 `mapstructure:"tile_size"`
	OriginX  float64 `mapstructure:"origin_x"`
	OriginY  float64 `mapstructure:"origin_y"`

	PixelsPerTile int `mapstructure:"pixels_per_tile"`

	Seed int64 `mapstructure:"seed"`

	PlayerSpeed  float64 `mapstructure:"player_speed"`
	WeaponRadius float64 `mapstructure:"weapon_radius"`
	BurstRadius  float64 `mapstructure:"burst_radius"`
	// WaveInterval is the number of scaled seconds between automatic zone
	// regenerations. Zero leaves regeneration to the caller.
	WaveInterval float64 `mapstructure:"wave_interval"`

	Judge     Judge               `mapstructure:"judge"`
	Occupancy occupancy.Config    `mapstructure:"occupancy"`
	Burst     hazard.BurstConfig  `mapstructure:"burst"`
	Spread    hazard.SpreadConfig `mapstructure:"spread"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         64,
		Height:        48,
		TileSize:      1,
		PixelsPerTile: 8,
		Seed:          1337,
		PlayerSpeed:   12,
		WeaponRadius:  2.5,
		BurstRadius:   3,
		WaveInterval:  12,
		Judge: Judge{
			WinRatio:    0.6,
			LoseRatio:   0.6,
			MaxExposure: 4,
		},
		Occupancy: occupancy.DefaultConfig(),
		Burst: hazard.BurstConfig{
			Cadence:   sequence.Cadence{Start: 1, Every: 1},
			Count:     3,
			RadiusMin: 2,
			RadiusMax: 4,
		},
		Spread: hazard.SpreadConfig{
			ActiveFrom: 3,
			Interval:   0.5,
			Attempts:   16,
			Radius:     0.5,
		},
	}
}

// Origin returns the world position of the grid's lower corner.
func (c Config) Origin() core.Point { return core.Pt(c.OriginX, c.OriginY) }

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	setInt(cfg, "w", &c.Width, 0)
	setInt(cfg, "h", &c.Height, 0)
	setFloat(cfg, "tile", &c.TileSize, 0)
	setInt(cfg, "ppt", &c.PixelsPerTile, 1)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	setFloat(cfg, "player_speed", &c.PlayerSpeed, 0)
	setFloat(cfg, "weapon_radius", &c.WeaponRadius, 0)
	setFloat(cfg, "burst_radius", &c.BurstRadius, 0)
	setFloat(cfg, "wave_interval", &c.WaveInterval, 0)

	setFloat(cfg, "win_ratio", &c.Judge.WinRatio, 0)
	setFloat(cfg, "lose_ratio", &c.Judge.LoseRatio, 0)
	setFloat(cfg, "max_exposure", &c.Judge.MaxExposure, 0)

	setBool(cfg, "weighted_alpha", &c.Occupancy.WeightedAlpha)
	setInt(cfg, "sample_stride", &c.Occupancy.SampleStride, 1)
	setFloat(cfg, "update_interval", &c.Occupancy.UpdateInterval, 0)
	setBool(cfg, "normalize", &c.Occupancy.NormalizeTo100)
	setFloat(cfg, "smooth_speed", &c.Occupancy.SmoothSpeed, 0)
	setBool(cfg, "unscaled", &c.Occupancy.UseUnscaledTime)

	setInt(cfg, "burst_start", &c.Burst.Cadence.Start, 0)
	setInt(cfg, "burst_every", &c.Burst.Cadence.Every, 0)
	setInt(cfg, "burst_count", &c.Burst.Count, 0)
	setFloat(cfg, "burst_radius_min", &c.Burst.RadiusMin, 0)
	setFloat(cfg, "burst_radius_max", &c.Burst.RadiusMax, 0)

	setInt(cfg, "spread_from", &c.Spread.ActiveFrom, 0)
	setFloat(cfg, "spread_interval", &c.Spread.Interval, 0)
	setInt(cfg, "spread_attempts", &c.Spread.Attempts, 0)
	setFloat(cfg, "spread_radius", &c.Spread.Radius, 0)
	return c
}

func setInt(cfg map[string]string, key string, dst *int, floor int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= floor {
			*dst = parsed
		}
	}
}

func setFloat(cfg map[string]string, key string, dst *float64, floor float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= floor {
			*dst = parsed
		}
	}
}

func setBool(cfg map[string]string, key string, dst *bool) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			*dst = parsed
		}
	}
}
