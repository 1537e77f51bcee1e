// Package config loads arena settings from an optional file and the
// environment with viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"contagion/internal/arena"
)

// EnvPrefix prefixes every environment override, e.g. CONTAGION_OCCUPANCY_SAMPLE_STRIDE.
const EnvPrefix = "CONTAGION"

// Load reads the arena configuration. Defaults come from arena.DefaultConfig;
// the file at path (toml, yaml or json, chosen by extension) and then the
// environment override them. An empty path skips the file.
func Load(path string) (arena.Config, error) {
	v := viper.New()
	setDefaults(v, arena.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return arena.Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg arena.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return arena.Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d arena.Config) {
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("tile_size", d.TileSize)
	v.SetDefault("origin_x", d.OriginX)
	v.SetDefault("origin_y", d.OriginY)
	v.SetDefault("pixels_per_tile", d.PixelsPerTile)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("player_speed", d.PlayerSpeed)
	v.SetDefault("weapon_radius", d.WeaponRadius)
	v.SetDefault("burst_radius", d.BurstRadius)
	v.SetDefault("wave_interval", d.WaveInterval)

	v.SetDefault("judge.win_ratio", d.Judge.WinRatio)
	v.SetDefault("judge.lose_ratio", d.Judge.LoseRatio)
	v.SetDefault("judge.max_exposure", d.Judge.MaxExposure)

	v.SetDefault("occupancy.weighted_alpha", d.Occupancy.WeightedAlpha)
	v.SetDefault("occupancy.sample_stride", d.Occupancy.SampleStride)
	v.SetDefault("occupancy.update_interval", d.Occupancy.UpdateInterval)
	v.SetDefault("occupancy.normalize_to_100", d.Occupancy.NormalizeTo100)
	v.SetDefault("occupancy.smooth_speed", d.Occupancy.SmoothSpeed)
	v.SetDefault("occupancy.use_unscaled_time", d.Occupancy.UseUnscaledTime)

	v.SetDefault("burst.cadence.start", d.Burst.Cadence.Start)
	v.SetDefault("burst.cadence.every", d.Burst.Cadence.Every)
	v.SetDefault("burst.count", d.Burst.Count)
	v.SetDefault("burst.radius_min", d.Burst.RadiusMin)
	v.SetDefault("burst.radius_max", d.Burst.RadiusMax)

	v.SetDefault("spread.active_from", d.Spread.ActiveFrom)
	v.SetDefault("spread.interval", d.Spread.Interval)
	v.SetDefault("spread.attempts", d.Spread.Attempts)
	v.SetDefault("spread.radius", d.Spread.Radius)
}
