package app

import "flag"

// Config represents the command-line parameters for the application.
type Config struct {
	ConfigFile string
	Scale      int
	TPS        int
	Seed       int64
	HUDWidth   int
	TimeScale  float64
	LogLevel   string
	LogFormat  string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 12, TPS: 60, Seed: 42, HUDWidth: 260, TimeScale: 1, LogLevel: "info", LogFormat: "console"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "arena config file (toml, yaml or json)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per tile")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for arena reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels, 0 hides it")
	fs.Float64Var(&c.TimeScale, "timescale", c.TimeScale, "game time multiplier")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console or json)")
}
