package arena

import (
	"math"

	"contagion/internal/core"
)

// Parameters reports the live configuration grouped for the HUD panel.
func (s *Session) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	occ := s.engine.Config()
	groups := []core.ParameterGroup{
		{
			Name: "Arena",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.FloatParam("tile", "Tile size", s.grid.TileSize()),
				core.IntParam("ppt", "Mask pixels per tile", s.mask.PixelsPerTile()),
				core.Int64Param("seed", "Seed", cfg.Seed),
			},
		},
		{
			Name: "Player",
			Params: []core.Parameter{
				core.FloatParam("player_speed", "Player speed", cfg.PlayerSpeed),
				core.FloatParam("weapon_radius", "Weapon radius", cfg.WeaponRadius),
			},
		},
		{
			Name: "Hazards",
			Params: []core.Parameter{
				core.FloatParam("wave_interval", "Wave interval", cfg.WaveInterval),
				core.FloatParam("burst_radius", "Manual burst radius", cfg.BurstRadius),
				core.IntParam("burst_start", "Burst start wave", cfg.Burst.Cadence.Start),
				core.IntParam("burst_every", "Burst every", cfg.Burst.Cadence.Every),
				core.IntParam("burst_count", "Bursts per wave", cfg.Burst.Count),
				core.IntParam("spread_from", "Spread from wave", cfg.Spread.ActiveFrom),
				core.FloatParam("spread_interval", "Spread interval", cfg.Spread.Interval),
			},
		},
		{
			Name: "Occupancy",
			Params: []core.Parameter{
				core.BoolParam("weighted_alpha", "Weighted alpha", occ.WeightedAlpha),
				core.IntParam("sample_stride", "Sample stride", occ.SampleStride),
				core.FloatParam("update_interval", "Update interval", occ.UpdateInterval),
				core.BoolParam("normalize", "Normalize to 100", occ.NormalizeTo100),
				core.FloatParam("smooth_speed", "Smooth speed", occ.SmoothSpeed),
				core.BoolParam("unscaled", "Unscaled time", occ.UseUnscaledTime),
			},
		},
		{
			Name: "Judge",
			Params: []core.Parameter{
				core.FloatParam("win_ratio", "Win ratio", cfg.Judge.WinRatio),
				core.FloatParam("lose_ratio", "Lose ratio", cfg.Judge.LoseRatio),
				core.FloatParam("max_exposure", "Max exposure", cfg.Judge.MaxExposure),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust while a round runs.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "weapon_radius", Label: "Weapon radius", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, Max: 16, HasMin: true, HasMax: true},
		{Key: "wave_interval", Label: "Wave interval", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: 120, HasMin: true, HasMax: true},
		{Key: "sample_stride", Label: "Sample stride", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 16, HasMin: true, HasMax: true},
		{Key: "update_interval", Label: "Update interval", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "smooth_speed", Label: "Smooth speed", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 10, HasMin: true, HasMax: true},
		{Key: "normalize", Label: "Normalize", Type: core.ParamTypeBool, Step: 1},
		{Key: "win_ratio", Label: "Win ratio", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "lose_ratio", Label: "Lose ratio", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter applies a HUD adjustment. Integer and boolean keys are
// accepted too; booleans treat any non-zero value as true.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	occ := s.engine.Config()
	switch key {
	case "weapon_radius":
		s.cfg.WeaponRadius = math.Max(value, 0)
	case "wave_interval":
		s.cfg.WaveInterval = math.Max(value, 0)
		s.waves.Interval = s.cfg.WaveInterval
	case "win_ratio":
		s.cfg.Judge.WinRatio = value
	case "lose_ratio":
		s.cfg.Judge.LoseRatio = value
	case "max_exposure":
		s.cfg.Judge.MaxExposure = value
	case "sample_stride":
		occ.SampleStride = int(math.Round(value))
	case "update_interval":
		occ.UpdateInterval = value
	case "smooth_speed":
		occ.SmoothSpeed = value
	case "normalize":
		occ.NormalizeTo100 = value != 0
	case "weighted_alpha":
		occ.WeightedAlpha = value != 0
	case "unscaled":
		occ.UseUnscaledTime = value != 0
	default:
		return false
	}
	if occ != s.engine.Config() {
		s.engine.SetConfig(occ)
		s.cfg.Occupancy = s.engine.Config()
	}
	return true
}
