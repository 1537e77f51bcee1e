package arena

import "fmt"

// Occupancy returns the displayed player and enemy ratios.
func (s *Session) Occupancy() (player, enemy float64) {
	smp := s.engine.Sample()
	return smp.CurrentPlayer, smp.CurrentEnemy
}

// WeaponReach returns the radius of a weapon hit in world units.
func (s *Session) WeaponReach() float64 { return s.cfg.WeaponRadius }

// StatusLines renders the round status for text displays.
func (s *Session) StatusLines() []string {
	st := s.Stats()
	lines := []string{
		fmt.Sprintf("Wave %d  next in %.1fs", st.Wave, s.nextWaveIn()),
		fmt.Sprintf("Contaminated %d tiles (%.1f%%)", s.state.ContaminatedCount(), st.Fraction*100),
		fmt.Sprintf("Bursts %d  spread %d", st.Bursts, st.Grown),
		fmt.Sprintf("Exposure %.1f / %.1fs", st.Exposure, s.cfg.Judge.MaxExposure),
		fmt.Sprintf("Outcome: %s", st.Outcome),
	}
	return lines
}

func (s *Session) nextWaveIn() float64 {
	if s.sharedSeq || s.cfg.WaveInterval <= 0 {
		return 0
	}
	return max(s.cfg.WaveInterval-s.waves.Elapsed(), 0)
}

// BurstReach returns the radius of a manually triggered enemy burst.
func (s *Session) BurstReach() float64 { return s.cfg.BurstRadius }
