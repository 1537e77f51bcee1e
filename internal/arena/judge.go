package arena

import "contagion/internal/occupancy"

// Outcome is the judge's verdict on a round.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

// Decide judges the displayed ratios and the current exposure. A threshold of
// zero or less disables that rule. Losing takes precedence when both trigger
// on the same tick.
func (j Judge) Decide(s occupancy.Sample, exposure float64) Outcome {
	if j.MaxExposure > 0 && exposure >= j.MaxExposure {
		return Lost
	}
	if j.LoseRatio > 0 && s.CurrentEnemy >= j.LoseRatio {
		return Lost
	}
	if j.WinRatio > 0 && s.CurrentPlayer >= j.WinRatio {
		return Won
	}
	return Ongoing
}
