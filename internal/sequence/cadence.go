package sequence

// Cadence selects which sequence values trigger a spawn: Start, then every
// Every values after it. Every <= 0 fires at Start only.
type Cadence struct {
	Start int `mapstructure:"start"`
	Every int `mapstructure:"every"`
}

// Due reports whether seq triggers the cadence.
func (c Cadence) Due(seq int) bool {
	if seq < c.Start {
		return false
	}
	if c.Every <= 0 {
		return seq == c.Start
	}
	return (seq-c.Start)%c.Every == 0
}

// Next returns the first due value strictly after seq, or -1 when none remains.
func (c Cadence) Next(seq int) int {
	if seq < c.Start {
		return c.Start
	}
	if c.Every <= 0 {
		return -1
	}
	return seq + c.Every - (seq-c.Start)%c.Every
}
