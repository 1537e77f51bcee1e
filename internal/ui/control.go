package ui

import (
	"image"
	"math"
	"strconv"

	"contagion/internal/core"
)

// control is one adjustable row of the HUD panel.
type control struct {
	spec  core.ParameterControl
	value float64
	known bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

func newControls(specs []core.ParameterControl) []control {
	out := make([]control, len(specs))
	for i, spec := range specs {
		out[i] = control{spec: spec}
	}
	return out
}

// refresh reads the control's current value out of snap.
func (c *control) refresh(snap core.ParameterSnapshot) {
	c.known = false
	p, ok := snap.Lookup(c.spec.Key)
	if !ok {
		return
	}
	switch c.spec.Type {
	case core.ParamTypeBool:
		v, err := strconv.ParseBool(p.Value)
		if err != nil {
			return
		}
		c.value = boolValue(v)
	case core.ParamTypeInt, core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil || math.IsNaN(v) {
			return
		}
		c.value = v
	default:
		return
	}
	c.known = true
}

func (c *control) text() string {
	if !c.known {
		return "--"
	}
	switch c.spec.Type {
	case core.ParamTypeBool:
		if c.value != 0 {
			return "on"
		}
		return "off"
	case core.ParamTypeInt:
		return strconv.Itoa(int(math.Round(c.value)))
	default:
		return strconv.FormatFloat(c.value, 'f', precision(c.step()), 64)
	}
}

func (c *control) step() float64 {
	step := c.spec.Step
	if c.spec.Type == core.ParamTypeInt {
		return math.Max(1, math.Round(step))
	}
	if step <= 0 {
		return 0.05
	}
	return step
}

// next returns the value one step in direction dir (negative for minus) and
// whether it differs from the current one.
func (c *control) next(dir int) (float64, bool) {
	if !c.known || dir == 0 {
		return c.value, false
	}
	if c.spec.Type == core.ParamTypeBool {
		target := boolValue(dir > 0)
		return target, target != c.value
	}
	target := c.value + float64(dir)*c.step()
	if c.spec.HasMin {
		target = math.Max(target, c.spec.Min)
	}
	if c.spec.HasMax {
		target = math.Min(target, c.spec.Max)
	}
	if c.spec.Type == core.ParamTypeInt {
		target = math.Round(target)
	}
	return target, math.Abs(target-c.value) >= 1e-9
}

// adjust pushes the next value through set and keeps it when accepted.
func (c *control) adjust(set core.FloatParameterSetter, dir int) bool {
	if set == nil {
		return false
	}
	target, ok := c.next(dir)
	if !ok || !set.SetFloatParameter(c.spec.Key, target) {
		return false
	}
	c.value = target
	return true
}

func precision(step float64) int {
	switch {
	case step < 0.001:
		return 4
	case step < 0.01:
		return 3
	case step < 0.1:
		return 2
	default:
		return 1
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
