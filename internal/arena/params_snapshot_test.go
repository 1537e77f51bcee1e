package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contagion/internal/core"
)

func TestParametersExposeConfig(t *testing.T) {
	s := newSession(t, quietConfig())
	snap := s.Parameters()

	p, ok := snap.Lookup("w")
	require.True(t, ok)
	assert.Equal(t, "8", p.Value)

	p, ok = snap.Lookup("normalize")
	require.True(t, ok)
	assert.Equal(t, core.ParamTypeBool, p.Type)
	assert.Equal(t, "false", p.Value)

	for _, ctrl := range s.ParameterControls() {
		_, ok := snap.Lookup(ctrl.Key)
		assert.True(t, ok, "control %q missing from snapshot", ctrl.Key)
	}
}

func TestSetFloatParameter(t *testing.T) {
	s := newSession(t, quietConfig())

	require.True(t, s.SetFloatParameter("sample_stride", 40))
	assert.Equal(t, 16, s.Engine().Config().SampleStride)

	require.True(t, s.SetFloatParameter("normalize", 1))
	assert.True(t, s.Engine().Config().NormalizeTo100)

	require.True(t, s.SetFloatParameter("weapon_radius", 4))
	assert.Equal(t, 4.0, s.Config().WeaponRadius)

	assert.False(t, s.SetFloatParameter("unknown", 1))
	assert.False(t, s.SetFloatParameter("smooth_speed", nan()))
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}
