package airfoil

import (
	"bem/types"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolar(t *testing.T) *Polar {
	t.Helper()
	p, err := NewPolar("test", []Sample{
		{Alpha: types.Radians(0), Cl: 0.5, Cd: 0.01},
		{Alpha: types.Radians(5), Cl: 0.7, Cd: 0.02},
		{Alpha: types.Radians(10), Cl: 0.9, Cd: 0.03},
		{Alpha: types.Radians(15), Cl: 1.1, Cd: 0.04},
	})
	require.NoError(t, err)
	return p
}

func TestPolarExactAtSamples(t *testing.T) {
	p := testPolar(t)
	for _, s := range p.Samples() {
		cl, cd, in := p.LiftDrag(s.Alpha)
		// 样本点处必须精确相等
		assert.Equal(t, s.Cl, cl, "样本点升力系数不一致 α=%g", s.Alpha)
		assert.Equal(t, s.Cd, cd, "样本点阻力系数不一致 α=%g", s.Alpha)
		assert.True(t, in)
	}
}

func TestPolarInterpolation(t *testing.T) {
	p := testPolar(t)
	cl, cd, in := p.LiftDrag(types.Radians(7.5))
	assert.InDelta(t, 0.8, cl, 1e-12)
	assert.InDelta(t, 0.025, cd, 1e-12)
	assert.True(t, in)
}

func TestPolarClampOutsideRange(t *testing.T) {
	p := testPolar(t)
	// 下界外钳位到第一个样本
	cl, cd, in := p.LiftDrag(types.Radians(-20))
	assert.Equal(t, 0.5, cl)
	assert.Equal(t, 0.01, cd)
	assert.False(t, in, "越界查询必须被标记")
	// 上界外钳位到最后一个样本
	cl, cd, in = p.LiftDrag(types.Radians(40))
	assert.Equal(t, 1.1, cl)
	assert.Equal(t, 0.04, cd)
	assert.False(t, in)
}

func TestPolarInvalid(t *testing.T) {
	cases := map[string][]Sample{
		"样本不足": {{Alpha: 0, Cl: 0, Cd: 0}},
		"攻角重复": {{Alpha: 0, Cl: 0}, {Alpha: 0, Cl: 1}},
		"攻角递减": {{Alpha: 0.1, Cl: 0}, {Alpha: 0, Cl: 1}},
		"非有限值": {{Alpha: 0, Cl: math.NaN()}, {Alpha: 1, Cl: 1}},
	}
	for name, samples := range cases {
		_, err := NewPolar(name, samples)
		assert.ErrorIs(t, err, types.ErrInvalidPolar, name)
	}
}

func TestThinAirfoil(t *testing.T) {
	p, err := ThinAirfoil("thin", 0.01, types.Radians(20), 41)
	require.NoError(t, err)
	cl, cd, in := p.LiftDrag(0.1)
	assert.InDelta(t, 2*math.Pi*0.1, cl, 1e-9)
	assert.Equal(t, 0.01, cd)
	assert.True(t, in)
	var _ Lookup = p
}

func BenchmarkPolarLiftDrag(b *testing.B) {
	p, _ := ThinAirfoil("thin", 0.01, math.Pi, 361)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.LiftDrag(float64(i%360)*0.01 - 1.8)
	}
}

func TestMix(t *testing.T) {
	p := testPolar(t)
	q, err := ThinAirfoil("thin", 0.02, types.Radians(20), 21)
	require.NoError(t, err)
	assert.Same(t, p, Mix(p, p, 0.4))
	assert.Same(t, p, Mix(p, q, 0))
	assert.Same(t, q, Mix(p, q, 1))

	m := Mix(p, q, 0.25)
	alpha := types.Radians(5)
	cl2, cd2, _ := q.LiftDrag(alpha)
	cl, cd, in := m.LiftDrag(alpha)
	assert.InDelta(t, 0.75*0.7+0.25*cl2, cl, 1e-12)
	assert.InDelta(t, 0.75*0.02+0.25*cd2, cd, 1e-12)
	assert.True(t, in)
	// 任一翼型超出范围即标记
	_, _, in = m.LiftDrag(types.Radians(18))
	assert.False(t, in)
}
