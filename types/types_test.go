package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatingStateValidate(t *testing.T) {
	_, err := NewOperatingState(10, 1.5, StandardDensity, 0)
	require.NoError(t, err)
	_, err = NewOperatingState(0, 0, StandardDensity, 0)
	require.NoError(t, err, "静止工况合法")

	bad := []OperatingState{
		{WindSpeed: -1, AirDensity: 1},
		{AngularSpeed: -1, AirDensity: 1},
		{WindSpeed: 10},
		{WindSpeed: math.NaN(), AirDensity: 1},
		{WindSpeed: 10, AirDensity: 1, Pitch: math.Inf(1)},
		{WindSpeed: 10, AirDensity: 1, Yaw: math.Pi / 2},
	}
	for _, s := range bad {
		assert.ErrorIs(t, s.Validate(), ErrInvalidState, "%+v", s)
	}
}

func TestOperatingStateDerived(t *testing.T) {
	s, err := FromRPM(10, 60/(2*math.Pi), StandardDensity, Radians(2))
	require.NoError(t, err)
	assert.InDelta(t, 1, s.AngularSpeed, 1e-12)
	assert.InDelta(t, 60/(2*math.Pi), s.RPM(), 1e-12)
	assert.InDelta(t, 5, s.TipSpeedRatio(50), 1e-12)
	assert.InDelta(t, 2, Degrees(s.Pitch), 1e-12)
	assert.Equal(t, 10.0, s.AxialWind())
	assert.InDelta(t, 5, s.WithYaw(math.Pi/3).AxialWind(), 1e-12)
	assert.Zero(t, s.Yaw, "WithYaw 不修改原值")

	still, err := NewOperatingState(0, 1, StandardDensity, 0)
	require.NoError(t, err)
	assert.Zero(t, still.TipSpeedRatio(50))
	assert.Contains(t, s.String(), "V=10.000m/s")
}

func testSchedule(t *testing.T) *Schedule {
	s, err := NewSchedule([]ScheduleRow{
		{WindSpeed: 4, Pitch: 0, RPM: 6, Power: 100e3, Thrust: 150e3},
		{WindSpeed: 10, Pitch: 0, RPM: 12, Power: 3e6, Thrust: 500e3},
		{WindSpeed: 20, Pitch: Radians(20), RPM: 12, Power: 3e6, Thrust: 200e3},
	})
	require.NoError(t, err)
	return s
}

func TestScheduleInterpolation(t *testing.T) {
	s := testSchedule(t)
	st, err := s.State(7, StandardDensity)
	require.NoError(t, err)
	assert.InDelta(t, RPMToRadians(9), st.AngularSpeed, 1e-12)
	assert.Zero(t, st.Pitch)

	st, err = s.State(15, StandardDensity)
	require.NoError(t, err)
	assert.InDelta(t, Radians(10), st.Pitch, 1e-12)

	// 区间外钳位
	st, err = s.State(30, StandardDensity)
	require.NoError(t, err)
	assert.InDelta(t, Radians(20), st.Pitch, 1e-12)
	assert.Equal(t, 30.0, st.WindSpeed)

	p, th := s.Reference(15)
	assert.InDelta(t, 3e6, p, 1e-6)
	assert.InDelta(t, 350e3, th, 1e-6)

	lo, hi := s.Bounds()
	assert.Equal(t, 4.0, lo)
	assert.Equal(t, 20.0, hi)
}

func TestScheduleRange(t *testing.T) {
	s := testSchedule(t)
	states, err := s.Range(4, 20, 5, StandardDensity)
	require.NoError(t, err)
	require.Len(t, states, 5)
	for i, v := range []float64{4, 8, 12, 16, 20} {
		assert.InDelta(t, v, states[i].WindSpeed, 1e-12)
	}
}

func TestScheduleInvalid(t *testing.T) {
	_, err := NewSchedule([]ScheduleRow{{WindSpeed: 5}, {WindSpeed: 5}})
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = NewSchedule(nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}
