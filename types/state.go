package types

import (
	"fmt"
	"math"
)

// OperatingState 运行工况
// 值类型，创建后不再修改。
type OperatingState struct {
	WindSpeed    float64 `json:"wind_speed" yaml:"wind_speed"`       // 来流风速 m/s
	AngularSpeed float64 `json:"angular_speed" yaml:"angular_speed"` // 转子角速度 rad/s
	AirDensity   float64 `json:"air_density" yaml:"air_density"`     // 空气密度 kg/m^3
	Pitch        float64 `json:"pitch" yaml:"pitch"`                 // 桨距角 rad
	Yaw          float64 `json:"yaw" yaml:"yaw"`                     // 偏航角 rad
}

// NewOperatingState 创建并校验运行工况
func NewOperatingState(windSpeed, angularSpeed, airDensity, pitch float64) (OperatingState, error) {
	s := OperatingState{
		WindSpeed:    windSpeed,
		AngularSpeed: angularSpeed,
		AirDensity:   airDensity,
		Pitch:        pitch,
	}
	return s, s.Validate()
}

// FromRPM 由转速(rpm)创建运行工况
func FromRPM(windSpeed, rpm, airDensity, pitch float64) (OperatingState, error) {
	return NewOperatingState(windSpeed, RPMToRadians(rpm), airDensity, pitch)
}

// Validate 校验运行工况
func (s OperatingState) Validate() error {
	for _, v := range [...]float64{s.WindSpeed, s.AngularSpeed, s.AirDensity, s.Pitch, s.Yaw} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: 存在非有限值 %+v", ErrInvalidState, s)
		}
	}
	switch {
	case s.WindSpeed < 0:
		return fmt.Errorf("%w: 风速不能为负 %g", ErrInvalidState, s.WindSpeed)
	case s.AngularSpeed < 0:
		return fmt.Errorf("%w: 角速度不能为负 %g", ErrInvalidState, s.AngularSpeed)
	case s.AirDensity <= 0:
		return fmt.Errorf("%w: 空气密度必须为正 %g", ErrInvalidState, s.AirDensity)
	case math.Abs(s.Yaw) >= math.Pi/2:
		return fmt.Errorf("%w: 偏航角超出范围 %g", ErrInvalidState, s.Yaw)
	}
	return nil
}

// WithYaw 返回带偏航角的副本
func (s OperatingState) WithYaw(yaw float64) OperatingState {
	s.Yaw = yaw
	return s
}

// AxialWind 垂直于转子平面的来流分量
func (s OperatingState) AxialWind() float64 {
	return s.WindSpeed * math.Cos(s.Yaw)
}

// RPM 转速
func (s OperatingState) RPM() float64 { return s.AngularSpeed * 60 / (2 * math.Pi) }

// TipSpeedRatio 叶尖速比
func (s OperatingState) TipSpeedRatio(tipRadius float64) float64 {
	if s.WindSpeed == 0 {
		return 0
	}
	return s.AngularSpeed * tipRadius / s.WindSpeed
}

// String 输出工况
func (s OperatingState) String() string {
	return fmt.Sprintf("V=%.3fm/s Ω=%.4frad/s(%.2frpm) ρ=%.4f pitch=%.2f° yaw=%.2f°",
		s.WindSpeed, s.AngularSpeed, s.RPM(), s.AirDensity, Degrees(s.Pitch), Degrees(s.Yaw))
}

// RPMToRadians rpm 转 rad/s
func RPMToRadians(rpm float64) float64 { return rpm * 2 * math.Pi / 60 }

// Radians 角度转弧度
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees 弧度转角度
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
