package blade

import (
	"bem/airfoil"
	"bem/types"
	"math"
)

// Section 叶素截面
type Section struct {
	Radius  float64        // 展向位置 m
	Chord   float64        // 弦长 m
	Twist   float64        // 扭角 rad
	Airfoil airfoil.Lookup // 翼型(只读共享)
}

// Kinematics 叶素在给定诱导因子和工况下的速度三角形与力系数
type Kinematics struct {
	AxialInflow      float64 // 轴向入流 V·cosγ·(1-a)
	TangentialInflow float64 // 切向入流 Ω·r·(1+a')
	RelativeVelocity float64 // 相对速度 W
	InflowAngle      float64 // 入流角 φ rad
	AngleOfAttack    float64 // 攻角 α rad
	Cl, Cd           float64 // 升力、阻力系数
	Cn, Ct           float64 // 法向、切向力系数
	Normal           float64 // 单位展长法向力 N/m
	Tangential       float64 // 单位展长切向力 N/m
	InRange          bool    // 攻角是否在极曲线样本范围内
	Degenerate       bool    // 相对速度为零
}

// Kinematics 计算速度三角形、攻角与力系数
// 相对速度为零时返回零载荷并标记 Degenerate。
func (s Section) Kinematics(a, aPrime float64, state types.OperatingState) (k Kinematics) {
	k.AxialInflow = state.AxialWind() * (1 - a)
	k.TangentialInflow = state.AngularSpeed * s.Radius * (1 + aPrime)
	k.RelativeVelocity = math.Hypot(k.AxialInflow, k.TangentialInflow)
	k.InRange = true
	if k.RelativeVelocity < types.Epsilon {
		k.RelativeVelocity = 0
		k.Degenerate = true
		return k
	}
	k.InflowAngle = math.Atan2(k.AxialInflow, k.TangentialInflow)
	k.AngleOfAttack = k.InflowAngle - (s.Twist + state.Pitch)
	k.Cl, k.Cd, k.InRange = s.Airfoil.LiftDrag(k.AngleOfAttack)
	sin, cos := math.Sincos(k.InflowAngle)
	k.Cn = k.Cl*cos + k.Cd*sin
	k.Ct = k.Cl*sin - k.Cd*cos
	q := 0.5 * state.AirDensity * k.RelativeVelocity * k.RelativeVelocity * s.Chord
	k.Normal = q * k.Cn
	k.Tangential = q * k.Ct
	return k
}
