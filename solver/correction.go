package solver

import (
	"bem/types"
	"math"
)

// TipLossFactor Prandtl 叶尖损失因子
//
//	F = 2/π·acos(exp(-B(R-r)/(2r|sinφ|)))
//
// r ≥ R 时为0；sinφ=0 时远离叶尖的截面取1。
func TipLossFactor(blades int, r, tipRadius, phi float64) float64 {
	if r >= tipRadius {
		return 0
	}
	sin := math.Abs(math.Sin(phi))
	if sin < types.Epsilon {
		return 1
	}
	f := float64(blades) / 2 * (tipRadius - r) / (r * sin)
	return 2 / math.Pi * math.Acos(math.Exp(-f))
}

// HubLossFactor Prandtl 轮毂损失因子
//
//	F = 2/π·acos(exp(-B(r-Rh)/(2Rh|sinφ|)))
//
// 轮毂半径为0时不修正。
func HubLossFactor(blades int, r, hubRadius, phi float64) float64 {
	if hubRadius <= 0 {
		return 1
	}
	if r <= hubRadius {
		return 0
	}
	sin := math.Abs(math.Sin(phi))
	if sin < types.Epsilon {
		return 1
	}
	f := float64(blades) / 2 * (r - hubRadius) / (hubRadius * sin)
	return 2 / math.Pi * math.Acos(math.Exp(-f))
}

// MomentumThrust 修正后的动量理论推力系数 CT(a)
// a ≤ a_c 时为 4Fa(1-a)；a > a_c 时为在 a_c 处与其相切且 CT(1)=2 的抛物线，
// a_c=0.4 时即 Buhl 经验关系。
func MomentumThrust(a, F, ac float64) float64 {
	if a <= ac {
		return 4 * F * a * (1 - a)
	}
	x := a - ac
	k := 2/((1-ac)*(1-ac)) - 4*F
	return 4*F*ac*(1-ac) + 4*F*(1-2*ac)*x + k*x*x
}

// axialInduction 由 K=4F·sin²φ/(σCn) 求新的轴向诱导因子
// glauert 表示是否进入高诱导修正分支。
func axialInduction(K, F, ac float64) (a float64, glauert bool) {
	switch {
	case K > 0:
		a = 1 / (1 + K)
		if a <= ac {
			return a, false
		}
		// 叶素推力 4F(1-a)²/K 与修正动量推力相交，x=a-a_c
		k := 2/((1-ac)*(1-ac)) - 4*F
		qa := 4*F - K*k
		qb := -4 * F * (2*(1-ac) + K*(1-2*ac))
		qc := 4 * F * (1 - ac) * ((1 - ac) - K*ac)
		var x float64
		if math.Abs(qa) < types.Epsilon {
			x = -qc / qb
		} else {
			d := math.Sqrt(math.Max(qb*qb-4*qa*qc, 0))
			x = (-qb - d) / (2 * qa)
			if x < 0 || x > 1-ac {
				x = (-qb + d) / (2 * qa)
			}
		}
		return ac + x, true
	case K < -1:
		// 负推力(螺旋桨制动)区
		return 1 / (1 + K), false
	default:
		return math.Inf(-1), false
	}
}

// tangentialInduction 由 K'=4F·sinφ·cosφ/(σCt) 求新的切向诱导因子
func tangentialInduction(Kp float64) float64 {
	d := Kp - 1
	if math.Abs(d) < types.Epsilon {
		return math.Copysign(math.Inf(1), d)
	}
	return 1 / d
}
