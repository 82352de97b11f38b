package airfoil

import (
	"bem/maths"
	"math"
)

// ThinAirfoil 生成薄翼理论极曲线 Cl=2πα，Cd 为常数
// 攻角范围 [-maxAlpha, maxAlpha]，共 n 个样本。
func ThinAirfoil(name string, cd, maxAlpha float64, n int) (*Polar, error) {
	if n < 2 {
		n = 2
	}
	alphas := maths.Linspace(-maxAlpha, maxAlpha, n)
	samples := make([]Sample, n)
	for i, a := range alphas {
		samples[i] = Sample{Alpha: a, Cl: 2 * math.Pi * a, Cd: cd}
	}
	return NewPolar(name, samples)
}
