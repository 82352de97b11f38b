package maths

import "gonum.org/v1/gonum/integrate"

// Trapezoid 梯形积分
// x 需单调递增；少于两个节点时积分为0。
func Trapezoid(x, f []float64) float64 {
	if len(x) < 2 || len(x) != len(f) {
		return 0
	}
	return integrate.Trapezoidal(x, f)
}
