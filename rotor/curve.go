package rotor

import "sort"

// Key 曲线横坐标或纵坐标
type Key func(*Performance) float64

// 常用坐标
var (
	ByWindSpeed     Key = func(p *Performance) float64 { return p.State.WindSpeed }
	ByTipSpeedRatio Key = func(p *Performance) float64 { return p.TipSpeedRatio }
	ByPitch         Key = func(p *Performance) float64 { return p.State.Pitch }
	PowerOf         Key = func(p *Performance) float64 { return p.Power }
	ThrustOf        Key = func(p *Performance) float64 { return p.Thrust }
	TorqueOf        Key = func(p *Performance) float64 { return p.Torque }
	CpOf            Key = func(p *Performance) float64 { return p.Cp }
	CtOf            Key = func(p *Performance) float64 { return p.Ct }
	CqOf            Key = func(p *Performance) float64 { return p.Cq }
)

// Curve 按 key 稳定排序后的副本，不修改输入
func Curve(perfs []Performance, key Key) []Performance {
	out := append([]Performance(nil), perfs...)
	sort.SliceStable(out, func(i, j int) bool { return key(&out[i]) < key(&out[j]) })
	return out
}

// Points 提取曲线数据
func Points(perfs []Performance, x, y Key) (xs, ys []float64) {
	xs, ys = make([]float64, len(perfs)), make([]float64, len(perfs))
	for i := range perfs {
		xs[i], ys[i] = x(&perfs[i]), y(&perfs[i])
	}
	return xs, ys
}

// BestCp 功率系数最大的工况索引
func BestCp(perfs []Performance) int {
	best := -1
	for i := range perfs {
		if best < 0 || perfs[i].Cp > perfs[best].Cp {
			best = i
		}
	}
	return best
}
