package rotor

import (
	"bem/blade"
	"bem/maths"
	"bem/solver"
	"bem/types"
	"fmt"
)

// Performance 单个工况的转子整体性能
// 由截面结果导出，可随时重新计算。
type Performance struct {
	State         types.OperatingState `json:"state"`
	TipSpeedRatio float64              `json:"tip_speed_ratio"`
	Thrust        float64              `json:"thrust"` // 推力 N
	Torque        float64              `json:"torque"` // 扭矩 N·m
	Power         float64              `json:"power"`  // 功率 W
	Ct            float64              `json:"ct"`     // 推力系数
	Cq            float64              `json:"cq"`     // 扭矩系数
	Cp            float64              `json:"cp"`     // 功率系数
	Sections      []solver.Result      `json:"sections"`
	NotConverged  []int                `json:"not_converged,omitempty"` // 未收敛截面索引
	Degenerate    []int                `json:"degenerate,omitempty"`    // 退化截面索引
	Extrapolated  []int                `json:"extrapolated,omitempty"`  // 攻角越界截面索引
}

// Converged 全部截面收敛或退化
func (p *Performance) Converged() bool { return len(p.NotConverged) == 0 }

func (p *Performance) String() string {
	return fmt.Sprintf("%s λ=%.3f T=%.1fN Q=%.1fN·m P=%.1fW Ct=%.4f Cq=%.4f Cp=%.4f 未收敛=%d",
		p.State, p.TipSpeedRatio, p.Thrust, p.Torque, p.Power, p.Ct, p.Cq, p.Cp, len(p.NotConverged))
}

// Evaluate 求解全部截面并积分
func Evaluate(s *solver.Solver, b *blade.Blade, state types.OperatingState) Performance {
	return Integrate(b, state, s.SolveBlade(b, state))
}

// Integrate 沿半径梯形积分得到转子推力、扭矩与功率
// 积分节点为 轮毂 + 截面半径 + 叶尖，轮毂与叶尖处若无截面则载荷取0。
func Integrate(b *blade.Blade, state types.OperatingState, results []solver.Result) Performance {
	p := Performance{
		State:         state,
		TipSpeedRatio: state.TipSpeedRatio(b.TipRadius),
		Sections:      results,
	}
	n := len(results) + 2
	r := make([]float64, 0, n)
	fn := make([]float64, 0, n)
	fq := make([]float64, 0, n)
	if len(results) == 0 || results[0].Radius > b.HubRadius {
		r, fn, fq = append(r, b.HubRadius), append(fn, 0), append(fq, 0)
	}
	for i, res := range results {
		switch res.Status {
		case solver.StatusNotConverged:
			p.NotConverged = append(p.NotConverged, i)
		case solver.StatusDegenerate:
			p.Degenerate = append(p.Degenerate, i)
		}
		if res.Extrapolated {
			p.Extrapolated = append(p.Extrapolated, i)
		}
		r = append(r, res.Radius)
		fn = append(fn, res.Normal)
		fq = append(fq, res.Tangential*res.Radius)
	}
	if len(results) == 0 || results[len(results)-1].Radius < b.TipRadius {
		r, fn, fq = append(r, b.TipRadius), append(fn, 0), append(fq, 0)
	}
	blades := float64(b.Count)
	p.Thrust = blades * maths.Trapezoid(r, fn)
	p.Torque = blades * maths.Trapezoid(r, fq)
	p.Power = p.Torque * state.AngularSpeed
	// 无来流时系数无定义，取0
	if v := state.WindSpeed; v > 0 {
		q := 0.5 * state.AirDensity * b.SweptArea() * v * v
		p.Ct = p.Thrust / q
		p.Cq = p.Torque / (q * b.TipRadius)
		p.Cp = p.Power / (q * v)
	}
	return p
}
