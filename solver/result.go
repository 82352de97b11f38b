package solver

import (
	"bem/types"
	"fmt"
)

// Status 求解状态
type Status int

const (
	StatusConverged    Status = iota // 收敛
	StatusNotConverged               // 达到最大迭代次数仍未收敛
	StatusDegenerate                 // 退化工况，按零诱导处理
)

var statusString = map[Status]string{
	StatusConverged:    "Converged",
	StatusNotConverged: "NotConverged",
	StatusDegenerate:   "Degenerate",
}

func (s Status) String() string {
	if str, ok := statusString[s]; ok {
		return str
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText 文本编码
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText 文本解码
func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusString {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("未知求解状态 %q", text)
}

// Reason 退化原因
type Reason int

const (
	ReasonNone       Reason = iota
	ReasonStationary        // 相对速度为零
	ReasonNoInflow          // 无轴向来流
	ReasonUnloaded          // 损失因子为零(叶尖/轮毂)
)

var reasonString = map[Reason]string{
	ReasonNone:       "",
	ReasonStationary: "stationary",
	ReasonNoInflow:   "no-inflow",
	ReasonUnloaded:   "unloaded",
}

func (r Reason) String() string { return reasonString[r] }

// MarshalText 文本编码
func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText 文本解码
func (r *Reason) UnmarshalText(text []byte) error {
	for k, v := range reasonString {
		if v == string(text) {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("未知退化原因 %q", text)
}

// Result 单截面诱导因子求解结果
type Result struct {
	Radius           float64 `json:"radius"`            // 截面半径 m
	A                float64 `json:"a"`                 // 轴向诱导因子
	APrime           float64 `json:"a_prime"`           // 切向诱导因子
	Status           Status  `json:"status"`            // 求解状态
	Reason           Reason  `json:"reason,omitempty"`  // 退化原因
	Iterations       int     `json:"iterations"`        // 迭代次数
	Residual         float64 `json:"residual"`          // 最后一次未松弛更新量
	Oscillations     int     `json:"oscillations"`      // 更新方向翻转次数
	Glauert          bool    `json:"glauert"`           // 最后一次迭代是否处于高诱导分支
	InflowAngle      float64 `json:"inflow_angle"`      // 入流角 rad
	AngleOfAttack    float64 `json:"angle_of_attack"`   // 攻角 rad
	Cl               float64 `json:"cl"`                // 升力系数
	Cd               float64 `json:"cd"`                // 阻力系数
	Cn               float64 `json:"cn"`                // 法向力系数
	Ct               float64 `json:"ct"`                // 切向力系数
	RelativeVelocity float64 `json:"relative_velocity"` // 相对速度 m/s
	TipLoss          float64 `json:"tip_loss"`          // 损失因子 F
	Solidity         float64 `json:"solidity"`          // 局部实度
	Normal           float64 `json:"normal"`            // 单位展长法向力 N/m
	Tangential       float64 `json:"tangential"`        // 单位展长切向力 N/m
	Extrapolated     bool    `json:"extrapolated"`      // 攻角超出极曲线范围
}

// Converged 是否收敛
func (r Result) Converged() bool { return r.Status == StatusConverged }

// Err 未收敛时返回 ErrNotConverged
func (r Result) Err() error {
	if r.Status == StatusNotConverged {
		return fmt.Errorf("%w: r=%.3fm 迭代 %d 次, 残差 %.3e", types.ErrNotConverged, r.Radius, r.Iterations, r.Residual)
	}
	return nil
}

// Seed 迭代初值
func (r Result) Seed() Seed { return Seed{A: r.A, APrime: r.APrime} }

func (r Result) String() string {
	return fmt.Sprintf("r=%.3f a=%.5f a'=%.5f %s iter=%d α=%.2f° φ=%.2f° Cl=%.4f Cd=%.4f F=%.4f",
		r.Radius, r.A, r.APrime, r.Status, r.Iterations,
		types.Degrees(r.AngleOfAttack), types.Degrees(r.InflowAngle), r.Cl, r.Cd, r.TipLoss)
}
