package types

import "io"

// Iterate 单次迭代状态
type Iterate struct {
	Iter        int     `json:"iter"`         // 迭代序号(从1开始)
	A           float64 `json:"a"`            // 松弛后的轴向诱导因子
	APrime      float64 `json:"a_prime"`      // 松弛后的切向诱导因子
	Residual    float64 `json:"residual"`     // 本次未松弛更新量 Δ
	TipLoss     float64 `json:"tip_loss"`     // 叶尖损失因子 F
	InflowAngle float64 `json:"inflow_angle"` // 入流角 rad
	Glauert     bool    `json:"glauert"`      // 是否进入高诱导修正分支
}

// Debug 调试接口
// 求解器在每个截面开始时调用 Begin，每次迭代调用 Update。
type Debug interface {
	IsDebug() bool
	Begin(radius float64, state OperatingState)
	Update(it Iterate)
	Render(w io.Writer) error
	Error(err error)
}
