package solver

import (
	"bem/types"
	"fmt"
)

// Config 诱导因子迭代参数
type Config struct {
	Tolerance              float64     `yaml:"tolerance" json:"tolerance"`                               // 收敛容差
	MaxIterations          int         `yaml:"max_iterations" json:"max_iterations"`                     // 最大迭代次数
	Relaxation             float64     `yaml:"relaxation" json:"relaxation"`                             // 松弛因子 (0,1)
	CriticalInduction      float64     `yaml:"critical_induction" json:"critical_induction"`             // 高诱导修正阈值 a_c
	MinAxialInduction      float64     `yaml:"min_axial_induction" json:"min_axial_induction"`           // 轴向诱导因子下限
	MaxAxialInduction      float64     `yaml:"max_axial_induction" json:"max_axial_induction"`           // 轴向诱导因子上限
	MaxTangentialInduction float64     `yaml:"max_tangential_induction" json:"max_tangential_induction"` // 切向诱导因子绝对值上限
	TipLoss                bool        `yaml:"tip_loss" json:"tip_loss"`                                 // 启用 Prandtl 叶尖损失
	HubLoss                bool        `yaml:"hub_loss" json:"hub_loss"`                                 // 启用 Prandtl 轮毂损失
	Debug                  types.Debug `yaml:"-" json:"-"`                                               // 迭代跟踪
}

// DefaultConfig 默认参数
func DefaultConfig() Config {
	return Config{
		Tolerance:              types.Tolerance,
		MaxIterations:          types.MaxIterations,
		Relaxation:             types.Relaxation,
		CriticalInduction:      types.CriticalInduction,
		MinAxialInduction:      types.MinAxialInduction,
		MaxAxialInduction:      types.MaxAxialInduction,
		MaxTangentialInduction: types.MaxTangentialInduction,
		TipLoss:                true,
	}
}

// Validate 校验参数
func (c Config) Validate() error {
	switch {
	case !(c.Tolerance > 0):
		return fmt.Errorf("%w: 收敛容差必须为正 %g", types.ErrInvalidConfig, c.Tolerance)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: 最大迭代次数必须不少于1 %d", types.ErrInvalidConfig, c.MaxIterations)
	case !(c.Relaxation > 0 && c.Relaxation < 1):
		return fmt.Errorf("%w: 松弛因子必须在 (0,1) 内 %g", types.ErrInvalidConfig, c.Relaxation)
	case !(c.CriticalInduction >= 0.3 && c.CriticalInduction < 0.5):
		return fmt.Errorf("%w: 高诱导阈值必须在 [0.3,0.5) 内 %g", types.ErrInvalidConfig, c.CriticalInduction)
	case !(c.MinAxialInduction < 0 && c.MaxAxialInduction > c.CriticalInduction && c.MaxAxialInduction < 1):
		return fmt.Errorf("%w: 轴向诱导因子范围无效 [%g,%g]", types.ErrInvalidConfig, c.MinAxialInduction, c.MaxAxialInduction)
	case !(c.MaxTangentialInduction > 0):
		return fmt.Errorf("%w: 切向诱导因子上限必须为正 %g", types.ErrInvalidConfig, c.MaxTangentialInduction)
	}
	return nil
}
