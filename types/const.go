package types

// 物理常量定义
const (
	Epsilon         = 1e-12 // 浮点精度阈值
	StandardDensity = 1.225 // 海平面标准空气密度 kg/m^3
)

// 默认参数常量定义
var (
	Tolerance              = 1e-5 // 收敛容差
	MaxIterations          = 100  // 最大迭代次数
	Relaxation             = 0.5  // 松弛因子 (0,1)
	CriticalInduction      = 0.4  // 高诱导修正阈值 a_c
	MinAxialInduction      = -0.5 // 轴向诱导因子下限
	MaxAxialInduction      = 0.95 // 轴向诱导因子上限
	MaxTangentialInduction = 1.0  // 切向诱导因子绝对值上限
	MaxOscillationCount    = 25   // 最大震荡次数(仅统计)
	BladeCount             = 3    // 默认叶片数
	SweepMinWind           = 1.0  // 默认扫描最小风速 m/s
	SweepMaxWind           = 30.0 // 默认扫描最大风速 m/s
	SweepPoints            = 100  // 默认扫描点数
)
