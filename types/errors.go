package types

import "errors"

// 领域错误定义
var (
	ErrInvalidGeometry = errors.New("叶片几何定义无效")
	ErrInvalidPolar    = errors.New("翼型极曲线无效")
	ErrInvalidState    = errors.New("运行工况无效")
	ErrInvalidConfig   = errors.New("求解参数无效")
	ErrNotConverged    = errors.New("诱导因子迭代未收敛")
)
