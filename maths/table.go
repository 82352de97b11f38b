package maths

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Table 一维分段线性插值表
// 区间外按端点钳位，同时报告查询是否越界。
type Table struct {
	pl   interp.PiecewiseLinear
	xMin float64
	xMax float64
}

// NewTable 创建插值表，xs 必须严格递增且长度不少于2
func NewTable(xs, ys []float64) (*Table, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("插值表长度不一致: %d != %d", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("插值表至少需要2个样本, 得到 %d", len(xs))
	}
	for i := range xs {
		if !IsFinite(xs[i]) || !IsFinite(ys[i]) {
			return nil, fmt.Errorf("插值表第 %d 个样本非有限值", i)
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("插值表横坐标未严格递增: [%d]=%g <= [%d]=%g", i, xs[i], i-1, xs[i-1])
		}
	}
	t := &Table{xMin: xs[0], xMax: xs[len(xs)-1]}
	if err := t.pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	return t, nil
}

// At 查询 x 处的值
func (t *Table) At(x float64) (y float64, inRange bool) {
	return t.pl.Predict(x), x >= t.xMin && x <= t.xMax
}

// Bounds 横坐标范围
func (t *Table) Bounds() (min, max float64) { return t.xMin, t.xMax }

// Linspace 生成 [min,max] 上 n 个等距点
func Linspace(min, max float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}

// Clamp 钳位
func Clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

// IsFinite 判断是否为有限值
func IsFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
