package airfoil

import (
	"bem/maths"
	"bem/types"
	"fmt"
)

// Lookup 翼型气动系数查询接口
type Lookup interface {
	// LiftDrag 返回攻角(rad)处的升力、阻力系数，inRange 表示攻角是否位于样本范围内
	LiftDrag(alpha float64) (cl, cd float64, inRange bool)
}

// Sample 极曲线样本
type Sample struct {
	Alpha float64 `json:"alpha"` // 攻角 rad
	Cl    float64 `json:"cl"`    // 升力系数
	Cd    float64 `json:"cd"`    // 阻力系数
}

// Polar 单个翼型的极曲线
// 样本间分段线性插值；样本范围外钳位到最近端点(平外推)，并以 inRange=false 标记。
// 创建后只读，可被多个截面并发共享。
type Polar struct {
	Name     string  // 翼型名称
	Reynolds float64 // 雷诺数
	samples  []Sample
	cl, cd   *maths.Table
}

// NewPolar 创建极曲线
func NewPolar(name string, samples []Sample) (*Polar, error) {
	n := len(samples)
	alpha, cl, cd := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range samples {
		alpha[i], cl[i], cd[i] = s.Alpha, s.Cl, s.Cd
	}
	tcl, err := maths.NewTable(alpha, cl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidPolar, name, err)
	}
	tcd, err := maths.NewTable(alpha, cd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidPolar, name, err)
	}
	return &Polar{
		Name:    name,
		samples: append([]Sample(nil), samples...),
		cl:      tcl,
		cd:      tcd,
	}, nil
}

// LiftDrag 插值查询
func (p *Polar) LiftDrag(alpha float64) (cl, cd float64, inRange bool) {
	cl, inRange = p.cl.At(alpha)
	cd, _ = p.cd.At(alpha)
	return cl, cd, inRange
}

// Samples 样本副本
func (p *Polar) Samples() []Sample { return append([]Sample(nil), p.samples...) }

// Len 样本数量
func (p *Polar) Len() int { return len(p.samples) }

// Range 攻角范围 rad
func (p *Polar) Range() (min, max float64) { return p.cl.Bounds() }

func (p *Polar) String() string {
	min, max := p.Range()
	return fmt.Sprintf("Polar(%s, Re=%.3g, %d 样本, α∈[%.2f°, %.2f°])",
		p.Name, p.Reynolds, len(p.samples), types.Degrees(min), types.Degrees(max))
}
