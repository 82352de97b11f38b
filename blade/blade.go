package blade

import (
	"bem/airfoil"
	"bem/maths"
	"bem/types"
	"fmt"
	"math"
	"sort"
)

// Blade 叶片
// 截面按半径严格递增排列，创建后只读。
type Blade struct {
	Count     int       // 叶片数
	HubRadius float64   // 轮毂半径 m
	TipRadius float64   // 叶尖半径 m
	Sections  []Section // 截面列表
}

// NewBlade 创建并校验叶片
func NewBlade(count int, hubRadius, tipRadius float64, sections []Section) (*Blade, error) {
	b := &Blade{
		Count:     count,
		HubRadius: hubRadius,
		TipRadius: tipRadius,
		Sections:  append([]Section(nil), sections...),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate 校验几何
func (b *Blade) Validate() error {
	switch {
	case b.Count < 1:
		return fmt.Errorf("%w: 叶片数必须不少于1, 得到 %d", types.ErrInvalidGeometry, b.Count)
	case !maths.IsFinite(b.HubRadius) || b.HubRadius < 0:
		return fmt.Errorf("%w: 轮毂半径无效 %g", types.ErrInvalidGeometry, b.HubRadius)
	case !maths.IsFinite(b.TipRadius) || b.TipRadius <= b.HubRadius:
		return fmt.Errorf("%w: 叶尖半径 %g 必须大于轮毂半径 %g", types.ErrInvalidGeometry, b.TipRadius, b.HubRadius)
	case len(b.Sections) == 0:
		return fmt.Errorf("%w: 叶片没有截面", types.ErrInvalidGeometry)
	}
	for i, s := range b.Sections {
		switch {
		case !maths.IsFinite(s.Radius) || s.Radius <= 0 || s.Radius < b.HubRadius || s.Radius > b.TipRadius:
			return fmt.Errorf("%w: 截面 %d 半径 %g 超出 [%g, %g]", types.ErrInvalidGeometry, i, s.Radius, b.HubRadius, b.TipRadius)
		case !maths.IsFinite(s.Chord) || s.Chord <= 0:
			return fmt.Errorf("%w: 截面 %d 弦长必须为正 %g", types.ErrInvalidGeometry, i, s.Chord)
		case !maths.IsFinite(s.Twist):
			return fmt.Errorf("%w: 截面 %d 扭角非有限值", types.ErrInvalidGeometry, i)
		case s.Airfoil == nil:
			return fmt.Errorf("%w: 截面 %d 未指定翼型", types.ErrInvalidGeometry, i)
		case i > 0 && s.Radius <= b.Sections[i-1].Radius:
			return fmt.Errorf("%w: 截面 %d 半径 %g 未严格递增", types.ErrInvalidGeometry, i, s.Radius)
		}
	}
	return nil
}

// Solidity 第 i 个截面的局部实度
func (b *Blade) Solidity(i int) float64 { return b.SectionSolidity(b.Sections[i]) }

// SectionSolidity 局部实度 σ = B·c/(2πr)，上限为1
func (b *Blade) SectionSolidity(s Section) float64 {
	return math.Min(float64(b.Count)*s.Chord/(2*math.Pi*s.Radius), 1)
}

// SectionAt 半径 r 处的插值截面
// 弦长、扭角在相邻截面间线性插值，翼型系数按同一权重混合；
// r 位于首截面以内或末截面以外时沿用端部截面几何。
func (b *Blade) SectionAt(r float64) (Section, error) {
	if !maths.IsFinite(r) || r <= 0 || r < b.HubRadius || r > b.TipRadius {
		return Section{}, fmt.Errorf("%w: 半径 %g 超出 (0, %g] 或小于轮毂半径 %g", types.ErrInvalidGeometry, r, b.TipRadius, b.HubRadius)
	}
	n := len(b.Sections)
	i := sort.Search(n, func(i int) bool { return b.Sections[i].Radius >= r })
	var s Section
	switch {
	case i == 0:
		s = b.Sections[0]
	case i == n:
		s = b.Sections[n-1]
	case b.Sections[i].Radius == r:
		s = b.Sections[i]
	default:
		in, out := b.Sections[i-1], b.Sections[i]
		w := (r - in.Radius) / (out.Radius - in.Radius)
		s = Section{
			Chord:   (1-w)*in.Chord + w*out.Chord,
			Twist:   (1-w)*in.Twist + w*out.Twist,
			Airfoil: airfoil.Mix(in.Airfoil, out.Airfoil, w),
		}
	}
	s.Radius = r
	return s, nil
}

// Radii 截面半径列表
func (b *Blade) Radii() []float64 {
	r := make([]float64, len(b.Sections))
	for i, s := range b.Sections {
		r[i] = s.Radius
	}
	return r
}

// SweptArea 扫掠面积 πR²
func (b *Blade) SweptArea() float64 { return math.Pi * b.TipRadius * b.TipRadius }

func (b *Blade) String() string {
	return fmt.Sprintf("Blade(B=%d, hub=%.3fm, tip=%.3fm, %d 截面)", b.Count, b.HubRadius, b.TipRadius, len(b.Sections))
}
