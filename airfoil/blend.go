package airfoil

// Blend 相邻截面翼型按展向权重混合
// Weight 为外侧翼型权重，取值 [0,1]。
type Blend struct {
	Inner, Outer Lookup
	Weight       float64
}

// Mix 混合两个翼型，同一翼型或端点权重时直接返回对应翼型
func Mix(inner, outer Lookup, w float64) Lookup {
	switch {
	case w <= 0 || inner == outer:
		return inner
	case w >= 1:
		return outer
	}
	return Blend{Inner: inner, Outer: outer, Weight: w}
}

// LiftDrag 两翼型在同一攻角处的系数线性混合
func (b Blend) LiftDrag(alpha float64) (cl, cd float64, inRange bool) {
	cl1, cd1, in1 := b.Inner.LiftDrag(alpha)
	cl2, cd2, in2 := b.Outer.LiftDrag(alpha)
	w := b.Weight
	return (1-w)*cl1 + w*cl2, (1-w)*cd1 + w*cd2, in1 && in2
}
