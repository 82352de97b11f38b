package airfoil

// Point 无量纲翼型坐标 (x/c, y/c)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape 翼型外形
type Shape struct {
	Name      string  `json:"name"`
	Reference Point   `json:"reference"` // 气动参考点
	Coords    []Point `json:"coords"`
}

// Thickness 最大相对厚度
// 按 x 相同的上下表面点计算，外形点数不足时为0。
func (s *Shape) Thickness() float64 {
	var max float64
	for i, p := range s.Coords {
		for _, q := range s.Coords[i+1:] {
			if p.X == q.X {
				if d := p.Y - q.Y; d > max {
					max = d
				} else if -d > max {
					max = -d
				}
			}
		}
	}
	return max
}
