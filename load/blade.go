package load

import (
	"bem/airfoil"
	"bem/blade"
	"bem/types"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// bladeColumns BlSpn BlCrvAC BlSwpAC BlCrvAng BlTwist BlChord BlAFID
const bladeColumns = 7

// BladeString 解析叶片表文本
func BladeString(s string, count int, hubRadius float64, polars map[int]airfoil.Lookup) (*blade.Blade, error) {
	return ParseBlade(strings.NewReader(s), count, hubRadius, polars)
}

// ParseBlade 解析 AeroDyn15 叶片定义
// 截面半径 = 轮毂半径 + BlSpn，叶尖半径取最后一个截面；扭角由度转为弧度。
// 半径为0的根部节点没有载荷，直接跳过。
func ParseBlade(r io.Reader, count int, hubRadius float64, polars map[int]airfoil.Lookup) (*blade.Blade, error) {
	s := newLineScanner(r)
	nodes := -1
	var sections []blade.Section
	for s.Scan() {
		if s.Comment() {
			continue
		}
		fields := s.Fields()
		if v, ok := keyValue(fields, "NumBlNds"); ok {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: %v", types.ErrInvalidGeometry, s.errorf("NumBlNds %q 无效", v))
			}
			nodes = n
			continue
		}
		// 标题、表头与单位行
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			continue
		}
		row, err := parseFloats(fields, bladeColumns)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidGeometry, s.errorf("%v", err))
		}
		id := int(row[6])
		if float64(id) != row[6] {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidGeometry, s.errorf("翼型编号 %g 不是整数", row[6]))
		}
		foil, ok := polars[id]
		if !ok {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidGeometry, s.errorf("未定义的翼型编号 %d", id))
		}
		radius := hubRadius + row[0]
		if radius <= 0 {
			continue
		}
		sections = append(sections, blade.Section{
			Radius:  radius,
			Chord:   row[5],
			Twist:   types.Radians(row[4]),
			Airfoil: foil,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if nodes >= 0 && len(sections) > nodes {
		return nil, fmt.Errorf("%w: NumBlNds=%d, 读取到 %d 个截面", types.ErrInvalidGeometry, nodes, len(sections))
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: 叶片表没有截面", types.ErrInvalidGeometry)
	}
	return blade.NewBlade(count, hubRadius, sections[len(sections)-1].Radius, sections)
}
