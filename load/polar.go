package load

import (
	"bem/airfoil"
	"bem/types"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PolarString 解析极曲线文本
func PolarString(name, s string) (*airfoil.Polar, error) {
	return ParsePolar(name, strings.NewReader(s))
}

// PolarFile 读取极曲线文件，名称取文件名
func PolarFile(path string) (*airfoil.Polar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParsePolar(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), f)
}

// ParsePolar 解析 AeroDyn15 极曲线
// 读取 Re(百万) 与 NumAlf 后的 NumAlf 行 α(deg) Cl Cd Cm，仅使用第一张表。
func ParsePolar(name string, r io.Reader) (*airfoil.Polar, error) {
	s := newLineScanner(r)
	var (
		reynolds float64
		count    = -1
		samples  []airfoil.Sample
	)
	for s.Scan() {
		if s.Comment() {
			continue
		}
		fields := s.Fields()
		if count < 0 {
			if v, ok := keyValue(fields, "Re"); ok {
				re, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidPolar, name, s.errorf("雷诺数 %q 无效", v))
				}
				reynolds = re * 1e6
			}
			if v, ok := keyValue(fields, "NumAlf"); ok {
				n, err := strconv.Atoi(v)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidPolar, name, s.errorf("NumAlf %q 无效", v))
				}
				count = n
				samples = make([]airfoil.Sample, 0, n)
			}
			continue
		}
		if len(samples) == count {
			break
		}
		row, err := parseFloats(fields, 3)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", types.ErrInvalidPolar, name, s.errorf("%v", err))
		}
		samples = append(samples, airfoil.Sample{Alpha: types.Radians(row[0]), Cl: row[1], Cd: row[2]})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	switch {
	case count < 0:
		return nil, fmt.Errorf("%w: %s: 缺少 NumAlf", types.ErrInvalidPolar, name)
	case len(samples) < count:
		return nil, fmt.Errorf("%w: %s: NumAlf=%d, 仅读取到 %d 行", types.ErrInvalidPolar, name, count, len(samples))
	}
	p, err := airfoil.NewPolar(name, samples)
	if err != nil {
		return nil, err
	}
	p.Reynolds = reynolds
	return p, nil
}

// ParseShape 解析 AeroDyn15 翼型坐标文件
// NumCoords 包含参考点，其后第一行为参考点，其余为外形点。
func ParseShape(name string, r io.Reader) (*airfoil.Shape, error) {
	s := newLineScanner(r)
	shape := &airfoil.Shape{Name: name}
	count, read := -1, 0
	for s.Scan() {
		if s.Comment() {
			continue
		}
		fields := s.Fields()
		if count < 0 {
			if v, ok := keyValue(fields, "NumCoords"); ok {
				n, err := strconv.Atoi(v)
				if err != nil || n < 1 {
					return nil, s.errorf("NumCoords %q 无效", v)
				}
				count = n
			}
			continue
		}
		if read == count {
			break
		}
		xy, err := parseFloats(fields, 2)
		if err != nil {
			return nil, s.errorf("%v", err)
		}
		p := airfoil.Point{X: xy[0], Y: xy[1]}
		if read == 0 {
			shape.Reference = p
		} else {
			shape.Coords = append(shape.Coords, p)
		}
		read++
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if count < 0 || read < count {
		return nil, fmt.Errorf("%s: 坐标数量不足, NumCoords=%d, 读取 %d", name, count, read)
	}
	return shape, nil
}

// ShapeFile 读取翼型坐标文件，名称取文件名
func ShapeFile(path string) (*airfoil.Shape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseShape(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), f)
}
