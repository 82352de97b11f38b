package load

import (
	"bem/types"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ScheduleString 解析运行控制表文本
func ScheduleString(s string) (*types.Schedule, error) {
	return ParseSchedule(strings.NewReader(s))
}

// ScheduleFile 读取 .opt 运行控制表
func ScheduleFile(path string) (*types.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseSchedule(f)
}

// ParseSchedule 解析 .opt 运行控制表
// 每行: 风速(m/s) 桨距(deg) 转速(rpm) 气动功率(kW) 气动推力(kN)。
func ParseSchedule(r io.Reader) (*types.Schedule, error) {
	s := newLineScanner(r)
	var rows []types.ScheduleRow
	for s.Scan() {
		if s.Comment() {
			continue
		}
		fields := s.Fields()
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			continue
		}
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidState, s.errorf("需要 5 列, 得到 %d", len(fields)))
		}
		v, err := parseFloats(fields, 5)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidState, s.errorf("%v", err))
		}
		rows = append(rows, types.ScheduleRow{
			WindSpeed: v[0],
			Pitch:     types.Radians(v[1]),
			RPM:       v[2],
			Power:     v[3] * 1e3,
			Thrust:    v[4] * 1e3,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return types.NewSchedule(rows)
}
