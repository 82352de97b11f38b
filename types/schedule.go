package types

import (
	"bem/maths"
	"fmt"
)

// ScheduleRow 运行控制表的一行
type ScheduleRow struct {
	WindSpeed float64 `json:"wind_speed" yaml:"wind_speed"` // 风速 m/s
	Pitch     float64 `json:"pitch" yaml:"pitch"`           // 桨距角 rad
	RPM       float64 `json:"rpm" yaml:"rpm"`               // 转速 rpm
	Power     float64 `json:"power" yaml:"power"`           // 参考气动功率 W
	Thrust    float64 `json:"thrust" yaml:"thrust"`         // 参考气动推力 N
}

// Schedule 随风速变化的桨距与转速控制表
// 风速超出范围时按端点钳位。
type Schedule struct {
	Rows                      []ScheduleRow
	pitch, rpm, power, thrust *maths.Table
}

// NewSchedule 创建控制表，风速必须严格递增
func NewSchedule(rows []ScheduleRow) (*Schedule, error) {
	n := len(rows)
	v := make([]float64, n)
	cols := [4][]float64{make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)}
	for i, r := range rows {
		v[i] = r.WindSpeed
		cols[0][i], cols[1][i], cols[2][i], cols[3][i] = r.Pitch, r.RPM, r.Power, r.Thrust
	}
	var tables [4]*maths.Table
	for i := range cols {
		t, err := maths.NewTable(v, cols[i])
		if err != nil {
			return nil, fmt.Errorf("%w: 控制表: %v", ErrInvalidState, err)
		}
		tables[i] = t
	}
	return &Schedule{
		Rows:   append([]ScheduleRow(nil), rows...),
		pitch:  tables[0],
		rpm:    tables[1],
		power:  tables[2],
		thrust: tables[3],
	}, nil
}

// State 风速 v 下的运行工况
func (s *Schedule) State(v, airDensity float64) (OperatingState, error) {
	pitch, _ := s.pitch.At(v)
	rpm, _ := s.rpm.At(v)
	return FromRPM(v, rpm, airDensity, pitch)
}

// States 一组风速下的运行工况，顺序与输入一致
func (s *Schedule) States(winds []float64, airDensity float64) ([]OperatingState, error) {
	states := make([]OperatingState, len(winds))
	for i, v := range winds {
		st, err := s.State(v, airDensity)
		if err != nil {
			return nil, err
		}
		states[i] = st
	}
	return states, nil
}

// Range 在 [min,max] 上等距取 n 个风速生成工况
func (s *Schedule) Range(min, max float64, n int, airDensity float64) ([]OperatingState, error) {
	return s.States(maths.Linspace(min, max, n), airDensity)
}

// Reference 风速 v 下的参考功率与推力
func (s *Schedule) Reference(v float64) (power, thrust float64) {
	power, _ = s.power.At(v)
	thrust, _ = s.thrust.At(v)
	return power, thrust
}

// Bounds 控制表风速范围
func (s *Schedule) Bounds() (min, max float64) { return s.pitch.Bounds() }
