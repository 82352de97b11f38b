package report

import (
	"bem/blade"
	"bem/rotor"
	"bem/types"
	"encoding/json"
	"io"
	"log"
)

// SectionInfo 截面几何
type SectionInfo struct {
	Radius float64 `json:"radius"` // m
	Chord  float64 `json:"chord"`  // m
	Twist  float64 `json:"twist"`  // deg
}

// Point 功率曲线上的一个工况
type Point struct {
	WindSpeed     float64 `json:"wind_speed"`
	RPM           float64 `json:"rpm"`
	Pitch         float64 `json:"pitch"` // deg
	TipSpeedRatio float64 `json:"tip_speed_ratio"`
	Power         float64 `json:"power"`
	Thrust        float64 `json:"thrust"`
	Torque        float64 `json:"torque"`
	Cp            float64 `json:"cp"`
	Ct            float64 `json:"ct"`
	Cq            float64 `json:"cq"`
	NotConverged  int     `json:"not_converged"`
	RefPower      float64 `json:"ref_power,omitempty"`  // 控制表参考功率
	RefThrust     float64 `json:"ref_thrust,omitempty"` // 控制表参考推力
}

// Record 一次扫描的记录
type Record struct {
	Name      string              `json:"name"`
	Blades    int                 `json:"blades"`
	HubRadius float64             `json:"hub_radius"`
	TipRadius float64             `json:"tip_radius"`
	Sections  []SectionInfo       `json:"sections"`
	Points    []Point             `json:"points"`
	Details   []rotor.Performance `json:"details,omitempty"` // 含截面分布
}

// NewRecord 由扫描结果生成记录
func NewRecord(name string, b *blade.Blade, perfs []rotor.Performance) *Record {
	rec := &Record{
		Name:      name,
		Blades:    b.Count,
		HubRadius: b.HubRadius,
		TipRadius: b.TipRadius,
		Sections:  make([]SectionInfo, len(b.Sections)),
		Points:    make([]Point, len(perfs)),
		Details:   perfs,
	}
	for i, s := range b.Sections {
		rec.Sections[i] = SectionInfo{Radius: s.Radius, Chord: s.Chord, Twist: types.Degrees(s.Twist)}
	}
	for i := range perfs {
		p := &perfs[i]
		rec.Points[i] = Point{
			WindSpeed:     p.State.WindSpeed,
			RPM:           p.State.RPM(),
			Pitch:         types.Degrees(p.State.Pitch),
			TipSpeedRatio: p.TipSpeedRatio,
			Power:         p.Power,
			Thrust:        p.Thrust,
			Torque:        p.Torque,
			Cp:            p.Cp,
			Ct:            p.Ct,
			Cq:            p.Cq,
			NotConverged:  len(p.NotConverged),
		}
	}
	return rec
}

// WithSchedule 填入控制表参考功率与推力
func (rec *Record) WithSchedule(s *types.Schedule) *Record {
	if s == nil {
		return rec
	}
	for i := range rec.Points {
		rec.Points[i].RefPower, rec.Points[i].RefThrust = s.Reference(rec.Points[i].WindSpeed)
	}
	return rec
}

// Summary 去掉截面分布
func (rec *Record) Summary() *Record {
	r := *rec
	r.Details = nil
	return &r
}

// Render 输出 JSON
func (rec *Record) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// SectionTrace 单截面迭代过程
type SectionTrace struct {
	Radius   float64              `json:"radius"`
	State    types.OperatingState `json:"state"`
	Iterates []types.Iterate      `json:"iterates"`
}

// Trace 迭代跟踪记录
// 求解器按截面顺序调用，不支持并发。
type Trace struct {
	Sections []SectionTrace `json:"sections"`
}

func (*Trace) IsDebug() bool { return true }

// Begin 开始记录新截面
func (t *Trace) Begin(radius float64, state types.OperatingState) {
	t.Sections = append(t.Sections, SectionTrace{Radius: radius, State: state})
}

// Update 记录一次迭代
func (t *Trace) Update(it types.Iterate) {
	if n := len(t.Sections); n > 0 {
		t.Sections[n-1].Iterates = append(t.Sections[n-1].Iterates, it)
	}
}

// Render 输出 JSON
func (t *Trace) Render(w io.Writer) error { return json.NewEncoder(w).Encode(t) }

func (t *Trace) Error(err error) { log.Println(err) }

// Reset 清空记录
func (t *Trace) Reset() { t.Sections = t.Sections[:0] }
