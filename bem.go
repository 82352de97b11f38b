// Package bem 水平轴风力机叶素动量(BEM)稳态气动性能计算。
package bem

import (
	"bem/blade"
	"bem/load"
	"bem/maths"
	"bem/report"
	"bem/rotor"
	"bem/solver"
	"bem/types"
	"context"
	"fmt"
	"log"
)

// Turbine 风力机
// 持有叶片、求解参数与可选的运行控制表，创建后只读。
type Turbine struct {
	Name       string
	Blade      *blade.Blade
	Schedule   *types.Schedule // 可为空
	AirDensity float64
	Range      load.SweepRange
	solver     *solver.Solver
}

// NewTurbine 创建风力机
func NewTurbine(name string, b *blade.Blade, cfg solver.Config, airDensity float64) (*Turbine, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !(airDensity > 0) {
		return nil, fmt.Errorf("%w: 空气密度必须为正 %g", types.ErrInvalidConfig, airDensity)
	}
	s, err := solver.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Turbine{
		Name:       name,
		Blade:      b,
		AirDensity: airDensity,
		Range: load.SweepRange{
			MinWind: types.SweepMinWind,
			MaxWind: types.SweepMaxWind,
			Points:  types.SweepPoints,
		},
		solver: s,
	}, nil
}

// Load 由 YAML 工程文件创建风力机
func Load(path string) (*Turbine, error) {
	p, err := load.LoadProject(path)
	if err != nil {
		return nil, err
	}
	return FromProject(p)
}

// FromProject 由工程参数创建风力机
func FromProject(p *load.Project) (*Turbine, error) {
	b, err := p.OpenBlade()
	if err != nil {
		return nil, err
	}
	t, err := NewTurbine(p.Name, b, p.Solver, p.AirDensity)
	if err != nil {
		return nil, err
	}
	if t.Schedule, err = p.OpenSchedule(); err != nil {
		return nil, err
	}
	t.Range = p.Sweep
	return t, nil
}

// Config 求解参数副本
func (t *Turbine) Config() solver.Config { return t.solver.Config }

// WithDebug 返回使用迭代跟踪的副本
func (t *Turbine) WithDebug(d types.Debug) *Turbine {
	cp := *t
	cfg := t.solver.Config
	cfg.Debug = d
	cp.solver = &solver.Solver{Config: cfg}
	return &cp
}

// State 风速 v 下的运行工况，需要运行控制表
func (t *Turbine) State(v float64) (types.OperatingState, error) {
	if t.Schedule == nil {
		return types.OperatingState{}, fmt.Errorf("%w: %s 未指定运行控制表", types.ErrInvalidConfig, t.Name)
	}
	return t.Schedule.State(v, t.AirDensity)
}

// Solve 求解单个工况
func (t *Turbine) Solve(state types.OperatingState) (rotor.Performance, error) {
	if err := state.Validate(); err != nil {
		return rotor.Performance{}, err
	}
	return rotor.Evaluate(t.solver, t.Blade, state), nil
}

// SolveAt 求解半径 r 处的插值截面
func (t *Turbine) SolveAt(r float64, state types.OperatingState) (solver.Result, error) {
	if err := state.Validate(); err != nil {
		return solver.Result{}, err
	}
	return t.solver.SolveAt(t.Blade, r, state)
}

// SolveWind 按控制表求解风速 v 下的性能
func (t *Turbine) SolveWind(v float64) (rotor.Performance, error) {
	state, err := t.State(v)
	if err != nil {
		return rotor.Performance{}, err
	}
	return t.Solve(state)
}

// Sweep 求解一组工况
func (t *Turbine) Sweep(ctx context.Context, states []types.OperatingState, logger *log.Logger) ([]rotor.Performance, error) {
	return rotor.Sweep(ctx, t.solver, t.Blade, states, rotor.SweepOptions{
		Workers:   t.Range.Workers,
		WarmStart: t.Range.WarmStart,
		Logger:    logger,
	})
}

// PowerCurve 按控制表在 [min,max] 上等距求解 n 个风速
func (t *Turbine) PowerCurve(ctx context.Context, min, max float64, n int, logger *log.Logger) ([]rotor.Performance, error) {
	if t.Schedule == nil {
		return nil, fmt.Errorf("%w: %s 未指定运行控制表", types.ErrInvalidConfig, t.Name)
	}
	states, err := t.Schedule.States(maths.Linspace(min, max, n), t.AirDensity)
	if err != nil {
		return nil, err
	}
	return t.Sweep(ctx, states, logger)
}

// DefaultPowerCurve 按工程扫描范围求解功率曲线
func (t *Turbine) DefaultPowerCurve(ctx context.Context, logger *log.Logger) ([]rotor.Performance, error) {
	return t.PowerCurve(ctx, t.Range.MinWind, t.Range.MaxWind, t.Range.Points, logger)
}

// Record 生成扫描记录
func (t *Turbine) Record(perfs []rotor.Performance) *report.Record {
	return report.NewRecord(t.Name, t.Blade, perfs).WithSchedule(t.Schedule)
}
