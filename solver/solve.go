package solver

import (
	"bem/blade"
	"bem/maths"
	"bem/types"
	"math"
)

// Seed 迭代初值(热启动)
type Seed struct {
	A      float64 // 轴向诱导因子
	APrime float64 // 切向诱导因子
}

// Solver 诱导因子求解器
// 无内部可变状态，可被多个协程同时使用(Debug 跟踪除外)。
type Solver struct {
	Config
}

// New 创建求解器
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Config: cfg}, nil
}

// machine 迭代状态机
type machine struct {
	a, aPrime    float64
	iter         int
	residual     float64
	oscillations int
	lastStep     float64
	glauert      bool
	status       Status
	reason       Reason
	done         bool
}

// element 单个截面的求解上下文
type element struct {
	section  blade.Section
	blades   int
	hub, tip float64
	solidity float64
	state    types.OperatingState
}

// Solve 从零初值求解第 i 个截面
func (s *Solver) Solve(b *blade.Blade, i int, state types.OperatingState) Result {
	return s.SolveFrom(b, i, state, Seed{})
}

// SolveFrom 从给定初值求解第 i 个截面
func (s *Solver) SolveFrom(b *blade.Blade, i int, state types.OperatingState, seed Seed) Result {
	return s.solve(b, b.Sections[i], state, seed)
}

// SolveAt 求解任意半径处的插值截面
func (s *Solver) SolveAt(b *blade.Blade, r float64, state types.OperatingState) (Result, error) {
	sec, err := b.SectionAt(r)
	if err != nil {
		return Result{}, err
	}
	return s.solve(b, sec, state, Seed{}), nil
}

// solve 截面迭代求解
func (s *Solver) solve(b *blade.Blade, sec blade.Section, state types.OperatingState, seed Seed) Result {
	e := element{
		section:  sec,
		blades:   b.Count,
		hub:      b.HubRadius,
		tip:      b.TipRadius,
		solidity: b.SectionSolidity(sec),
		state:    state,
	}
	if s.Debug != nil && s.Debug.IsDebug() {
		s.Debug.Begin(e.section.Radius, state)
	}
	m := &machine{
		a:      maths.Clamp(seed.A, s.MinAxialInduction, s.MaxAxialInduction),
		aPrime: maths.Clamp(seed.APrime, -s.MaxTangentialInduction, s.MaxTangentialInduction),
	}
	// 退化工况：无相对速度或无轴向来流
	switch {
	case state.AxialWind() < types.Epsilon && state.AngularSpeed*e.section.Radius < types.Epsilon:
		m.degenerate(ReasonStationary)
	case state.AxialWind() < types.Epsilon:
		m.degenerate(ReasonNoInflow)
	}
	for !m.done {
		s.step(m, &e)
	}
	return s.result(m, &e)
}

// degenerate 进入退化终态
func (m *machine) degenerate(reason Reason) {
	m.a, m.aPrime = 0, 0
	m.residual = 0
	m.status = StatusDegenerate
	m.reason = reason
	m.done = true
}

// lossFactor 叶尖与轮毂损失
func (s *Solver) lossFactor(e *element, phi float64) float64 {
	F := 1.0
	if s.TipLoss {
		F *= TipLossFactor(e.blades, e.section.Radius, e.tip, phi)
	}
	if s.HubLoss {
		F *= HubLossFactor(e.blades, e.section.Radius, e.hub, phi)
	}
	return F
}

// step 状态转移：一次迭代
func (s *Solver) step(m *machine, e *element) {
	if m.iter >= s.MaxIterations {
		m.status = StatusNotConverged
		m.done = true
		return
	}
	m.iter++
	// 1. 叶素速度三角形与力系数
	k := e.section.Kinematics(m.a, m.aPrime, e.state)
	if k.Degenerate {
		m.degenerate(ReasonStationary)
		return
	}
	// 2. 损失因子
	F := s.lossFactor(e, k.InflowAngle)
	if F < types.Epsilon {
		m.degenerate(ReasonUnloaded)
		return
	}
	// 3. 动量平衡
	sin, cos := math.Sincos(k.InflowAngle)
	aNew := 0.0
	m.glauert = false
	if sc := e.solidity * k.Cn; sc != 0 {
		aNew, m.glauert = axialInduction(4*F*sin*sin/sc, F, s.CriticalInduction)
	}
	aNew = maths.Clamp(aNew, s.MinAxialInduction, s.MaxAxialInduction)
	aPrimeNew := 0.0
	if st := e.solidity * k.Ct; st != 0 && e.state.AngularSpeed > 0 {
		aPrimeNew = tangentialInduction(4 * F * sin * cos / st)
	}
	aPrimeNew = maths.Clamp(aPrimeNew, -s.MaxTangentialInduction, s.MaxTangentialInduction)
	if !maths.IsFinite(aNew) || !maths.IsFinite(aPrimeNew) {
		m.status = StatusNotConverged
		m.done = true
		return
	}
	// 4. 更新量
	stepA := aNew - m.a
	m.residual = math.Max(math.Abs(stepA), math.Abs(aPrimeNew-m.aPrime))
	if stepA*m.lastStep < 0 {
		m.oscillations++
	}
	m.lastStep = stepA
	// 5. 松弛
	m.a += s.Relaxation * stepA
	m.aPrime += s.Relaxation * (aPrimeNew - m.aPrime)
	if s.Debug != nil && s.Debug.IsDebug() {
		s.Debug.Update(types.Iterate{
			Iter:        m.iter,
			A:           m.a,
			APrime:      m.aPrime,
			Residual:    m.residual,
			TipLoss:     F,
			InflowAngle: k.InflowAngle,
			Glauert:     m.glauert,
		})
	}
	if m.residual < s.Tolerance {
		m.status = StatusConverged
		m.done = true
	}
}

// result 由终态生成结果
func (s *Solver) result(m *machine, e *element) Result {
	r := Result{
		Radius:       e.section.Radius,
		A:            m.a,
		APrime:       m.aPrime,
		Status:       m.status,
		Reason:       m.reason,
		Iterations:   m.iter,
		Residual:     m.residual,
		Oscillations: m.oscillations,
		Glauert:      m.glauert,
		Solidity:     e.solidity,
	}
	k := e.section.Kinematics(m.a, m.aPrime, e.state)
	r.InflowAngle = k.InflowAngle
	r.AngleOfAttack = k.AngleOfAttack
	r.Cl, r.Cd = k.Cl, k.Cd
	r.Cn, r.Ct = k.Cn, k.Ct
	r.RelativeVelocity = k.RelativeVelocity
	r.Normal, r.Tangential = k.Normal, k.Tangential
	r.Extrapolated = !k.InRange
	if !k.Degenerate {
		r.TipLoss = s.lossFactor(e, k.InflowAngle)
	}
	if m.reason == ReasonUnloaded {
		r.Normal, r.Tangential = 0, 0
	}
	return r
}

// SolveBlade 依次求解叶片全部截面
func (s *Solver) SolveBlade(b *blade.Blade, state types.OperatingState) []Result {
	results := make([]Result, len(b.Sections))
	for i := range b.Sections {
		results[i] = s.Solve(b, i, state)
	}
	return results
}
