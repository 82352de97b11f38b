package solver

import (
	"bem/airfoil"
	"bem/blade"
	"bem/types"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// betzBlade 叶尖半径50m，单截面位于半径中点，零扭角薄翼
func betzBlade(t testing.TB) *blade.Blade {
	p, err := airfoil.ThinAirfoil("thin", 0.01, types.Radians(30), 61)
	require.NoError(t, err)
	b, err := blade.NewBlade(3, 0, 50, []blade.Section{
		{Radius: 25, Chord: 2.75, Twist: 0, Airfoil: p},
	})
	require.NoError(t, err)
	return b
}

// betzState 风速10m/s，叶尖速比8
func betzState(t testing.TB) types.OperatingState {
	s, err := types.NewOperatingState(10, 8*10/50.0, types.StandardDensity, 0)
	require.NoError(t, err)
	return s
}

func newSolver(t testing.TB, edit func(*Config)) *Solver {
	cfg := DefaultConfig()
	if edit != nil {
		edit(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestBetzRegime(t *testing.T) {
	s := newSolver(t, nil)
	r := s.Solve(betzBlade(t), 0, betzState(t))
	require.Equal(t, StatusConverged, r.Status, r.String())
	assert.Less(t, r.Iterations, s.MaxIterations)
	// 接近 Betz 最优 a≈1/3
	assert.InDelta(t, 0.336, r.A, 0.01)
	assert.InDelta(t, 0.0129, r.APrime, 0.001)
	assert.False(t, r.Glauert)
	assert.False(t, r.Extrapolated)
	assert.InDelta(t, 1, r.TipLoss, 1e-3)
	assert.Less(t, r.Residual, s.Tolerance)
	assert.NoError(t, r.Err())
	assert.Greater(t, r.Normal, 0.0)
	assert.Greater(t, r.Tangential, 0.0)
}

func TestStationaryRotor(t *testing.T) {
	s := newSolver(t, nil)
	state, err := types.NewOperatingState(0, 0, types.StandardDensity, 0)
	require.NoError(t, err)
	r := s.SolveFrom(betzBlade(t), 0, state, Seed{A: 0.3, APrime: 0.1})
	assert.Equal(t, StatusDegenerate, r.Status)
	assert.Equal(t, ReasonStationary, r.Reason)
	assert.Zero(t, r.A)
	assert.Zero(t, r.APrime)
	assert.Zero(t, r.Normal)
	assert.Zero(t, r.Tangential)
	assert.Zero(t, r.RelativeVelocity)
	assert.NoError(t, r.Err())
}

func TestNoAxialInflow(t *testing.T) {
	s := newSolver(t, nil)
	state, err := types.NewOperatingState(0, 1, types.StandardDensity, types.Radians(2))
	require.NoError(t, err)
	r := s.Solve(betzBlade(t), 0, state)
	assert.Equal(t, StatusDegenerate, r.Status)
	assert.Equal(t, ReasonNoInflow, r.Reason)
	assert.Zero(t, r.A)
	assert.Zero(t, r.APrime)
	// 纯旋转时攻角为负桨距
	assert.InDelta(t, -types.Radians(2), r.AngleOfAttack, 1e-12)
	assert.InDelta(t, 25, r.RelativeVelocity, 1e-12)
}

func TestRelaxationInvariance(t *testing.T) {
	const tol = 1e-8
	b, state := betzBlade(t), betzState(t)
	var results []Result
	for _, relax := range []float64{0.3, 0.5, 0.9} {
		s := newSolver(t, func(c *Config) {
			c.Tolerance = tol
			c.MaxIterations = 1000
			c.Relaxation = relax
		})
		r := s.Solve(b, 0, state)
		require.Equal(t, StatusConverged, r.Status, "松弛因子 %g 未收敛", relax)
		results = append(results, r)
	}
	for _, r := range results[1:] {
		assert.InDelta(t, results[0].A, r.A, 2*tol)
		assert.InDelta(t, results[0].APrime, r.APrime, 2*tol)
	}
}

func TestReseedIsFixedPoint(t *testing.T) {
	b, state := betzBlade(t), betzState(t)
	s := newSolver(t, func(c *Config) { c.Tolerance = 1e-8; c.MaxIterations = 1000 })
	first := s.Solve(b, 0, state)
	require.True(t, first.Converged())
	again := s.SolveFrom(b, 0, state, first.Seed())
	assert.True(t, again.Converged())
	assert.LessOrEqual(t, again.Iterations, 1)
	assert.InDelta(t, first.A, again.A, 1e-8)
}

func TestNotConverged(t *testing.T) {
	s := newSolver(t, func(c *Config) { c.MaxIterations = 1 })
	r := s.SolveFrom(betzBlade(t), 0, betzState(t), Seed{A: 0.9, APrime: 0.3})
	assert.Equal(t, StatusNotConverged, r.Status)
	assert.Equal(t, 1, r.Iterations)
	assert.ErrorIs(t, r.Err(), types.ErrNotConverged)
	// 最后一次迭代值可用
	assert.True(t, !math.IsNaN(r.A) && !math.IsInf(r.A, 0))
	assert.True(t, !math.IsNaN(r.APrime) && !math.IsInf(r.APrime, 0))
	assert.NotEqual(t, 0.9, r.A)
}

func TestDeterministic(t *testing.T) {
	b, state := betzBlade(t), betzState(t)
	s := newSolver(t, nil)
	r1 := s.Solve(b, 0, state)
	r2 := s.Solve(b, 0, state)
	assert.Equal(t, r1, r2)
}

func TestTipSectionUnloaded(t *testing.T) {
	p, err := airfoil.ThinAirfoil("thin", 0.01, types.Radians(30), 61)
	require.NoError(t, err)
	b, err := blade.NewBlade(3, 0, 50, []blade.Section{
		{Radius: 25, Chord: 2, Airfoil: p},
		{Radius: 50, Chord: 1, Airfoil: p},
	})
	require.NoError(t, err)
	r := newSolver(t, nil).Solve(b, 1, betzState(t))
	assert.Equal(t, StatusDegenerate, r.Status)
	assert.Equal(t, ReasonUnloaded, r.Reason)
	assert.Zero(t, r.Normal)
	assert.Zero(t, r.Tangential)
	assert.Zero(t, r.TipLoss)
}

func TestHighInductionBranch(t *testing.T) {
	p, err := airfoil.ThinAirfoil("thin", 0.01, types.Radians(30), 61)
	require.NoError(t, err)
	b, err := blade.NewBlade(3, 0, 50, []blade.Section{
		{Radius: 45, Chord: 6, Airfoil: p},
	})
	require.NoError(t, err)
	s := newSolver(t, func(c *Config) { c.MaxIterations = 500 })
	r := s.Solve(b, 0, betzState(t))
	require.Equal(t, StatusConverged, r.Status, r.String())
	assert.Greater(t, r.A, s.CriticalInduction)
	assert.True(t, r.Glauert)
	assert.Less(t, r.A, 1.0)
}

func TestConfigValidate(t *testing.T) {
	edits := []func(*Config){
		func(c *Config) { c.Tolerance = 0 },
		func(c *Config) { c.MaxIterations = 0 },
		func(c *Config) { c.Relaxation = 1 },
		func(c *Config) { c.Relaxation = 0 },
		func(c *Config) { c.CriticalInduction = 0.2 },
		func(c *Config) { c.MaxAxialInduction = 1 },
		func(c *Config) { c.MaxTangentialInduction = 0 },
	}
	for i, edit := range edits {
		cfg := DefaultConfig()
		edit(&cfg)
		_, err := New(cfg)
		assert.ErrorIs(t, err, types.ErrInvalidConfig, "case %d", i)
	}
}

// trace 记录迭代历史
type trace struct {
	begins int
	iters  []types.Iterate
}

func (*trace) IsDebug() bool                          { return true }
func (tr *trace) Begin(float64, types.OperatingState) { tr.begins++ }
func (tr *trace) Update(it types.Iterate)             { tr.iters = append(tr.iters, it) }
func (*trace) Render(io.Writer) error                 { return nil }
func (*trace) Error(error)                            {}

func TestDebugTrace(t *testing.T) {
	tr := &trace{}
	s := newSolver(t, func(c *Config) { c.Debug = tr })
	r := s.Solve(betzBlade(t), 0, betzState(t))
	assert.Equal(t, 1, tr.begins)
	require.Len(t, tr.iters, r.Iterations)
	last := tr.iters[len(tr.iters)-1]
	assert.Equal(t, r.A, last.A)
	assert.Equal(t, r.Residual, last.Residual)
	for i, it := range tr.iters {
		assert.Equal(t, i+1, it.Iter)
	}
}

func BenchmarkSolve(b *testing.B) {
	bl, state := betzBlade(b), betzState(b)
	s := newSolver(b, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Solve(bl, 0, state)
	}
}

func TestSolveAt(t *testing.T) {
	p, err := airfoil.ThinAirfoil("thin", 0.01, types.Radians(30), 61)
	require.NoError(t, err)
	b, err := blade.NewBlade(3, 0, 50, []blade.Section{
		{Radius: 20, Chord: 3.0, Twist: types.Radians(2), Airfoil: p},
		{Radius: 30, Chord: 2.5, Twist: 0, Airfoil: p},
	})
	require.NoError(t, err)
	s := newSolver(t, nil)
	state := betzState(t)

	// 节点处与按序号求解一致
	r, err := s.SolveAt(b, 30, state)
	require.NoError(t, err)
	assert.Equal(t, s.Solve(b, 1, state), r)

	r, err = s.SolveAt(b, 25, state)
	require.NoError(t, err)
	require.Equal(t, StatusConverged, r.Status, r.String())
	assert.Equal(t, 25.0, r.Radius)
	assert.InDelta(t, 3*2.75/(2*math.Pi*25), r.Solidity, 1e-12)
	assert.InDelta(t, r.InflowAngle-types.Radians(1), r.AngleOfAttack, 1e-12)
	lo, hi := s.Solve(b, 0, state), s.Solve(b, 1, state)
	assert.Greater(t, r.Tangential, 0.0)
	assert.True(t, r.A > math.Min(lo.A, hi.A)-0.05 && r.A < math.Max(lo.A, hi.A)+0.05, r.String())

	_, err = s.SolveAt(b, 60, state)
	assert.ErrorIs(t, err, types.ErrInvalidGeometry)
}
