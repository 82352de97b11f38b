package rotor

import (
	"bem/blade"
	"bem/solver"
	"bem/types"
	"context"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SweepOptions 扫描选项
type SweepOptions struct {
	Workers   int         // 并发数，<=0 时取 CPU 数
	WarmStart bool        // 以前一工况同截面结果作为初值(串行执行)
	Logger    *log.Logger // 未收敛工况日志，nil 时使用 log.Default()
}

// Sweep 对一组工况求解转子性能
// 返回顺序与输入一致；单个工况未收敛只记录不终止。
func Sweep(ctx context.Context, s *solver.Solver, b *blade.Blade, states []types.OperatingState, opts SweepOptions) ([]Performance, error) {
	for i, st := range states {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("工况 %d: %w", i, err)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	perfs := make([]Performance, len(states))
	report := func(i int) {
		if p := &perfs[i]; !p.Converged() {
			logger.Printf("工况 %d (%s) 有 %d 个截面未收敛: %v", i, p.State, len(p.NotConverged), p.NotConverged)
		}
	}
	// 跟踪器与热启动需要串行
	if opts.WarmStart || (s.Debug != nil && s.Debug.IsDebug()) {
		var seeds []solver.Seed
		if opts.WarmStart {
			seeds = make([]solver.Seed, len(b.Sections))
		}
		for i, st := range states {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results := make([]solver.Result, len(b.Sections))
			for j := range b.Sections {
				var seed solver.Seed
				if seeds != nil {
					seed = seeds[j]
				}
				results[j] = s.SolveFrom(b, j, st, seed)
				if seeds != nil && results[j].Converged() {
					seeds[j] = results[j].Seed()
				}
			}
			perfs[i] = Integrate(b, st, results)
			report(i)
		}
		return perfs, nil
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range states {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perfs[i] = Evaluate(s, b, states[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i := range perfs {
		report(i)
	}
	return perfs, nil
}
