package main

import (
	"bem"
	"bem/airfoil"
	"bem/internal/server"
	"bem/load"
	"bem/report"
	"bem/rotor"
	"bem/types"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
)

// solverFlags 覆盖工程文件中的求解参数
type solverFlags struct {
	tolerance  float64
	maxIter    int
	relax      float64
	hubLoss    bool
	noTipLoss  bool
	airDensity float64
}

func (o *solverFlags) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.Float64Var(&o.tolerance, "tol", 0, "收敛容差")
	f.IntVar(&o.maxIter, "max-iter", 0, "最大迭代次数")
	f.Float64Var(&o.relax, "relax", 0, "松弛因子 (0,1)")
	f.BoolVar(&o.hubLoss, "hub-loss", false, "启用轮毂损失")
	f.BoolVar(&o.noTipLoss, "no-tip-loss", false, "关闭叶尖损失")
	f.Float64Var(&o.airDensity, "rho", 0, "空气密度 kg/m^3")
}

// apply 命令行中显式给出的参数覆盖工程文件
func (o *solverFlags) apply(cmd *cobra.Command, p *load.Project) {
	f := cmd.Flags()
	if f.Changed("tol") {
		p.Solver.Tolerance = o.tolerance
	}
	if f.Changed("max-iter") {
		p.Solver.MaxIterations = o.maxIter
	}
	if f.Changed("relax") {
		p.Solver.Relaxation = o.relax
	}
	if f.Changed("hub-loss") {
		p.Solver.HubLoss = o.hubLoss
	}
	if f.Changed("no-tip-loss") {
		p.Solver.TipLoss = !o.noTipLoss
	}
	if f.Changed("rho") {
		p.AirDensity = o.airDensity
	}
}

// openTurbine 读取工程文件并应用命令行参数
func openTurbine(cmd *cobra.Command, path string, opts *solverFlags, edit func(*load.Project)) (*bem.Turbine, error) {
	p, err := load.LoadProject(path)
	if err != nil {
		return nil, err
	}
	opts.apply(cmd, p)
	if edit != nil {
		edit(p)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return bem.FromProject(p)
}

type solveArgs struct {
	wind, rpm, pitch float64
	yaw, radius      float64
	asJSON           bool
	trace            string
}

func runSolve(cmd *cobra.Command, path string, opts *solverFlags, a solveArgs) error {
	t, err := openTurbine(cmd, path, opts, nil)
	if err != nil {
		return err
	}
	var state types.OperatingState
	if cmd.Flags().Changed("rpm") {
		state, err = types.FromRPM(a.wind, a.rpm, t.AirDensity, types.Radians(a.pitch))
	} else {
		state, err = t.State(a.wind)
	}
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("yaw") {
		state = state.WithYaw(types.Radians(a.yaw))
	}
	if cmd.Flags().Changed("radius") {
		return solveSection(cmd, t, state, a)
	}
	var tr *report.Trace
	if a.trace != "" {
		tr = &report.Trace{}
		t = t.WithDebug(tr)
	}
	perf, err := t.Solve(state)
	if err != nil {
		return err
	}
	if tr != nil {
		if err := writeFile(a.trace, tr.Render); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	if a.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(perf)
	}
	return report.WriteSections(out, &perf)
}

// solveSection 输出任意半径处的截面解
func solveSection(cmd *cobra.Command, t *bem.Turbine, state types.OperatingState, a solveArgs) error {
	res, err := t.SolveAt(a.radius, state)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if a.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Fprintln(out, state)
	fmt.Fprintln(out, res)
	fmt.Fprintf(out, "Cn=%.4f Ct=%.4f W=%.3fm/s 法向力=%.2fN/m 切向力=%.2fN/m\n",
		res.Cn, res.Ct, res.RelativeVelocity, res.Normal, res.Tangential)
	return nil
}

type sweepArgs struct {
	min, max             float64
	points, workers      int
	warm                 bool
	csv, json, png, html string
	coeffPNG, spanPNG    string
}

// writePlot 生成并写入 PNG
func writePlot(path string, build func() (*plot.Plot, error)) error {
	if path == "" {
		return nil
	}
	p, err := build()
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error { return report.WritePNG(w, p) })
}

func runSweep(cmd *cobra.Command, path string, opts *solverFlags, a sweepArgs) error {
	t, err := openTurbine(cmd, path, opts, func(p *load.Project) {
		if a.min >= 0 {
			p.Sweep.MinWind = a.min
		}
		if a.max >= 0 {
			p.Sweep.MaxWind = a.max
		}
		if a.points > 0 {
			p.Sweep.Points = a.points
		}
		if a.workers > 0 {
			p.Sweep.Workers = a.workers
		}
		if a.warm {
			p.Sweep.WarmStart = true
		}
	})
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	perfs, err := t.DefaultPowerCurve(ctx, logger)
	if err != nil {
		return err
	}
	rec := t.Record(perfs)
	if a.csv != "" {
		if err := writeFile(a.csv, func(w io.Writer) error { return report.WriteCSV(w, perfs) }); err != nil {
			return err
		}
	}
	if a.json != "" {
		if err := writeFile(a.json, rec.Render); err != nil {
			return err
		}
	}
	best := rotor.BestCp(perfs)
	plots := []struct {
		path  string
		build func() (*plot.Plot, error)
	}{
		{a.png, func() (*plot.Plot, error) { return report.PowerPlot(perfs) }},
		{a.coeffPNG, func() (*plot.Plot, error) { return report.CoefficientPlot(perfs) }},
		{a.spanPNG, func() (*plot.Plot, error) {
			if best < 0 {
				return nil, fmt.Errorf("没有可绘制的工况")
			}
			return report.SpanwisePlot(&perfs[best])
		}},
	}
	for _, p := range plots {
		if err := writePlot(p.path, p.build); err != nil {
			return err
		}
	}
	if a.html != "" {
		charts := &report.Charts{Record: rec}
		if err := writeFile(a.html, charts.Render); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	for i := range perfs {
		fmt.Fprintln(out, &perfs[i])
	}
	if best >= 0 {
		fmt.Fprintf(out, "最大 Cp=%.4f @ V=%.2fm/s λ=%.3f\n", perfs[best].Cp, perfs[best].State.WindSpeed, perfs[best].TipSpeedRatio)
	}
	winds, pitches := rotor.Points(rotor.Curve(perfs, rotor.ByWindSpeed), rotor.ByWindSpeed, rotor.ByPitch)
	for i, p := range pitches {
		if p > types.Epsilon {
			fmt.Fprintf(out, "变桨起始 V=%.2fm/s pitch=%.2f°\n", winds[i], types.Degrees(p))
			break
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, path string, opts *solverFlags, port int) error {
	t, err := openTurbine(cmd, path, opts, nil)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.New(t, log.Default()).Run(ctx, fmt.Sprintf(":%d", port))
}

func runShape(paths []string, out string) error {
	shapes := make([]*airfoil.Shape, 0, len(paths))
	for _, path := range paths {
		s, err := load.ShapeFile(path)
		if err != nil {
			return err
		}
		log.Printf("%s: %d 点, 最大相对厚度 %.4f", s.Name, len(s.Coords), s.Thickness())
		shapes = append(shapes, s)
	}
	p, err := report.ShapePlot(shapes...)
	if err != nil {
		return err
	}
	return writeFile(out, func(w io.Writer) error { return report.WritePNG(w, p) })
}

// writeFile 创建文件并写入
func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("写入 %s: %w", path, err)
	}
	return f.Close()
}
