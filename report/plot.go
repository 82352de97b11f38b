package report

import (
	"bem/airfoil"
	"bem/rotor"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// 默认图片尺寸
const (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 5 * vg.Inch
)

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X, pts[i].Y = xs[i], ys[i]
	}
	return pts
}

// scale 返回缩放后的副本
func scale(ys []float64, k float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = y * k
	}
	return out
}

// PowerPlot 功率、推力、扭矩随风速变化
func PowerPlot(perfs []rotor.Performance) (*plot.Plot, error) {
	perfs = rotor.Curve(perfs, rotor.ByWindSpeed)
	xs, power := rotor.Points(perfs, rotor.ByWindSpeed, rotor.PowerOf)
	_, thrust := rotor.Points(perfs, rotor.ByWindSpeed, rotor.ThrustOf)
	_, torque := rotor.Points(perfs, rotor.ByWindSpeed, rotor.TorqueOf)
	p := plot.New()
	p.Title.Text = "Power curve"
	p.X.Label.Text = "Wind speed (m/s)"
	p.Y.Label.Text = "kW / kN / kN·m"
	p.Add(plotter.NewGrid())
	err := plotutil.AddLinePoints(p,
		"Power kW", xys(xs, scale(power, 1e-3)),
		"Thrust kN", xys(xs, scale(thrust, 1e-3)),
		"Torque kN·m", xys(xs, scale(torque, 1e-3)),
	)
	if err != nil {
		return nil, fmt.Errorf("绘制功率曲线: %w", err)
	}
	return p, nil
}

// CoefficientPlot Cp、Ct 随叶尖速比变化
func CoefficientPlot(perfs []rotor.Performance) (*plot.Plot, error) {
	perfs = rotor.Curve(perfs, rotor.ByTipSpeedRatio)
	xs, cp := rotor.Points(perfs, rotor.ByTipSpeedRatio, rotor.CpOf)
	_, ct := rotor.Points(perfs, rotor.ByTipSpeedRatio, rotor.CtOf)
	p := plot.New()
	p.Title.Text = "Rotor coefficients"
	p.X.Label.Text = "Tip speed ratio"
	p.Y.Label.Text = "Cp / Ct"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, "Cp", xys(xs, cp), "Ct", xys(xs, ct)); err != nil {
		return nil, fmt.Errorf("绘制系数曲线: %w", err)
	}
	return p, nil
}

// SpanwisePlot 单个工况的展向 a、a' 分布
func SpanwisePlot(perf *rotor.Performance) (*plot.Plot, error) {
	n := len(perf.Sections)
	r, a, ap := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, s := range perf.Sections {
		r[i], a[i], ap[i] = s.Radius, s.A, s.APrime
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Induction factors at V=%.2f m/s", perf.State.WindSpeed)
	p.X.Label.Text = "Radius (m)"
	p.Y.Label.Text = "Induction factor"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLinePoints(p, "a", xys(r, a), "a'", xys(r, ap)); err != nil {
		return nil, fmt.Errorf("绘制展向分布: %w", err)
	}
	return p, nil
}

// ShapePlot 翼型外形
func ShapePlot(shapes ...*airfoil.Shape) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Airfoil shapes"
	p.X.Label.Text = "x/c"
	p.Y.Label.Text = "y/c"
	vs := make([]any, 0, 2*len(shapes))
	for _, s := range shapes {
		pts := make(plotter.XYs, len(s.Coords))
		for i, c := range s.Coords {
			pts[i].X, pts[i].Y = c.X, c.Y
		}
		vs = append(vs, s.Name, pts)
	}
	if err := plotutil.AddLines(p, vs...); err != nil {
		return nil, fmt.Errorf("绘制翼型外形: %w", err)
	}
	return p, nil
}

// WritePNG 以 PNG 格式输出
func WritePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(PlotWidth, PlotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
