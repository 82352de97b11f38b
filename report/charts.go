package report

import (
	"bem/rotor"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// maxTraceSeries 收敛曲线最多显示的截面数
const maxTraceSeries = 12

// Charts 曲线绘制
type Charts struct {
	*Record
	Trace *Trace // 可为空
}

func newLine(title, subtitle, xName, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        xName,
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yName,
			Scale: opts.Bool(true),
		}),
		charts.WithAnimation(true),
	)
	return line
}

func lineData(ys []float64) []opts.LineData {
	items := make([]opts.LineData, len(ys))
	for i, y := range ys {
		items[i].Value = y
	}
	return items
}

func labels(xs []float64, format string) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = fmt.Sprintf(format, x)
	}
	return out
}

// Render 输出 HTML 页面
func (c *Charts) Render(w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = c.Name
	perfs := rotor.Curve(c.Details, rotor.ByWindSpeed)
	// 功率曲线
	{
		xs, power := rotor.Points(perfs, rotor.ByWindSpeed, rotor.PowerOf)
		_, thrust := rotor.Points(perfs, rotor.ByWindSpeed, rotor.ThrustOf)
		for i := range power {
			power[i] /= 1e3
			thrust[i] /= 1e3
		}
		line := newLine("功率曲线", c.Name, "风速 (m/s)", "kW / kN")
		line.SetXAxis(labels(xs, "%.2f")).
			AddSeries("功率 kW", lineData(power)).
			AddSeries("推力 kN", lineData(thrust))
		if ref := c.reference(perfs); ref != nil {
			line.AddSeries("参考功率 kW", lineData(ref[0])).
				AddSeries("参考推力 kN", lineData(ref[1]))
		}
		page.AddCharts(line)
	}
	// 无量纲系数
	{
		xs, cp := rotor.Points(perfs, rotor.ByWindSpeed, rotor.CpOf)
		_, ct := rotor.Points(perfs, rotor.ByWindSpeed, rotor.CtOf)
		_, cq := rotor.Points(perfs, rotor.ByWindSpeed, rotor.CqOf)
		line := newLine("无量纲系数", "Cp Ct Cq 随风速变化", "风速 (m/s)", "")
		line.SetXAxis(labels(xs, "%.2f")).
			AddSeries("Cp", lineData(cp)).
			AddSeries("Ct", lineData(ct)).
			AddSeries("Cq", lineData(cq))
		page.AddCharts(line)
	}
	// 最佳工况的展向诱导因子分布
	if best := rotor.BestCp(perfs); best >= 0 {
		p := &perfs[best]
		r := make([]float64, len(p.Sections))
		a := make([]float64, len(p.Sections))
		ap := make([]float64, len(p.Sections))
		for i, s := range p.Sections {
			r[i], a[i], ap[i] = s.Radius, s.A, s.APrime
		}
		line := newLine("展向诱导因子", fmt.Sprintf("V=%.2fm/s Cp=%.4f", p.State.WindSpeed, p.Cp), "半径 (m)", "")
		line.SetXAxis(labels(r, "%.2f")).
			AddSeries("a", lineData(a)).
			AddSeries("a'", lineData(ap))
		page.AddCharts(line)
	}
	// 收敛过程
	if c.Trace != nil && len(c.Trace.Sections) > 0 {
		var iters int
		for _, s := range c.Trace.Sections {
			iters = max(iters, len(s.Iterates))
		}
		xs := make([]float64, iters)
		for i := range xs {
			xs[i] = float64(i + 1)
		}
		line := newLine("收敛过程", "各截面未松弛更新量", "迭代次数", "Δ")
		line.SetXAxis(labels(xs, "%.0f"))
		for i, s := range c.Trace.Sections {
			if i == maxTraceSeries {
				break
			}
			res := make([]float64, len(s.Iterates))
			for j, it := range s.Iterates {
				res[j] = it.Residual
			}
			line.AddSeries(fmt.Sprintf("r=%.2f", s.Radius), lineData(res))
		}
		line.SetGlobalOptions(charts.WithYAxisOpts(opts.YAxis{Name: "Δ", Type: "log"}))
		page.AddCharts(line)
	}
	return page.Render(w)
}

// reference 控制表参考功率与推力(kW, kN)
func (c *Charts) reference(perfs []rotor.Performance) [][]float64 {
	if c.Record == nil || len(c.Points) == 0 {
		return nil
	}
	ref := map[float64][2]float64{}
	var has bool
	for _, p := range c.Points {
		ref[p.WindSpeed] = [2]float64{p.RefPower / 1e3, p.RefThrust / 1e3}
		has = has || p.RefPower != 0 || p.RefThrust != 0
	}
	if !has {
		return nil
	}
	out := [][]float64{make([]float64, len(perfs)), make([]float64, len(perfs))}
	for i := range perfs {
		v := ref[perfs[i].State.WindSpeed]
		out[0][i], out[1][i] = v[0], v[1]
	}
	return out
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}

func (c *Charts) Error(err error) { log.Println(err) }
