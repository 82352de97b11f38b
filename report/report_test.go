package report

import (
	"bem/airfoil"
	"bem/blade"
	"bem/rotor"
	"bem/solver"
	"bem/types"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

func testBlade(t *testing.T) *blade.Blade {
	p, err := airfoil.ThinAirfoil("thin", 0.01, types.Radians(30), 61)
	require.NoError(t, err)
	var sections []blade.Section
	for i := 0; i < 8; i++ {
		r := 5 + float64(i)*40/7
		sections = append(sections, blade.Section{Radius: r, Chord: 3 - r/25, Twist: types.Radians(10 - r/5), Airfoil: p})
	}
	b, err := blade.NewBlade(3, 2, 50, sections)
	require.NoError(t, err)
	return b
}

func testSweep(t *testing.T, cfg solver.Config) (*blade.Blade, []rotor.Performance) {
	b := testBlade(t)
	s, err := solver.New(cfg)
	require.NoError(t, err)
	var states []types.OperatingState
	for _, v := range []float64{10, 4, 7} {
		st, err := types.NewOperatingState(v, 1.2, types.StandardDensity, 0)
		require.NoError(t, err)
		states = append(states, st)
	}
	perfs, err := rotor.Sweep(context.Background(), s, b, states, rotor.SweepOptions{})
	require.NoError(t, err)
	return b, perfs
}

func testSchedule(t *testing.T) *types.Schedule {
	s, err := types.NewSchedule([]types.ScheduleRow{
		{WindSpeed: 3, RPM: 11, Power: 1e3, Thrust: 2e3},
		{WindSpeed: 12, RPM: 11, Power: 5e6, Thrust: 8e5},
	})
	require.NoError(t, err)
	return s
}

func TestRecord(t *testing.T) {
	b, perfs := testSweep(t, solver.DefaultConfig())
	rec := NewRecord("test", b, perfs).WithSchedule(testSchedule(t))
	require.Len(t, rec.Points, 3)
	assert.Equal(t, 10.0, rec.Points[0].WindSpeed)
	assert.Equal(t, perfs[0].Power, rec.Points[0].Power)
	assert.InDelta(t, 1e3+(5e6-1e3)*7/9, rec.Points[0].RefPower, 1e-6)
	assert.Len(t, rec.Sections, len(b.Sections))

	var buf bytes.Buffer
	require.NoError(t, rec.Summary().Render(&buf))
	var got Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "test", got.Name)
	assert.Nil(t, got.Details)
	assert.Equal(t, rec.Points, got.Points)
	assert.NotNil(t, rec.Details, "Summary 不修改原记录")
}

func TestTrace(t *testing.T) {
	tr := &Trace{}
	cfg := solver.DefaultConfig()
	cfg.Debug = tr
	b, perfs := testSweep(t, cfg)
	require.Len(t, tr.Sections, 3*len(b.Sections))
	for i, s := range tr.Sections {
		sec := perfs[i/len(b.Sections)].Sections[i%len(b.Sections)]
		assert.Equal(t, sec.Radius, s.Radius)
		if sec.Status != solver.StatusDegenerate {
			assert.Len(t, s.Iterates, sec.Iterations)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, tr.Render(&buf))
	assert.Contains(t, buf.String(), `"residual"`)
	tr.Reset()
	assert.Empty(t, tr.Sections)
}

func TestChartsRender(t *testing.T) {
	tr := &Trace{}
	cfg := solver.DefaultConfig()
	cfg.Debug = tr
	b, perfs := testSweep(t, cfg)
	c := &Charts{Record: NewRecord("test", b, perfs).WithSchedule(testSchedule(t)), Trace: tr}
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	html := buf.String()
	for _, s := range []string{"功率曲线", "无量纲系数", "展向诱导因子", "收敛过程", "参考功率 kW"} {
		assert.Contains(t, html, s)
	}

	rec := httptest.NewRecorder()
	c.Handler(rec, httptest.NewRequest("GET", "/charts", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")
}

func TestPlots(t *testing.T) {
	_, perfs := testSweep(t, solver.DefaultConfig())
	shape := &airfoil.Shape{Name: "flat", Coords: []airfoil.Point{{X: 1}, {X: 0.5, Y: 0.05}, {X: 0}, {X: 0.5, Y: -0.05}, {X: 1}}}
	power, err := PowerPlot(perfs)
	require.NoError(t, err)
	coeff, err := CoefficientPlot(perfs)
	require.NoError(t, err)
	span, err := SpanwisePlot(&perfs[0])
	require.NoError(t, err)
	foil, err := ShapePlot(shape)
	require.NoError(t, err)
	for _, p := range []*plot.Plot{coeff, span} {
		require.NoError(t, WritePNG(io.Discard, p))
	}
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, power))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	buf.Reset()
	require.NoError(t, WritePNG(&buf, foil))
	assert.NotZero(t, buf.Len())
}

func TestWriteCSV(t *testing.T) {
	_, perfs := testSweep(t, solver.DefaultConfig())
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, perfs))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, curveHeader, rows[0])
	assert.Equal(t, "10", rows[1][0])
	assert.Equal(t, "4", rows[2][0])
}

func TestWriteSections(t *testing.T) {
	_, perfs := testSweep(t, solver.DefaultConfig())
	var buf bytes.Buffer
	require.NoError(t, WriteSections(&buf, &perfs[0]))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(perfs[0].Sections)+2)
	assert.Contains(t, lines[0], "status")
	assert.Contains(t, lines[len(lines)-1], "Cp=")
}
