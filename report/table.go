package report

import (
	"bem/rotor"
	"bem/types"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', 8, 64) }

var curveHeader = []string{
	"wind_speed", "rpm", "pitch_deg", "tip_speed_ratio",
	"power_w", "thrust_n", "torque_nm", "cp", "ct", "cq", "not_converged",
}

// WriteCSV 输出功率曲线表
func WriteCSV(w io.Writer, perfs []rotor.Performance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(curveHeader); err != nil {
		return err
	}
	for i := range perfs {
		p := &perfs[i]
		row := []string{
			formatFloat(p.State.WindSpeed),
			formatFloat(p.State.RPM()),
			formatFloat(types.Degrees(p.State.Pitch)),
			formatFloat(p.TipSpeedRatio),
			formatFloat(p.Power),
			formatFloat(p.Thrust),
			formatFloat(p.Torque),
			formatFloat(p.Cp),
			formatFloat(p.Ct),
			formatFloat(p.Cq),
			strconv.Itoa(len(p.NotConverged)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSections 输出单个工况的截面表与总量
func WriteSections(w io.Writer, perf *rotor.Performance) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "r(m)\ta\ta'\tφ(°)\tα(°)\tCl\tCd\tF\tFn(N/m)\tFt(N/m)\titer\tstatus\t")
	for _, s := range perf.Sections {
		fmt.Fprintf(tw, "%.3f\t%.5f\t%.5f\t%.2f\t%.2f\t%.4f\t%.4f\t%.4f\t%.1f\t%.1f\t%d\t%s\t\n",
			s.Radius, s.A, s.APrime, types.Degrees(s.InflowAngle), types.Degrees(s.AngleOfAttack),
			s.Cl, s.Cd, s.TipLoss, s.Normal, s.Tangential, s.Iterations, status(s.Status.String(), s.Reason.String(), s.Extrapolated))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, perf)
	return err
}

func status(s, reason string, extrapolated bool) string {
	if reason != "" {
		s += "(" + reason + ")"
	}
	if extrapolated {
		s += "*"
	}
	return s
}
