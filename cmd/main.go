package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "bem",
		Short:        "水平轴风力机叶素动量(BEM)性能计算",
		SilenceUsage: true,
	}
	opts := &solverFlags{}
	opts.register(cmd)

	cmd.AddCommand(solveCmd(opts))
	cmd.AddCommand(sweepCmd(opts))
	cmd.AddCommand(serveCmd(opts))
	cmd.AddCommand(shapeCmd())
	return cmd
}

func solveCmd(opts *solverFlags) *cobra.Command {
	var (
		wind, rpm, pitch float64
		yaw, radius      float64
		asJSON           bool
		trace            string
	)
	cmd := &cobra.Command{
		Use:   "solve [project.yaml]",
		Short: "求解单个风速下的截面分布与总量",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args[0], opts, solveArgs{
				wind:   wind,
				rpm:    rpm,
				pitch:  pitch,
				yaw:    yaw,
				radius: radius,
				asJSON: asJSON,
				trace:  trace,
			})
		},
	}
	cmd.Flags().Float64VarP(&wind, "wind", "v", 10, "风速 m/s")
	cmd.Flags().Float64Var(&rpm, "rpm", 0, "转速 rpm，未给出时按控制表")
	cmd.Flags().Float64Var(&pitch, "pitch", 0, "桨距角 deg，与 --rpm 一起使用")
	cmd.Flags().Float64Var(&yaw, "yaw", 0, "偏航角 deg")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "只求解该半径(m)处的插值截面")
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 输出")
	cmd.Flags().StringVar(&trace, "trace", "", "迭代过程输出文件(JSON)")
	return cmd
}

func sweepCmd(opts *solverFlags) *cobra.Command {
	var a sweepArgs
	cmd := &cobra.Command{
		Use:   "sweep [project.yaml]",
		Short: "按运行控制表计算功率曲线",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, args[0], opts, a)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&a.min, "min", -1, "最小风速 m/s，默认取工程文件")
	f.Float64Var(&a.max, "max", -1, "最大风速 m/s，默认取工程文件")
	f.IntVarP(&a.points, "points", "n", 0, "风速点数，默认取工程文件")
	f.IntVarP(&a.workers, "workers", "j", 0, "并发数")
	f.BoolVar(&a.warm, "warm", false, "以前一风速结果作为初值(串行)")
	f.StringVar(&a.csv, "csv", "", "CSV 输出文件")
	f.StringVar(&a.json, "json", "", "JSON 输出文件")
	f.StringVar(&a.png, "png", "", "功率曲线 PNG 输出文件")
	f.StringVar(&a.coeffPNG, "png-coeff", "", "Cp/Ct/Cq 随叶尖速比变化 PNG 输出文件")
	f.StringVar(&a.spanPNG, "png-span", "", "最大 Cp 工况展向分布 PNG 输出文件")
	f.StringVar(&a.html, "html", "", "echarts HTML 输出文件")
	return cmd
}

func serveCmd(opts *solverFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve [project.yaml]",
		Short: "启动 HTTP 服务",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args[0], opts, port)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP 端口")
	return cmd
}

func shapeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "shape [coords...]",
		Short: "绘制 AeroDyn 翼型坐标文件",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runShape(args, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "shapes.png", "PNG 输出文件")
	return cmd
}
