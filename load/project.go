package load

import (
	"bem/airfoil"
	"bem/blade"
	"bem/solver"
	"bem/types"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// SweepRange 风速扫描范围
type SweepRange struct {
	MinWind   float64 `yaml:"min_wind" json:"min_wind"`     // 最小风速 m/s
	MaxWind   float64 `yaml:"max_wind" json:"max_wind"`     // 最大风速 m/s
	Points    int     `yaml:"points" json:"points"`         // 点数
	Workers   int     `yaml:"workers" json:"workers"`       // 并发数，0 取 CPU 数
	WarmStart bool    `yaml:"warm_start" json:"warm_start"` // 热启动
}

// Project 工程文件
// 相对路径以工程文件所在目录为基准。
type Project struct {
	Name       string         `yaml:"name" json:"name"`
	Blades     int            `yaml:"blades" json:"blades"`           // 叶片数
	HubRadius  float64        `yaml:"hub_radius" json:"hub_radius"`   // 轮毂半径 m
	AirDensity float64        `yaml:"air_density" json:"air_density"` // 空气密度 kg/m^3
	BladeFile  string         `yaml:"blade_file" json:"blade_file"`   // AeroDyn15 叶片表
	Polars     map[int]string `yaml:"polars" json:"polars"`           // 翼型编号 -> 极曲线文件
	Schedule   string         `yaml:"schedule" json:"schedule"`       // .opt 运行控制表，可为空
	Solver     solver.Config  `yaml:"solver" json:"solver"`
	Sweep      SweepRange     `yaml:"sweep" json:"sweep"`

	dir string
}

// DefaultProject 默认工程参数
func DefaultProject() *Project {
	return &Project{
		Blades:     types.BladeCount,
		AirDensity: types.StandardDensity,
		Solver:     solver.DefaultConfig(),
		Sweep: SweepRange{
			MinWind: types.SweepMinWind,
			MaxWind: types.SweepMaxWind,
			Points:  types.SweepPoints,
		},
	}
}

// LoadProject 读取 YAML 工程文件，未给出的字段取默认值
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取工程文件: %w", err)
	}
	return ParseProject(data, filepath.Dir(path))
}

// ParseProject 解析 YAML 工程数据，dir 为相对路径基准目录
func ParseProject(data []byte, dir string) (*Project, error) {
	p := DefaultProject()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("%w: 解析工程文件: %v", types.ErrInvalidConfig, err)
	}
	p.dir = dir
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Marshal 编码为 YAML
func (p *Project) Marshal() ([]byte, error) { return yaml.Marshal(p) }

// Validate 校验工程参数
func (p *Project) Validate() error {
	switch {
	case p.Blades < 1:
		return fmt.Errorf("%w: 叶片数必须不少于1 %d", types.ErrInvalidConfig, p.Blades)
	case !(p.AirDensity > 0):
		return fmt.Errorf("%w: 空气密度必须为正 %g", types.ErrInvalidConfig, p.AirDensity)
	case p.HubRadius < 0:
		return fmt.Errorf("%w: 轮毂半径不能为负 %g", types.ErrInvalidConfig, p.HubRadius)
	case p.Sweep.Points < 1 || p.Sweep.MaxWind < p.Sweep.MinWind || p.Sweep.MinWind < 0:
		return fmt.Errorf("%w: 扫描范围无效 %+v", types.ErrInvalidConfig, p.Sweep)
	}
	return p.Solver.Validate()
}

// Path 解析相对路径
func (p *Project) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.dir, name)
}

// OpenPolars 读取全部极曲线
func (p *Project) OpenPolars() (map[int]airfoil.Lookup, error) {
	ids := make([]int, 0, len(p.Polars))
	for id := range p.Polars {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	polars := make(map[int]airfoil.Lookup, len(ids))
	for _, id := range ids {
		polar, err := PolarFile(p.Path(p.Polars[id]))
		if err != nil {
			return nil, fmt.Errorf("翼型 %d: %w", id, err)
		}
		polars[id] = polar
	}
	return polars, nil
}

// OpenBlade 读取极曲线与叶片表
func (p *Project) OpenBlade() (*blade.Blade, error) {
	if p.BladeFile == "" {
		return nil, fmt.Errorf("%w: 未指定叶片表", types.ErrInvalidConfig)
	}
	polars, err := p.OpenPolars()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p.Path(p.BladeFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseBlade(f, p.Blades, p.HubRadius, polars)
}

// OpenSchedule 读取运行控制表，未指定时返回 nil
func (p *Project) OpenSchedule() (*types.Schedule, error) {
	if p.Schedule == "" {
		return nil, nil
	}
	return ScheduleFile(p.Path(p.Schedule))
}
