// Package server 通过 HTTP 发布风力机性能计算。
package server

import (
	"bem"
	"bem/report"
	"bem/rotor"
	"bem/types"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxPoints 单次扫描的最大点数
const maxPoints = 1000

// Server HTTP 服务
type Server struct {
	turbine *bem.Turbine
	logger  *log.Logger
	engine  *gin.Engine

	mu    sync.Mutex
	curve []rotor.Performance // 默认扫描范围的缓存
}

// New 创建服务
func New(t *bem.Turbine, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{turbine: t, logger: logger}
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "turbine": t.Name})
	})
	r.GET("/api/performance", s.handlePerformance)
	r.GET("/api/sections", s.handleSections)
	r.GET("/api/section", s.handleSection)
	r.GET("/api/sweep", s.handleSweep)
	r.GET("/charts", s.handleCharts)
	s.engine = r
	return s
}

// Handler HTTP 处理器
func (s *Server) Handler() http.Handler { return s.engine }

// Run 监听 addr，ctx 结束时优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}
	errc := make(chan error, 1)
	go func() {
		s.logger.Printf("BEM 服务启动 http://localhost%s (%s)", addr, s.turbine.Name)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// floatQuery 读取浮点查询参数，缺省时返回 def
func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	v, ok := c.GetQuery(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("参数 %s=%q 不是数值", key, v)
	}
	return f, nil
}

// state 由查询参数构造工况，yaw(deg) 可选
func (s *Server) state(c *gin.Context) (types.OperatingState, error) {
	state, err := s.baseState(c)
	if err != nil {
		return state, err
	}
	if _, ok := c.GetQuery("yaw"); !ok {
		return state, nil
	}
	yaw, err := floatQuery(c, "yaw", 0)
	if err != nil {
		return types.OperatingState{}, err
	}
	state = state.WithYaw(types.Radians(yaw))
	return state, state.Validate()
}

// baseState 给出 rpm 时直接使用 rpm 与 pitch(deg)，否则按控制表插值
func (s *Server) baseState(c *gin.Context) (types.OperatingState, error) {
	wind, err := floatQuery(c, "wind", -1)
	if err != nil {
		return types.OperatingState{}, err
	}
	if wind < 0 {
		return types.OperatingState{}, fmt.Errorf("缺少参数 wind")
	}
	if _, ok := c.GetQuery("rpm"); ok {
		rpm, err := floatQuery(c, "rpm", 0)
		if err != nil {
			return types.OperatingState{}, err
		}
		pitch, err := floatQuery(c, "pitch", 0)
		if err != nil {
			return types.OperatingState{}, err
		}
		return types.FromRPM(wind, rpm, s.turbine.AirDensity, types.Radians(pitch))
	}
	return s.turbine.State(wind)
}

func (s *Server) solve(c *gin.Context) (rotor.Performance, bool) {
	state, err := s.state(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return rotor.Performance{}, false
	}
	perf, err := s.turbine.Solve(state)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return rotor.Performance{}, false
	}
	return perf, true
}

func (s *Server) handlePerformance(c *gin.Context) {
	perf, ok := s.solve(c)
	if !ok {
		return
	}
	perf.Sections = nil
	c.JSON(http.StatusOK, perf)
}

func (s *Server) handleSections(c *gin.Context) {
	perf, ok := s.solve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, perf.Sections)
}

// handleSection 任意半径处的截面解
func (s *Server) handleSection(c *gin.Context) {
	radius, err := floatQuery(c, "radius", -1)
	if err == nil && radius < 0 {
		err = fmt.Errorf("缺少参数 radius")
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, err := s.state(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.turbine.SolveAt(radius, state)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// defaultCurve 默认扫描范围的功率曲线，只计算一次
func (s *Server) defaultCurve(ctx context.Context) ([]rotor.Performance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curve != nil {
		return s.curve, nil
	}
	perfs, err := s.turbine.DefaultPowerCurve(ctx, s.logger)
	if err != nil {
		return nil, err
	}
	s.curve = perfs
	return perfs, nil
}

func (s *Server) curveFor(c *gin.Context) ([]rotor.Performance, error) {
	rng := s.turbine.Range
	min, err := floatQuery(c, "min", rng.MinWind)
	if err != nil {
		return nil, err
	}
	max, err := floatQuery(c, "max", rng.MaxWind)
	if err != nil {
		return nil, err
	}
	n := rng.Points
	if v, ok := c.GetQuery("points"); ok {
		if n, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("参数 points=%q 不是整数", v)
		}
	}
	switch {
	case n < 1 || n > maxPoints:
		return nil, fmt.Errorf("参数 points 超出范围 [1,%d]: %d", maxPoints, n)
	case min < 0 || max < min:
		return nil, fmt.Errorf("风速范围无效 [%g,%g]", min, max)
	case min == rng.MinWind && max == rng.MaxWind && n == rng.Points:
		return s.defaultCurve(c.Request.Context())
	}
	return s.turbine.PowerCurve(c.Request.Context(), min, max, n, s.logger)
}

func (s *Server) handleSweep(c *gin.Context) {
	perfs, err := s.curveFor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.turbine.Record(perfs).Summary())
}

func (s *Server) handleCharts(c *gin.Context) {
	perfs, err := s.curveFor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	charts := &report.Charts{Record: s.turbine.Record(perfs)}
	charts.Handler(c.Writer, c.Request)
}
