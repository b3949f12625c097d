package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourtionguo/codegraf/internal/logging"
	"github.com/yourtionguo/codegraf/internal/pipeline"
	"github.com/yourtionguo/codegraf/internal/sink"
)

// Server is an ops-only HTTP surface around the batch pipeline: it
// triggers runs and reports on the last one. It is deliberately not a
// query surface — no graph traversal endpoint is exposed here, matching
// the "no query language" non-goal; reading the graph back is the
// sink's job, not this API's.
type Server struct {
	sink   sink.GraphSink
	logger *logging.Logger

	mu      sync.Mutex
	running bool
	last    *runRecord
}

type runRecord struct {
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Path       string         `json:"path"`
	Stats      *pipeline.Stats `json:"stats,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func NewServer(s sink.GraphSink, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewSilent()
	}
	return &Server{sink: s, logger: logger}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.loggingMiddleware())

	r.GET("/healthz", s.healthz)
	r.GET("/stats", s.stats)
	r.POST("/index", s.index)

	return r
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.InfoWithFields("request",
			logging.Field{Key: "method", Value: c.Request.Method},
			logging.Field{Key: "path", Value: c.Request.URL.Path},
			logging.Field{Key: "status", Value: c.Writer.Status()},
			logging.Field{Key: "latency_ms", Value: time.Since(start).Milliseconds()},
		)
	}
}

func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) stats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		c.JSON(http.StatusOK, gin.H{"status": "no_runs_yet"})
		return
	}
	c.JSON(http.StatusOK, s.last)
}

type indexRequest struct {
	Path             string `json:"path" binding:"required"`
	DomainConfigPath string `json:"domainConfigPath"`
	UseGit           bool   `json:"useGit"`
	WorkerCount      int    `json:"workerCount"`
}

// index triggers one synchronous batch pass against the given path. This
// is intentionally synchronous and single-flight: a second request while
// one is in flight is rejected rather than queued, since the orchestrator
// is not designed for concurrent runs over the same sink.
func (s *Server) index(c *gin.Context) {
	var req indexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	cfg := pipeline.DefaultConfig(req.Path)
	cfg.DomainConfigPath = req.DomainConfigPath
	cfg.Discovery.UseGit = req.UseGit
	if req.WorkerCount > 0 {
		cfg.WorkerCount = req.WorkerCount
	}

	record := &runRecord{StartedAt: time.Now(), Path: req.Path}
	orch := pipeline.New(cfg, s.sink, s.logger)
	stats, err := orch.Run(c.Request.Context())
	record.FinishedAt = time.Now()
	record.Stats = stats
	if err != nil {
		record.Error = err.Error()
	}

	s.mu.Lock()
	s.last = record
	s.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("index run failed: %v", err)})
		return
	}
	c.JSON(http.StatusOK, record)
}
