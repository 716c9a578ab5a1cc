package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/selivandex/news-sentiment/internal/adapters/config"
	"github.com/selivandex/news-sentiment/internal/pipeline"
	"github.com/selivandex/news-sentiment/pkg/logger"
	"github.com/selivandex/news-sentiment/pkg/models"
)

// Digester produces a news digest for one request
type Digester interface {
	Run(ctx context.Context, req pipeline.Request) (*models.AggregateResult, error)
}

// Server exposes the digest endpoint and K8s probes
type Server struct {
	startTime time.Time
	server    *http.Server
	engine    *gin.Engine
	digester  Digester
	sources   []string
	readyMu   sync.RWMutex
	ready     bool
}

// NewServer creates new HTTP server. sources are the registered adapter names,
// reported by the verbose probes.
func NewServer(cfg config.ServerConfig, digester Digester, sources []string) *Server {
	engine := gin.New()

	s := &Server{
		startTime: time.Now(),
		engine:    engine,
		digester:  digester,
		sources:   sources,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      engine,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  120 * time.Second,
		},
	}

	engine.Use(gin.CustomRecovery(recoverJSON), requestLogger(), cors())

	engine.GET("/api/news", s.handleNews)

	// Probes
	engine.GET("/health", s.handleHealth)
	engine.GET("/ready", s.handleReadiness)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/readyz", s.handleReadiness)

	return s
}

// Handler returns the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving HTTP until Stop is called
func (s *Server) Start() error {
	logger.Info("http server starting",
		zap.String("addr", s.server.Addr),
		zap.Strings("sources", s.sources),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("stopping http server...")
	s.SetReady(false)
	return s.server.Shutdown(ctx)
}

// SetReady marks the service as ready
func (s *Server) SetReady(ready bool) {
	s.readyMu.Lock()
	defer s.readyMu.Unlock()
	s.ready = ready

	if ready {
		logger.Info("service marked as READY")
	} else {
		logger.Warn("service marked as NOT READY")
	}
}

func (s *Server) isReady() bool {
	s.readyMu.RLock()
	defer s.readyMu.RUnlock()
	return s.ready
}
