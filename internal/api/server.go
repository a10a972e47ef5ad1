// Package api exposes the analysis engine and the holdings ledger over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"CoinSentinel/internal/service"
)

// Server is the HTTP API server.
type Server struct {
	Service *service.AnalysisService
	engine  *gin.Engine
	httpSrv *http.Server
	log     *logrus.Entry
}

// NewServer creates the API server and registers all routes.
func NewServer(svc *service.AnalysisService, log *logrus.Logger) *Server {
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Service: svc,
		engine:  gin.New(),
		log:     log.WithField("component", "api"),
	}
	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	v1 := s.engine.Group("/api/v1")

	v1.GET("/assets/:id/risk", s.getAssetRisk)
	v1.GET("/assets/:id/trend", s.getAssetTrend)
	v1.GET("/assets/:id/dca", s.getAssetDCA)

	v1.GET("/portfolio/risk", s.getPortfolioRisk)

	v1.GET("/holdings", s.listHoldings)
	v1.POST("/holdings", s.createHolding)
	v1.PUT("/holdings/:id", s.updateHolding)
	v1.DELETE("/holdings/:id", s.deleteHolding)

	s.engine.GET("/healthz", s.getHealth)
}

// Start runs the server until the listener fails or Stop is called.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}
	s.log.WithField("addr", addr).Info("api server started")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the server down, waiting up to 10s for in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"holdings": len(s.Service.Holdings.List()),
	})
}
