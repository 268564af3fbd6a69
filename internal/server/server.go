// Package server exposes the record-ingestion HTTP service: JSON log
// records posted over HTTP are dispatched to the named logger pipelines.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	configparser "github.com/orgoj/logpipe/internal/config"
	"github.com/orgoj/logpipe/internal/logger"
	"github.com/orgoj/logpipe/internal/record"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies holds the dependencies needed by the server.
type Dependencies struct {
	Config        *configparser.Config
	LoggerManager *logger.Manager
}

// Server represents the HTTP ingestion server.
type Server struct {
	router  *gin.Engine
	config  *configparser.Config
	manager *logger.Manager
}

// logRequest is the body of POST /log/:logger.
type logRequest struct {
	Level   string         `json:"level"`
	Message string         `json:"message" binding:"required"`
	Context map[string]any `json:"context"`
}

// NewServer creates a new server instance with its dependencies.
func NewServer(deps Dependencies) *Server {
	if deps.Config == nil {
		panic("server: Config dependency cannot be nil")
	}
	if deps.LoggerManager == nil {
		panic("server: LoggerManager dependency cannot be nil")
	}

	if deps.Config.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:  router,
		config:  deps.Config,
		manager: deps.LoggerManager,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.POST("/log/:logger", s.handleLog)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "loggers": s.manager.Names()})
}

// handleLog emits one record through the named pipeline. Unknown levels
// fall back to the error level, matching the permissive posture of the
// configuration resolution.
func (s *Server) handleLog(c *gin.Context) {
	name := c.Param("logger")
	l := s.manager.GetLogger(name)
	if l == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown logger '%s'", name)})
		return
	}

	var req logRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, _ := record.ParseLevel(req.Level)
	if err := l.Log(level, req.Message, req.Context); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the configured address and blocks.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	return s.router.Run(addr)
}
