package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	attendanceHTTP "github.com/clinichq/attend/internal/attendance/http"
	"github.com/clinichq/attend/internal/config"
	"github.com/clinichq/attend/internal/metrics"
	staffHTTP "github.com/clinichq/attend/internal/staff/http"
	tokenHTTP "github.com/clinichq/attend/internal/token/http"
)

// Handlers bundles the per-module HTTP handlers the server routes to.
type Handlers struct {
	Attendance *attendanceHTTP.AttendanceHandler
	Day        *attendanceHTTP.DayHandler
	Token      *tokenHTTP.TokenHandler
	Staff      *staffHTTP.StaffHandler
}

// Server is the main API server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server with routing and middleware configured.
// The meterProvider is optional; pass nil to skip HTTP metrics.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) *Server {
	router := buildRouter(cfg, logger, handlers, metricsProvider)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// buildRouter assembles the gin engine: ambient middleware, health endpoints,
// the public scan/redeem endpoints, and the admin-key-guarded management API.
func buildRouter(
	cfg *config.Config,
	logger *slog.Logger,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) *gin.Engine {
	router := gin.New()
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := router.Group("/v1")

	// Staff-device endpoints
	scan := v1.Group("/attendance")
	if cfg.RateLimitEnabled {
		scan.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}
	scan.POST("/scan", handlers.Attendance.ScanHandler)

	v1.POST("/reentry/redeem", handlers.Staff.UnlockHandler)

	// Admin endpoints
	admin := v1.Group("")
	admin.Use(AdminAuthMiddleware(cfg.AdminAPIKeyHash, logger))
	{
		admin.POST("/kiosk/tokens", handlers.Token.IssueKioskHandler)
		admin.POST("/reentry/tokens", handlers.Token.IssueReentryHandler)

		admin.POST("/staff", handlers.Staff.CreateHandler)
		admin.GET("/staff", handlers.Staff.ListHandler)
		admin.GET("/staff/:id", handlers.Staff.GetHandler)
		admin.DELETE("/staff/:id", handlers.Staff.DeleteHandler)
		admin.POST("/staff/:id/signout", handlers.Staff.SignOutHandler)
		admin.GET("/staff/:id/attendance", handlers.Attendance.ListForStaffHandler)

		admin.POST("/days/close", handlers.Day.CloseHandler)
		admin.GET("/days/:date", handlers.Day.StatusHandler)
	}

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
