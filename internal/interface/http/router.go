package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/auth"
	"github.com/space-cap/saju-lotto-firebase/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
// gatherer may be nil when metrics are disabled.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service, recorder ErrorRecorder, gatherer prometheus.Gatherer, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(logger),
		errorHandlingMiddleware(logger, recorder),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled && gatherer != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, logger))
	{
		api.POST("/readings", handler.Analyze)
		api.POST("/dashboard", handler.Dashboard)
		api.POST("/dashboard/refresh", handler.RefreshDashboard)
		api.POST("/calendar", handler.Calendar)
		api.GET("/quick-pick", handler.QuickPick)
		api.GET("/stats/numbers", handler.TopNumbers)
		api.GET("/draws/latest", handler.LatestDraw)

		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/refresh", handler.RefreshToken)
	}

	protected := api.Group("")
	protected.Use(authMiddleware(authSvc))
	{
		protected.POST("/draws", handler.RecordDraw)

		protected.GET("/me", handler.Me)
		protected.PUT("/me/birth", handler.SaveBirth)
		protected.GET("/me/dashboard", handler.MyDashboard)
		protected.GET("/me/tickets", handler.ListTickets)
		protected.POST("/me/tickets", handler.SaveTicket)
		protected.GET("/me/tickets/check", handler.CheckTickets)
		protected.DELETE("/me/tickets/:id", handler.DeleteTicket)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
