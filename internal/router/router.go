package router

import (
	"github.com/gin-gonic/gin"

	"invoiceagent/internal/config"
	"invoiceagent/internal/handler"
	"invoiceagent/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	processH *handler.ProcessHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	invoices := v1.Group("/invoices")
	invoices.POST("/process", processH.Process)

	reports := v1.Group("/reports")
	reports.GET("/latest", reportH.Latest)
	reports.GET("/latest/export", reportH.Export)

	return r
}
