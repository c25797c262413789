package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"brfiscal/internal/config"
	"brfiscal/internal/handler"
	"brfiscal/internal/metrics"
	"brfiscal/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health     *handler.HealthHandler
	Identifier *handler.IdentifierHandler
	UF         *handler.UFHandler
	Key        *handler.KeyHandler
	Document   *handler.DocumentHandler
	Batch      *handler.BatchHandler
	GS1        *handler.GS1Handler
}

// Setup configures the Gin engine with all routes and middleware. The
// Prometheus endpoint is mounted only when metrics are enabled.
func Setup(
	cfg *config.Config,
	log zerolog.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	h Handlers,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")

	identifiers := v1.Group("/identifiers")
	identifiers.POST("/validate", h.Identifier.Validate)
	identifiers.POST("/format", h.Identifier.Format)
	identifiers.POST("/batch", h.Identifier.Batch)

	ufs := v1.Group("/ufs")
	ufs.GET("", h.UF.List)
	ufs.GET("/:ref", h.UF.Get)

	keys := v1.Group("/keys")
	keys.POST("/parse", h.Key.Parse)
	keys.POST("/build", h.Key.Build)
	keys.GET("/:key/parts", h.Key.Parts)

	documents := v1.Group("/documents")
	documents.POST("/validate", h.Document.Validate)
	documents.GET("/rules", h.Document.Rules)

	v1.POST("/batches", h.Batch.Upload)

	v1.GET("/gs1/generate", h.GS1.Generate)

	return r
}
