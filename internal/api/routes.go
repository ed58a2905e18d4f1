package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/codyseavey/deck-meta/backend/internal/api/handlers"
	"github.com/codyseavey/deck-meta/backend/internal/config"
	"github.com/codyseavey/deck-meta/backend/internal/metrics"
	"github.com/codyseavey/deck-meta/backend/internal/services"
)

func SetupRouter(cfg config.Config, reportService *services.ReportService, poolService *services.DeckPoolService) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from config or use defaults
	corsConfig := cors.DefaultConfig()
	if cfg.CORSAllowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.AllowCredentials = false // Explicitly set
	router.Use(cors.New(corsConfig))

	router.Use(httpMetricsMiddleware())

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportService, poolService)
	deckHandler := handlers.NewDeckHandler(poolService)

	// Interactive filtering can fire on every UI change; keep a lid on it.
	filterLimiter := rateLimitMiddleware(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	// API routes
	api := router.Group("/api")
	{
		archetypes := api.Group("/archetypes")
		{
			archetypes.GET("", reportHandler.ListArchetypes)
			archetypes.GET("/:archetype/report", reportHandler.GetBaselineReport)
			archetypes.POST("/:archetype/report", filterLimiter, reportHandler.ApplyFilters)
		}

		decks := api.Group("/decks")
		{
			decks.GET("", deckHandler.ListDecks)
			decks.POST("/import", deckHandler.ImportDecks)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// httpMetricsMiddleware records request counts and latency per route.
func httpMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// rateLimitMiddleware applies a shared token-bucket limit to a route.
func rateLimitMiddleware(limit rate.Limit, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(limit, burst)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
