package metricsd

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter arma el listener central de métricas. Es un proceso aparte del
// backend principal; los procesos monitoreados le reportan por POST /metrics.
func NewRouter(store *Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/metrics", func(c *gin.Context) {
		var report MetricsReport
		if err := c.ShouldBindJSON(&report); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid JSON"})
			return
		}

		source := c.GetHeader("X-Process-Name")
		if source == "" {
			source = "unknown"
		}

		store.Ingest(source, report)

		logger.Log.Info("metrics received",
			zap.String("source", source),
		)

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Métricas recibidas correctamente",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Status())
	})

	router.GET("/history", func(c *gin.Context) {
		hours, _ := strconv.Atoi(c.DefaultQuery("hours", "1"))
		c.JSON(http.StatusOK, store.HistorySince(hours))
	})

	router.GET("/alerts", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Alerts(c.Query("severity")))
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    store.UptimeSeconds(),
			"version":   "2.0",
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	return router
}
