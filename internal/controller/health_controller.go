package controller

import (
	"net/http"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/cache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewHealthController(db *gorm.DB, cacheStore cache.Store) *HealthController {
	return &HealthController{DB: db, Cache: cacheStore}
}

// @Summary Health check
// @Description Verifica el estado del servicio y sus dependencias
// @Tags Sistema
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	// El caché es degradable: su caída no tumba el health check.
	cacheStatus := "up"
	if err := c.Cache.Set(ctx.Request.Context(), "healthcheck", "ok", time.Minute); err != nil {
		cacheStatus = "down"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"cache":    cacheStatus,
		},
	})
}
