package controller

import (
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/service"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Analytics *service.AnalyticsService
}

func NewDashboardController(analytics *service.AnalyticsService) *DashboardController {
	return &DashboardController{Analytics: analytics}
}

// @Summary Obtener snapshot PAES
// @Description Devuelve pruebas, habilidades y recomendaciones agregadas del usuario
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PAESSnapshot}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, err := c.Analytics.GetUserSnapshot(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}
