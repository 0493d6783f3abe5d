package controller

import (
	"errors"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/service"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// Record godoc
// @Summary Registrar avance
// @Description Hace upsert del avance de un nodo e invalida el snapshot del usuario
// @Tags Progreso
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProgressUpdate true "Avance del nodo"
// @Success 200 {object} util.Response{data=model.NodeProgress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Nodo desconocido"
// @Router /api/progress [post]
func (c *ProgressController) Record(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProgressUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	row, err := c.ProgressService.Record(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrNodeNotFound) {
			util.Error(ctx, 404, "nodo desconocido")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, row)
}

// List godoc
// @Summary Listar avance del usuario
// @Tags Progreso
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.NodeProgress}
// @Router /api/progress [get]
func (c *ProgressController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.ProgressService.ListByUser(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
