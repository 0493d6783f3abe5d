package controller

import (
	"errors"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/service"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlanService *service.PlanService
	Analytics   *service.AnalyticsService
}

func NewPlanController(planService *service.PlanService, analytics *service.AnalyticsService) *PlanController {
	return &PlanController{
		PlanService: planService,
		Analytics:   analytics,
	}
}

// GenerateSmartPlan godoc
// @Summary Generar plan inteligente
// @Description Genera un plan de estudio priorizado según el progreso y las recomendaciones del usuario
// @Tags Planes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.SmartPlanConfig true "Configuración del plan"
// @Success 201 {object} util.Response{data=model.GeneratedSmartPlan}
// @Failure 400 {object} util.Response "Configuración inválida"
// @Failure 404 {object} util.Response "Pruebas objetivo desconocidas o sin nodos"
// @Router /api/plans/smart [post]
func (c *PlanController) GenerateSmartPlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var cfg model.SmartPlanConfig
	if err := ctx.ShouldBindJSON(&cfg); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snapshot, err := c.Analytics.GetUserSnapshot(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	plan, err := c.PlanService.GenerateSmartPlan(
		ctx.Request.Context(),
		user.UserID,
		cfg,
		snapshot.Tests,
		snapshot.Skills,
		snapshot.Recommendations,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTestNotFound):
			util.Error(ctx, 404, "ninguna de las pruebas objetivo existe")
		case errors.Is(err, util.ErrNoNodesForPlan):
			util.Error(ctx, 404, "las pruebas objetivo no tienen nodos de aprendizaje")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, plan)
}

// ListGeneratedPlans godoc
// @Summary Listar planes generados
// @Tags Planes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.GeneratedStudyPlan}
// @Router /api/plans/smart [get]
func (c *PlanController) ListGeneratedPlans(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.PlanService.ListGeneratedPlans(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// GetGeneratedPlan godoc
// @Summary Detalle de un plan generado
// @Tags Planes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del plan"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/plans/smart/{id} [get]
func (c *PlanController) GetGeneratedPlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	plan, nodes, err := c.PlanService.GetGeneratedPlan(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"plan":  plan,
		"nodes": nodes,
	})
}

// ListLearningPlans godoc
// @Summary Listar planes de aprendizaje
// @Description Lista los planes del usuario; la lectura usa caché y reintentos
// @Tags Planes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LearningPlan}
// @Router /api/learning-plans [get]
func (c *PlanController) ListLearningPlans(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	plans, err := c.PlanService.ListLearningPlans(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// LearningPlanRequest define el cuerpo de creación de un plan manual
// swagger:model LearningPlanRequest
type LearningPlanRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	TargetDate  string `json:"targetDate"`
}

// CreateLearningPlan godoc
// @Summary Crear plan de aprendizaje
// @Tags Planes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LearningPlanRequest true "Datos del plan"
// @Success 201 {object} util.Response{data=model.LearningPlan}
// @Failure 400 {object} util.Response
// @Router /api/learning-plans [post]
func (c *PlanController) CreateLearningPlan(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req LearningPlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan := &model.LearningPlan{
		UserID:      user.UserID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
	}
	if err := c.PlanService.CreateLearningPlan(ctx.Request.Context(), plan); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, plan)
}
