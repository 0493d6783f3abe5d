package controller

import (
	"errors"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/service"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
)

type DiagnosticController struct {
	DiagnosticService *service.DiagnosticService
	CatalogService    *service.CatalogService
}

func NewDiagnosticController(diagnostic *service.DiagnosticService, catalog *service.CatalogService) *DiagnosticController {
	return &DiagnosticController{
		DiagnosticService: diagnostic,
		CatalogService:    catalog,
	}
}

// ListTests godoc
// @Summary Catálogo de pruebas PAES
// @Tags Diagnóstico
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.PAESTest}
// @Router /api/diagnostic/tests [get]
func (c *DiagnosticController) ListTests(ctx *gin.Context) {
	tests, err := c.CatalogService.ListTests(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// SelectTestRequest elige la prueba a diagnosticar
// swagger:model SelectTestRequest
type SelectTestRequest struct {
	TestCode string `json:"testCode" binding:"required"`
}

// SelectTest godoc
// @Summary Crear sesión de diagnóstico
// @Description Crea una sesión en fase test_selected para la prueba indicada
// @Tags Diagnóstico
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SelectTestRequest true "Prueba elegida"
// @Success 201 {object} util.Response{data=model.DiagnosticSession}
// @Failure 404 {object} util.Response "Prueba desconocida"
// @Router /api/diagnostic/sessions [post]
func (c *DiagnosticController) SelectTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SelectTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.DiagnosticService.SelectTest(ctx.Request.Context(), user.UserID, req.TestCode)
	if err != nil {
		if errors.Is(err, util.ErrTestNotFound) {
			util.Error(ctx, 404, "prueba desconocida")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// StartSession godoc
// @Summary Iniciar diagnóstico
// @Description Obtiene las preguntas y activa la sesión
// @Tags Diagnóstico
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Success 200 {object} util.Response{data=model.DiagnosticSession}
// @Failure 404 {object} util.Response
// @Router /api/diagnostic/sessions/{id}/start [post]
func (c *DiagnosticController) StartSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.DiagnosticService.StartSession(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// AnswerRequest registra una respuesta
// swagger:model AnswerRequest
type AnswerRequest struct {
	QuestionIndex int    `json:"questionIndex" binding:"min=0"`
	Answer        string `json:"answer" binding:"required"`
}

// Answer godoc
// @Summary Responder pregunta
// @Tags Diagnóstico
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Param body body AnswerRequest true "Respuesta"
// @Success 200 {object} util.Response{data=model.DiagnosticSession}
// @Failure 400 {object} util.Response "Índice fuera de rango"
// @Router /api/diagnostic/sessions/{id}/answer [post]
func (c *DiagnosticController) Answer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.DiagnosticService.Answer(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.QuestionIndex, req.Answer)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// NavigateRequest mueve el índice actual
// swagger:model NavigateRequest
type NavigateRequest struct {
	TargetIndex int `json:"targetIndex" binding:"min=0"`
}

// Navigate godoc
// @Summary Navegar entre preguntas
// @Tags Diagnóstico
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Param body body NavigateRequest true "Índice destino"
// @Success 200 {object} util.Response{data=model.DiagnosticSession}
// @Router /api/diagnostic/sessions/{id}/navigate [post]
func (c *DiagnosticController) Navigate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req NavigateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.DiagnosticService.Navigate(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.TargetIndex)
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// ToggleHint godoc
// @Summary Alternar hint
// @Tags Diagnóstico
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Success 200 {object} util.Response{data=model.DiagnosticSession}
// @Router /api/diagnostic/sessions/{id}/hint [post]
func (c *DiagnosticController) ToggleHint(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.DiagnosticService.ToggleHint(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// Finish godoc
// @Summary Finalizar diagnóstico
// @Description Cierra la sesión y calcula el resultado
// @Tags Diagnóstico
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Success 200 {object} util.Response{data=model.DiagnosticSession}
// @Router /api/diagnostic/sessions/{id}/finish [post]
func (c *DiagnosticController) Finish(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.DiagnosticService.Finish(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// GetSession godoc
// @Summary Estado de la sesión
// @Tags Diagnóstico
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la sesión"
// @Success 200 {object} util.Response{data=model.DiagnosticSession}
// @Router /api/diagnostic/sessions/{id} [get]
func (c *DiagnosticController) GetSession(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.DiagnosticService.GetSession(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		c.writeSessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// History godoc
// @Summary Historial de diagnósticos
// @Tags Diagnóstico
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.DiagnosticSession}
// @Router /api/diagnostic/history [get]
func (c *DiagnosticController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.DiagnosticService.History(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

func (c *DiagnosticController) writeSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.Error(ctx, 404, "sesión no encontrada")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrSessionFinished):
		util.Error(ctx, 409, "la sesión ya finalizó")
	case errors.Is(err, util.ErrQuestionOutOfRange):
		util.BadRequest(ctx, "índice de pregunta fuera de rango")
	case errors.Is(err, util.ErrTestNotFound):
		util.Error(ctx, 404, "prueba desconocida")
	default:
		util.LogInternalError(ctx, err)
	}
}
