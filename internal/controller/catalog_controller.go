package controller

import (
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/service"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

// @Summary Listar pruebas PAES
// @Tags Catálogo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.PAESTest}
// @Router /api/catalog/tests [get]
func (c *CatalogController) ListTests(ctx *gin.Context) {
	tests, err := c.CatalogService.ListTests(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tests)
}

// @Summary Listar habilidades PAES
// @Tags Catálogo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.PAESSkill}
// @Router /api/catalog/skills [get]
func (c *CatalogController) ListSkills(ctx *gin.Context) {
	skills, err := c.CatalogService.ListSkills(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// @Summary Listar nodos de aprendizaje
// @Tags Catálogo
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.LearningNode}
// @Router /api/catalog/nodes [get]
func (c *CatalogController) ListNodes(ctx *gin.Context) {
	nodes, err := c.CatalogService.ListNodes(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nodes)
}
