package controller

import (
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/repository"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	PAESRepo *repository.PAESRepository
	NodeRepo *repository.NodeRepository
}

func NewAdminController(paesRepo *repository.PAESRepository, nodeRepo *repository.NodeRepository) *AdminController {
	return &AdminController{PAESRepo: paesRepo, NodeRepo: nodeRepo}
}

// CatalogStats godoc
// @Summary Estadísticas del catálogo
// @Description Conteo de pruebas, habilidades y nodos del catálogo, con desglose por prueba
// @Tags Administración
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/catalog/stats [get]
func (c *AdminController) CatalogStats(ctx *gin.Context) {
	tests, err := c.PAESRepo.ListTests(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	skills, err := c.PAESRepo.ListSkills(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	var totalNodes int64
	perTest := make([]gin.H, 0, len(tests))
	for _, test := range tests {
		count, err := c.NodeRepo.CountByTest(ctx.Request.Context(), test.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		totalNodes += count
		perTest = append(perTest, gin.H{
			"code":  test.Code,
			"name":  test.Name,
			"nodes": count,
		})
	}

	util.Success(ctx, gin.H{
		"tests":   len(tests),
		"skills":  len(skills),
		"nodes":   totalNodes,
		"perTest": perTest,
	})
}
