package service

import (
	"context"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/repository"
)

// CatalogService expone el catálogo PAES: pruebas, habilidades y nodos.
type CatalogService struct {
	PAESRepo *repository.PAESRepository
	NodeRepo *repository.NodeRepository
}

func NewCatalogService(paesRepo *repository.PAESRepository, nodeRepo *repository.NodeRepository) *CatalogService {
	return &CatalogService{PAESRepo: paesRepo, NodeRepo: nodeRepo}
}

func (s *CatalogService) ListTests(ctx context.Context) ([]model.PAESTest, error) {
	return s.PAESRepo.ListTests(ctx)
}

func (s *CatalogService) ListSkills(ctx context.Context) ([]model.PAESSkill, error) {
	return s.PAESRepo.ListSkills(ctx)
}

func (s *CatalogService) ListNodes(ctx context.Context) ([]model.LearningNode, error) {
	return s.NodeRepo.ListAll(ctx)
}
