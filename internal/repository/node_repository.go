package repository

import (
	"context"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"gorm.io/gorm"
)

type NodeRepository struct {
	DB *gorm.DB
}

func NewNodeRepository(db *gorm.DB) *NodeRepository {
	return &NodeRepository{DB: db}
}

func (r *NodeRepository) ListAll(ctx context.Context) ([]model.LearningNode, error) {
	var nodes []model.LearningNode
	err := r.DB.WithContext(ctx).Order("test_id, position").Find(&nodes).Error
	return nodes, err
}

// ListByTestIDs devuelve los nodos de los tests indicados, en el orden de
// autor (tier y posición), igual que la consulta del generador de planes.
func (r *NodeRepository) ListByTestIDs(ctx context.Context, testIDs []uint) ([]model.LearningNode, error) {
	var nodes []model.LearningNode
	err := r.DB.WithContext(ctx).
		Where("test_id IN ?", testIDs).
		Order("tier_priority").
		Order("position").
		Find(&nodes).Error
	return nodes, err
}

func (r *NodeRepository) FindByID(ctx context.Context, id string) (*model.LearningNode, error) {
	var node model.LearningNode
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&node).Error
	return &node, err
}

func (r *NodeRepository) CountByTest(ctx context.Context, testID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LearningNode{}).
		Where("test_id = ?", testID).Count(&count).Error
	return count, err
}
