package repository

import (
	"context"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID uint) ([]model.NodeProgress, error) {
	var rows []model.NodeProgress
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

// Upsert escribe el avance de un par (usuario, nodo), creando la fila si no existe.
func (r *ProgressRepository) Upsert(ctx context.Context, p *model.NodeProgress) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "node_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "progress", "time_spent_minutes", "updated_at"}),
	}).Create(p).Error
}

func (r *ProgressRepository) Find(ctx context.Context, userID uint, nodeID string) (*model.NodeProgress, error) {
	var p model.NodeProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND node_id = ?", userID, nodeID).First(&p).Error
	return &p, err
}
