package repository

import (
	"context"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"gorm.io/gorm"
)

type DiagnosticRepository struct {
	DB *gorm.DB
}

func NewDiagnosticRepository(db *gorm.DB) *DiagnosticRepository {
	return &DiagnosticRepository{DB: db}
}

func (r *DiagnosticRepository) CreateSession(ctx context.Context, s *model.DiagnosticSession) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *DiagnosticRepository) FindSession(ctx context.Context, sessionID string) (*model.DiagnosticSession, error) {
	var s model.DiagnosticSession
	err := r.DB.WithContext(ctx).
		Where("id = ?", sessionID).First(&s).Error
	return &s, err
}

func (r *DiagnosticRepository) UpdateSession(ctx context.Context, s *model.DiagnosticSession) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *DiagnosticRepository) ListFinishedByUser(ctx context.Context, userID uint) ([]model.DiagnosticSession, error) {
	var sessions []model.DiagnosticSession
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND phase = ?", userID, model.PhaseFinished).
		Order("created_at desc").Find(&sessions).Error
	return sessions, err
}
