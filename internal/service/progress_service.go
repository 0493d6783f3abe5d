package service

import (
	"context"
	"fmt"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/repository"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/util"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"

	"go.uber.org/zap"
)

// ProgressService registra el avance por nodo e invalida el snapshot
// analítico del usuario para que el siguiente dashboard lo recalcule.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	NodeRepo     *repository.NodeRepository
	Analytics    *AnalyticsService
}

func NewProgressService(progressRepo *repository.ProgressRepository, nodeRepo *repository.NodeRepository, analytics *AnalyticsService) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		NodeRepo:     nodeRepo,
		Analytics:    analytics,
	}
}

type ProgressUpdate struct {
	NodeID           string  `json:"nodeId" binding:"required"`
	Status           string  `json:"status" binding:"required,oneof=not_started in_progress completed"`
	Progress         float64 `json:"progress" binding:"min=0,max=100"`
	TimeSpentMinutes int     `json:"timeSpentMinutes" binding:"min=0"`
}

// Record hace upsert del avance y descarta el snapshot cacheado del usuario.
// Un estado completed fuerza progress = 100.
func (s *ProgressService) Record(ctx context.Context, userID uint, update ProgressUpdate) (*model.NodeProgress, error) {
	if _, err := s.NodeRepo.FindByID(ctx, update.NodeID); err != nil {
		return nil, util.ErrNodeNotFound
	}

	status := model.ProgressStatus(update.Status)
	if status == model.Completed {
		update.Progress = 100
	}

	row := &model.NodeProgress{
		UserID:           userID,
		NodeID:           update.NodeID,
		Status:           status,
		Progress:         update.Progress,
		TimeSpentMinutes: update.TimeSpentMinutes,
	}
	if err := s.ProgressRepo.Upsert(ctx, row); err != nil {
		return nil, fmt.Errorf("guardar avance: %w", err)
	}

	if err := s.Analytics.InvalidateUser(ctx, userID); err != nil {
		// El snapshot obsoleto expira solo al vencer su ventana de frescura.
		logger.Log.Warn("failed to invalidate analytics snapshot",
			zap.Uint("userId", userID),
			zap.Error(err),
		)
	}
	return row, nil
}

// ListByUser devuelve todas las filas de avance del usuario.
func (s *ProgressService) ListByUser(ctx context.Context, userID uint) ([]model.NodeProgress, error) {
	return s.ProgressRepo.ListByUser(ctx, userID)
}
