package repository

import (
	"context"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"gorm.io/gorm"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

func (r *PlanRepository) CreateGeneratedPlan(ctx context.Context, plan *model.GeneratedStudyPlan) error {
	return r.DB.WithContext(ctx).Create(plan).Error
}

func (r *PlanRepository) CreatePlanNodes(ctx context.Context, nodes []model.StudyPlanNode) error {
	if len(nodes) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&nodes).Error
}

func (r *PlanRepository) FindGeneratedPlan(ctx context.Context, userID uint, planID string) (*model.GeneratedStudyPlan, error) {
	var plan model.GeneratedStudyPlan
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error
	return &plan, err
}

func (r *PlanRepository) ListGeneratedPlans(ctx context.Context, userID uint) ([]model.GeneratedStudyPlan, error) {
	var plans []model.GeneratedStudyPlan
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).Order("created_at desc").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) ListPlanNodes(ctx context.Context, planID string) ([]model.StudyPlanNode, error) {
	var nodes []model.StudyPlanNode
	err := r.DB.WithContext(ctx).
		Where("plan_id = ?", planID).Order("week_number, position").Find(&nodes).Error
	return nodes, err
}

func (r *PlanRepository) ListLearningPlans(ctx context.Context, userID uint) ([]model.LearningPlan, error) {
	var plans []model.LearningPlan
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).Order("created_at desc").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) CreateLearningPlan(ctx context.Context, plan *model.LearningPlan) error {
	return r.DB.WithContext(ctx).Create(plan).Error
}
