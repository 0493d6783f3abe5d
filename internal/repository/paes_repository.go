package repository

import (
	"context"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/model"

	"gorm.io/gorm"
)

// PAESRepository lee el catálogo de tests y habilidades PAES.
type PAESRepository struct {
	DB *gorm.DB
}

func NewPAESRepository(db *gorm.DB) *PAESRepository {
	return &PAESRepository{DB: db}
}

func (r *PAESRepository) ListTests(ctx context.Context) ([]model.PAESTest, error) {
	var tests []model.PAESTest
	err := r.DB.WithContext(ctx).Order("id").Find(&tests).Error
	return tests, err
}

func (r *PAESRepository) ListSkills(ctx context.Context) ([]model.PAESSkill, error) {
	var skills []model.PAESSkill
	err := r.DB.WithContext(ctx).Order("display_order").Find(&skills).Error
	return skills, err
}

func (r *PAESRepository) FindTestByCode(ctx context.Context, code string) (*model.PAESTest, error) {
	var test model.PAESTest
	err := r.DB.WithContext(ctx).Where("code = ?", code).First(&test).Error
	return &test, err
}

func (r *PAESRepository) FindTestByID(ctx context.Context, id uint) (*model.PAESTest, error) {
	var test model.PAESTest
	err := r.DB.WithContext(ctx).First(&test, id).Error
	return &test, err
}
