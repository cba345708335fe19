package postgres

import (
	"context"
	"fmt"
	"lottoLens/domain"

	"gorm.io/gorm"
)

type AccuracyRepository struct {
	DB *gorm.DB
}

func NewAccuracyRepository(db *gorm.DB) *AccuracyRepository {
	return &AccuracyRepository{
		DB: db,
	}
}

func (r *AccuracyRepository) Create(ctx context.Context, record *domain.PredictionAccuracy) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create accuracy record: %w", err)
	}

	return nil
}

func (r *AccuracyRepository) FindByGame(ctx context.Context, gameType string, limit int) ([]domain.PredictionAccuracy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.PredictionAccuracy
	err := r.DB.WithContext(ctx).
		Where("game_type = ?", gameType).
		Order("calculated_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find accuracy records: %w", err)
	}

	return records, nil
}

func (r *AccuracyRepository) FindByGameAndModel(ctx context.Context, gameType, modelType string, limit int) ([]domain.PredictionAccuracy, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.PredictionAccuracy
	err := r.DB.WithContext(ctx).
		Where("game_type = ? AND model_type = ?", gameType, modelType).
		Order("calculated_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find accuracy records: %w", err)
	}

	return records, nil
}
