package postgres

import (
	"context"
	"fmt"
	"lottoLens/domain"

	"gorm.io/gorm"
)

type PredictionRepository struct {
	DB *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{
		DB: db,
	}
}

func (r *PredictionRepository) Create(ctx context.Context, prediction *domain.PredictionRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(prediction).Error; err != nil {
		return fmt.Errorf("failed to create prediction: %w", err)
	}

	return nil
}

func (r *PredictionRepository) FindByGame(ctx context.Context, gameType string, limit int) ([]domain.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var predictions []domain.PredictionRecord
	err := r.DB.WithContext(ctx).
		Where("game_type = ?", gameType).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find predictions: %w", err)
	}

	return predictions, nil
}

// FindUnscoredByGame returns predictions that have no accuracy record
// yet, oldest first, so a draw landing late still gets scored.
func (r *PredictionRepository) FindUnscoredByGame(ctx context.Context, gameType string) ([]domain.PredictionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var predictions []domain.PredictionRecord
	err := r.DB.WithContext(ctx).
		Where("game_type = ?", gameType).
		Where("id NOT IN (?)",
			r.DB.Model(&domain.PredictionAccuracy{}).
				Select("prediction_id").
				Where("game_type = ?", gameType),
		).
		Order("target_draw_date ASC, id ASC").
		Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unscored predictions: %w", err)
	}

	return predictions, nil
}
