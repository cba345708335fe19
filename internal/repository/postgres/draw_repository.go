package postgres

import (
	"context"
	"fmt"
	"lottoLens/domain"

	"gorm.io/gorm"
)

type DrawRepository struct {
	DB *gorm.DB
}

func NewDrawRepository(db *gorm.DB) *DrawRepository {
	return &DrawRepository{
		DB: db,
	}
}

// CreateBatch appends new draw records. Writes are append-only; the
// dedup filter has already run by the time this is called.
func (r *DrawRepository) CreateBatch(ctx context.Context, records []*domain.DrawRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).CreateInBatches(records, 200).Error; err != nil {
		return fmt.Errorf("failed to create draw records: %w", err)
	}

	return nil
}

// FindAllByGame returns every stored draw for a game ordered by draw
// date descending. Used to build the dedup key set and as the
// statistics engine input.
func (r *DrawRepository) FindAllByGame(ctx context.Context, gameType string) ([]domain.DrawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.DrawRecord
	err := r.DB.WithContext(ctx).
		Where("game_type = ?", gameType).
		Order("draw_date DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find draw records: %w", err)
	}

	return records, nil
}

// FindPageByGame pages through stored draws ordered by draw date
// descending.
func (r *DrawRepository) FindPageByGame(ctx context.Context, gameType string, limit, offset int) ([]domain.DrawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.DrawRecord
	err := r.DB.WithContext(ctx).
		Where("game_type = ?", gameType).
		Order("draw_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page draw records: %w", err)
	}

	return records, nil
}

func (r *DrawRepository) CountByGame(ctx context.Context, gameType string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.DrawRecord{}).
		Where("game_type = ?", gameType).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count draw records: %w", err)
	}

	return count, nil
}

// DeleteByIDs removes the given records. Only the duplicate-collapse
// maintenance routine calls this.
func (r *DrawRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	result := r.DB.WithContext(ctx).Delete(&domain.DrawRecord{}, ids)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete draw records: %w", result.Error)
	}

	return result.RowsAffected, nil
}
