package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"lottoLens/business/predictor"
	"lottoLens/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ModelStateRepository struct {
	DB *gorm.DB
}

func NewModelStateRepository(db *gorm.DB) *ModelStateRepository {
	return &ModelStateRepository{DB: db}
}

func (r *ModelStateRepository) GetAgentState(ctx context.Context, gameType string) (*predictor.AgentState, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row domain.ModelState
	err := r.DB.WithContext(ctx).
		First(&row, "game_type = ? AND model_type = ?", gameType, domain.ModelRLAgent).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query model_state: %w", err)
	}

	var state predictor.AgentState
	if err := json.Unmarshal(row.StateJSON, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state_json: %w", err)
	}

	return &state, nil
}

func (r *ModelStateRepository) SaveAgentState(ctx context.Context, gameType string, state *predictor.AgentState) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	row := domain.ModelState{
		GameType:  gameType,
		ModelType: domain.ModelRLAgent,
		StateJSON: raw,
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_type"}, {Name: "model_type"}},
			UpdateAll: true,
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert model_state: %w", err)
	}

	return nil
}
