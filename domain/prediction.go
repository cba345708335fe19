package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Model kinds, fixed set.
const (
	ModelGradientBoost    = "GradientBoost"
	ModelDecisionTree     = "DecisionTree"
	ModelMarkovChain      = "MarkovChain"
	ModelAnomalyDetection = "AnomalyDetection"
	ModelRLAgent          = "RLAgent"
)

// PredictionRecord is one model's six-number guess for an upcoming
// draw. Never mutated after creation; the accuracy record carries the
// link to the draw it was eventually scored against.
type PredictionRecord struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GameType       string    `gorm:"column:game_type;not null;index" json:"game_type"`
	ModelType      string    `gorm:"column:model_type;not null" json:"model_type"`
	TargetDrawDate time.Time `gorm:"column:target_draw_date;type:date;not null" json:"target_draw_date"`
	Number1        int       `gorm:"column:predicted_number_1;not null" json:"predicted_number_1"`
	Number2        int       `gorm:"column:predicted_number_2;not null" json:"predicted_number_2"`
	Number3        int       `gorm:"column:predicted_number_3;not null" json:"predicted_number_3"`
	Number4        int       `gorm:"column:predicted_number_4;not null" json:"predicted_number_4"`
	Number5        int       `gorm:"column:predicted_number_5;not null" json:"predicted_number_5"`
	Number6        int       `gorm:"column:predicted_number_6;not null" json:"predicted_number_6"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PredictionRecord) TableName() string {
	return "prediction_records"
}

func (p PredictionRecord) Numbers() [6]int {
	return [6]int{p.Number1, p.Number2, p.Number3, p.Number4, p.Number5, p.Number6}
}

func (p *PredictionRecord) SetNumbers(numbers [6]int) {
	p.Number1 = numbers[0]
	p.Number2 = numbers[1]
	p.Number3 = numbers[2]
	p.Number4 = numbers[3]
	p.Number5 = numbers[4]
	p.Number6 = numbers[5]
}

// PredictionAccuracy scores one prediction against the draw that
// landed on its target date.
type PredictionAccuracy struct {
	ID             uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	GameType       string            `gorm:"column:game_type;not null;index" json:"game_type"`
	PredictionID   uint              `gorm:"column:prediction_id;not null;index" json:"prediction_id"`
	ResultID       uint              `gorm:"column:result_id;not null" json:"result_id"`
	ModelType      string            `gorm:"column:model_type;not null" json:"model_type"`
	NumbersMatched int               `gorm:"column:numbers_matched;not null" json:"numbers_matched"`
	ErrorDistance  float64           `gorm:"column:error_distance;not null" json:"error_distance"`
	Metrics        datatypes.JSONMap `gorm:"column:metrics;type:jsonb" json:"metrics"`
	CalculatedAt   time.Time         `gorm:"column:calculated_at;autoCreateTime" json:"calculated_at"`
}

func (PredictionAccuracy) TableName() string {
	return "prediction_accuracy"
}

// ModelState persists a learning model's serialized state per game.
type ModelState struct {
	GameType  string    `gorm:"column:game_type;primaryKey"`
	ModelType string    `gorm:"column:model_type;primaryKey"`
	StateJSON []byte    `gorm:"column:state_json"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ModelState) TableName() string {
	return "model_state"
}
