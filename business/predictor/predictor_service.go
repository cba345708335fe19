package predictor

import (
	"context"
	"errors"
	"fmt"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
	"lottoLens/pkg/metrics"
	"time"
)

var (
	ErrUnknownGame         = errors.New("unknown game type")
	ErrInsufficientHistory = errors.New("insufficient historical data for prediction")
	ErrAllModelsFailed     = errors.New("all prediction models failed")
)

// minHistory is the smallest record set any model will train on.
const minHistory = 10

// Model is one prediction adapter: historical draws in, six numbers
// out. Models are read-only with respect to the record set and may
// run concurrently with an ingestion run.
type Model interface {
	Kind() string
	Predict(ctx context.Context, game domain.Game, draws []domain.DrawRecord, freq []int) ([6]int, error)
}

// DrawRepository contract interface
type DrawRepository interface {
	FindAllByGame(ctx context.Context, gameType string) ([]domain.DrawRecord, error)
}

// PredictionRepository contract interface
type PredictionRepository interface {
	Create(ctx context.Context, prediction *domain.PredictionRecord) error
	FindByGame(ctx context.Context, gameType string, limit int) ([]domain.PredictionRecord, error)
}

type predictorService struct {
	drawRepo DrawRepository
	predRepo PredictionRepository
	agent    *rlAgent
	models   []Model
}

func NewPredictorService(drawRepo DrawRepository, predRepo PredictionRepository, stateRepo AgentStateRepository) *predictorService {
	agent := newRLAgent(stateRepo)

	return &predictorService{
		drawRepo: drawRepo,
		predRepo: predRepo,
		agent:    agent,
		models: []Model{
			newGradientBoostModel(),
			newDecisionTreeModel(),
			newMarkovChainModel(),
			newAnomalyDetectionModel(),
			agent,
		},
	}
}

// GeneratePredictions runs every model against the current record set
// and stores one prediction per model. A single model failing is
// local: it is logged and skipped.
func (s *predictorService) GeneratePredictions(ctx context.Context, gameType string) ([]domain.PredictionRecord, error) {
	game, ok := domain.GameByType(gameType)
	if !ok {
		return nil, ErrUnknownGame
	}

	start := time.Now()
	defer func() {
		metrics.PredictDuration.Observe(time.Since(start).Seconds())
	}()

	draws, err := s.drawRepo.FindAllByGame(ctx, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	if len(draws) < minHistory {
		return nil, ErrInsufficientHistory
	}

	freq := frequencyCounts(draws, game)
	targetDate := time.Now().UTC().Truncate(24 * time.Hour)

	out := make([]domain.PredictionRecord, 0, len(s.models))

	for _, model := range s.models {
		numbers, err := model.Predict(ctx, game, draws, freq)
		if err != nil {
			logger.Error("Prediction model failed", "model", model.Kind(), "game_type", gameType, "error", err.Error())
			continue
		}

		record := domain.PredictionRecord{
			GameType:       gameType,
			ModelType:      model.Kind(),
			TargetDrawDate: targetDate,
		}
		record.SetNumbers(numbers)

		if err := s.predRepo.Create(ctx, &record); err != nil {
			logger.Error("Failed to store prediction", "model", model.Kind(), "game_type", gameType, "error", err.Error())
			continue
		}

		metrics.PredictionsGenerated.Inc()
		out = append(out, record)
	}

	if len(out) == 0 {
		return nil, ErrAllModelsFailed
	}

	logger.Info("Generated predictions", "game_type", gameType, "models", len(out))

	return out, nil
}

func (s *predictorService) GetPredictions(ctx context.Context, gameType string, limit int) ([]domain.PredictionRecord, error) {
	if _, ok := domain.GameByType(gameType); !ok {
		return nil, ErrUnknownGame
	}

	predictions, err := s.predRepo.FindByGame(ctx, gameType, limit)
	if err != nil {
		return nil, err
	}

	return predictions, nil
}

// TrainAgent feeds freshly scored predictions back into the learning
// agent.
func (s *predictorService) TrainAgent(ctx context.Context, gameType string, scored []ScoredPrediction) error {
	return s.agent.Learn(ctx, gameType, scored)
}
