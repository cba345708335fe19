package accuracy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"lottoLens/business/predictor"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
)

// ErrUnknownGame is returned for a game type outside the catalog.
var ErrUnknownGame = errors.New("unknown game type")

// PredictionRepository contract interface
type PredictionRepository interface {
	FindUnscoredByGame(ctx context.Context, gameType string) ([]domain.PredictionRecord, error)
}

// DrawRepository contract interface
type DrawRepository interface {
	FindAllByGame(ctx context.Context, gameType string) ([]domain.DrawRecord, error)
}

// AccuracyRepository contract interface
type AccuracyRepository interface {
	Create(ctx context.Context, record *domain.PredictionAccuracy) error
	FindByGame(ctx context.Context, gameType string, limit int) ([]domain.PredictionAccuracy, error)
	FindByGameAndModel(ctx context.Context, gameType, modelType string, limit int) ([]domain.PredictionAccuracy, error)
}

// AgentTrainer consumes freshly scored predictions. Wired to the
// predictor service in main so this package stays one-way.
type AgentTrainer interface {
	TrainAgent(ctx context.Context, gameType string, scored []predictor.ScoredPrediction) error
}

type accuracyService struct {
	predRepo PredictionRepository
	drawRepo DrawRepository
	accRepo  AccuracyRepository
	trainer  AgentTrainer
}

func NewAccuracyService(predRepo PredictionRepository, drawRepo DrawRepository, accRepo AccuracyRepository, trainer AgentTrainer) *accuracyService {
	return &accuracyService{
		predRepo: predRepo,
		drawRepo: drawRepo,
		accRepo:  accRepo,
		trainer:  trainer,
	}
}

// ScoreUnscored matches pending predictions against stored draws on
// the same date, persists an accuracy record for each match and feeds
// the batch to the agent trainer. Returns how many were scored.
func (s *accuracyService) ScoreUnscored(ctx context.Context, gameType string) (int, error) {
	preds, err := s.predRepo.FindUnscoredByGame(ctx, gameType)
	if err != nil {
		return 0, fmt.Errorf("failed to load unscored predictions: %w", err)
	}
	if len(preds) == 0 {
		return 0, nil
	}

	draws, err := s.drawRepo.FindAllByGame(ctx, gameType)
	if err != nil {
		return 0, fmt.Errorf("failed to load draw records: %w", err)
	}

	byDate := make(map[string]domain.DrawRecord, len(draws))
	for _, d := range draws {
		key := dateKey(d.DrawDate)
		if _, ok := byDate[key]; !ok {
			byDate[key] = d
		}
	}

	scored := make([]predictor.ScoredPrediction, 0, len(preds))
	for _, pred := range preds {
		draw, ok := byDate[dateKey(pred.TargetDrawDate)]
		if !ok {
			continue
		}

		record := scorePrediction(pred, draw)
		if err := s.accRepo.Create(ctx, &record); err != nil {
			return len(scored), fmt.Errorf("failed to store accuracy record: %w", err)
		}
		scored = append(scored, predictor.ScoredPrediction{Prediction: pred, Accuracy: record})
	}

	if len(scored) > 0 && s.trainer != nil {
		if err := s.trainer.TrainAgent(ctx, gameType, scored); err != nil {
			logger.Warn("agent training failed", "gameType", gameType, "error", err)
		}
	}

	return len(scored), nil
}

// GetAccuracy returns recent accuracy records, optionally narrowed to
// one model type.
func (s *accuracyService) GetAccuracy(ctx context.Context, gameType, modelType string, limit int) ([]domain.PredictionAccuracy, error) {
	if _, ok := domain.GameByType(gameType); !ok {
		return nil, ErrUnknownGame
	}
	if modelType != "" {
		return s.accRepo.FindByGameAndModel(ctx, gameType, modelType, limit)
	}
	return s.accRepo.FindByGame(ctx, gameType, limit)
}

func scorePrediction(pred domain.PredictionRecord, draw domain.DrawRecord) domain.PredictionAccuracy {
	predicted := pred.Numbers()
	actual := draw.Numbers()

	metrics := allMetrics(predicted, actual)
	return domain.PredictionAccuracy{
		GameType:       pred.GameType,
		PredictionID:   pred.ID,
		ResultID:       draw.ID,
		ModelType:      pred.ModelType,
		NumbersMatched: setIntersection(predicted, actual),
		ErrorDistance:  euclideanDistance(predicted, actual),
		Metrics:        datatypes.JSONMap(metrics),
		CalculatedAt:   time.Now().UTC(),
	}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
