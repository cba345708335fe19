//go:build !integration

package accuracy

import (
	"context"
	"math"
	"testing"
	"time"

	"lottoLens/business/predictor"
	"lottoLens/domain"
)

func TestDistanceMetrics(t *testing.T) {
	predicted := [6]int{1, 2, 3, 4, 5, 6}
	actual := [6]int{1, 2, 3, 4, 5, 10}

	if got := euclideanDistance(predicted, actual); got != 4 {
		t.Errorf("euclidean = %v, want 4", got)
	}
	if got := manhattanDistance(predicted, actual); got != 4 {
		t.Errorf("manhattan = %v, want 4", got)
	}
	if got := hammingDistance(predicted, actual); got != 1 {
		t.Errorf("hamming = %d, want 1", got)
	}
	if got := setIntersection(predicted, actual); got != 5 {
		t.Errorf("set intersection = %d, want 5", got)
	}
	if got := sumDifference(predicted, actual); got != 4 {
		t.Errorf("sum difference = %v, want 4", got)
	}
	// Products are 720 and 1200.
	if got := productDifference(predicted, actual); got != 480 {
		t.Errorf("product difference = %v, want 480", got)
	}
}

func TestDistanceMetrics_PerfectMatch(t *testing.T) {
	numbers := [6]int{3, 9, 17, 24, 31, 40}

	if got := euclideanDistance(numbers, numbers); got != 0 {
		t.Errorf("euclidean = %v, want 0", got)
	}
	if got := setIntersection(numbers, numbers); got != 6 {
		t.Errorf("set intersection = %d, want 6", got)
	}
	if got := hammingDistance(numbers, numbers); got != 0 {
		t.Errorf("hamming = %d, want 0", got)
	}
}

func TestSetIntersection_IgnoresPosition(t *testing.T) {
	predicted := [6]int{1, 2, 3, 4, 5, 6}
	actual := [6]int{6, 5, 4, 3, 2, 1}

	// Arrays arrive sorted in practice, but the metric itself must
	// not depend on position.
	if got := setIntersection(predicted, actual); got != 6 {
		t.Errorf("set intersection = %d, want 6", got)
	}
}

type fakePredRepo struct {
	preds []domain.PredictionRecord
}

func (f *fakePredRepo) FindUnscoredByGame(_ context.Context, _ string) ([]domain.PredictionRecord, error) {
	return f.preds, nil
}

type fakeDrawRepo struct {
	draws []domain.DrawRecord
}

func (f *fakeDrawRepo) FindAllByGame(_ context.Context, _ string) ([]domain.DrawRecord, error) {
	return f.draws, nil
}

type fakeAccRepo struct {
	created []domain.PredictionAccuracy
}

func (f *fakeAccRepo) Create(_ context.Context, record *domain.PredictionAccuracy) error {
	f.created = append(f.created, *record)
	return nil
}

func (f *fakeAccRepo) FindByGame(_ context.Context, _ string, _ int) ([]domain.PredictionAccuracy, error) {
	return f.created, nil
}

func (f *fakeAccRepo) FindByGameAndModel(_ context.Context, _, _ string, _ int) ([]domain.PredictionAccuracy, error) {
	return f.created, nil
}

type fakeTrainer struct {
	batches [][]predictor.ScoredPrediction
}

func (f *fakeTrainer) TrainAgent(_ context.Context, _ string, scored []predictor.ScoredPrediction) error {
	f.batches = append(f.batches, scored)
	return nil
}

func TestScoreUnscored(t *testing.T) {
	targetDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	pred := domain.PredictionRecord{
		ID:             7,
		GameType:       "lotto_6_42",
		ModelType:      domain.ModelMarkovChain,
		TargetDrawDate: targetDate,
	}
	pred.SetNumbers([6]int{1, 2, 3, 4, 5, 6})

	unmatched := domain.PredictionRecord{
		ID:             8,
		GameType:       "lotto_6_42",
		ModelType:      domain.ModelMarkovChain,
		TargetDrawDate: targetDate.AddDate(0, 0, 7),
	}
	unmatched.SetNumbers([6]int{1, 2, 3, 4, 5, 6})

	draw := domain.DrawRecord{ID: 99, GameType: "lotto_6_42", DrawDate: targetDate}
	draw.SetNumbers([6]int{1, 2, 3, 10, 11, 12})

	accRepo := &fakeAccRepo{}
	trainer := &fakeTrainer{}
	svc := NewAccuracyService(
		&fakePredRepo{preds: []domain.PredictionRecord{pred, unmatched}},
		&fakeDrawRepo{draws: []domain.DrawRecord{draw}},
		accRepo,
		trainer,
	)

	scored, err := svc.ScoreUnscored(context.Background(), "lotto_6_42")
	if err != nil {
		t.Fatalf("ScoreUnscored: %v", err)
	}
	if scored != 1 {
		t.Fatalf("scored = %d, want 1 (no draw for the second target date)", scored)
	}

	record := accRepo.created[0]
	if record.PredictionID != 7 || record.ResultID != 99 {
		t.Errorf("record links %d -> %d, want 7 -> 99", record.PredictionID, record.ResultID)
	}
	if record.NumbersMatched != 3 {
		t.Errorf("numbers matched = %d, want 3", record.NumbersMatched)
	}
	if math.IsNaN(record.ErrorDistance) || record.ErrorDistance <= 0 {
		t.Errorf("error distance = %v, want positive", record.ErrorDistance)
	}
	if record.Metrics["set_intersection"] != 3 {
		t.Errorf("metrics set_intersection = %v, want 3", record.Metrics["set_intersection"])
	}

	if len(trainer.batches) != 1 || len(trainer.batches[0]) != 1 {
		t.Fatalf("trainer batches = %v, want one batch of one", trainer.batches)
	}
}

func TestScoreUnscored_NothingPending(t *testing.T) {
	trainer := &fakeTrainer{}
	svc := NewAccuracyService(&fakePredRepo{}, &fakeDrawRepo{}, &fakeAccRepo{}, trainer)

	scored, err := svc.ScoreUnscored(context.Background(), "lotto_6_42")
	if err != nil {
		t.Fatalf("ScoreUnscored: %v", err)
	}
	if scored != 0 {
		t.Errorf("scored = %d, want 0", scored)
	}
	if len(trainer.batches) != 0 {
		t.Error("trainer should not run with nothing scored")
	}
}
