//go:build !integration

package predictor

import (
	"context"
	"errors"
	"testing"
	"time"

	"lottoLens/domain"
)

type fakeDrawRepo struct {
	records []domain.DrawRecord
}

func (f *fakeDrawRepo) FindAllByGame(_ context.Context, _ string) ([]domain.DrawRecord, error) {
	return f.records, nil
}

type fakePredRepo struct {
	created []domain.PredictionRecord
	nextID  uint
}

func (f *fakePredRepo) Create(_ context.Context, prediction *domain.PredictionRecord) error {
	f.nextID++
	prediction.ID = f.nextID
	f.created = append(f.created, *prediction)
	return nil
}

func (f *fakePredRepo) FindByGame(_ context.Context, _ string, _ int) ([]domain.PredictionRecord, error) {
	return f.created, nil
}

type fakeStateRepo struct {
	state *AgentState
	saves int
}

func (f *fakeStateRepo) GetAgentState(_ context.Context, _ string) (*AgentState, error) {
	return f.state, nil
}

func (f *fakeStateRepo) SaveAgentState(_ context.Context, _ string, state *AgentState) error {
	f.state = state
	f.saves++
	return nil
}

func testGame(t *testing.T) domain.Game {
	t.Helper()
	game, ok := domain.GameByType("lotto_6_42")
	if !ok {
		t.Fatal("lotto_6_42 missing from catalog")
	}
	return game
}

// history long enough for every model to train, newest first
func testHistory(t *testing.T, n int) []domain.DrawRecord {
	t.Helper()

	draws := make([]domain.DrawRecord, 0, n)
	for i := 0; i < n; i++ {
		base := (i % 7) + 1
		rec := domain.DrawRecord{
			GameType: "lotto_6_42",
			DrawDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (n-i)*2),
		}
		rec.SetNumbers([6]int{base, base + 6, base + 12, base + 18, base + 24, base + 30})
		draws = append(draws, rec)
	}
	return draws
}

func assertValidPick(t *testing.T, game domain.Game, numbers [6]int, label string) {
	t.Helper()

	seen := make(map[int]bool, 6)
	prev := 0
	for _, n := range numbers {
		if n < game.MinNumber || n > game.MaxNumber {
			t.Errorf("%s: number %d outside [%d, %d]", label, n, game.MinNumber, game.MaxNumber)
		}
		if seen[n] {
			t.Errorf("%s: duplicate number %d", label, n)
		}
		if n < prev {
			t.Errorf("%s: numbers not sorted: %v", label, numbers)
		}
		seen[n] = true
		prev = n
	}
}

func TestGeneratePredictions_OnePerModel(t *testing.T) {
	game := testGame(t)
	predRepo := &fakePredRepo{}
	svc := NewPredictorService(&fakeDrawRepo{records: testHistory(t, 30)}, predRepo, &fakeStateRepo{})

	records, err := svc.GeneratePredictions(context.Background(), "lotto_6_42")
	if err != nil {
		t.Fatalf("GeneratePredictions: %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("predictions = %d, want 5", len(records))
	}

	kinds := make(map[string]bool, 5)
	for _, rec := range records {
		kinds[rec.ModelType] = true
		assertValidPick(t, game, rec.Numbers(), rec.ModelType)
		if rec.TargetDrawDate.IsZero() {
			t.Errorf("%s: zero target date", rec.ModelType)
		}
	}

	for _, kind := range []string{
		domain.ModelGradientBoost,
		domain.ModelDecisionTree,
		domain.ModelMarkovChain,
		domain.ModelAnomalyDetection,
		domain.ModelRLAgent,
	} {
		if !kinds[kind] {
			t.Errorf("missing prediction from %s", kind)
		}
	}
}

func TestGeneratePredictions_InsufficientHistory(t *testing.T) {
	svc := NewPredictorService(&fakeDrawRepo{records: testHistory(t, 3)}, &fakePredRepo{}, &fakeStateRepo{})

	_, err := svc.GeneratePredictions(context.Background(), "lotto_6_42")
	if !errors.Is(err, ErrInsufficientHistory) {
		t.Fatalf("err = %v, want ErrInsufficientHistory", err)
	}
}

func TestGeneratePredictions_UnknownGame(t *testing.T) {
	svc := NewPredictorService(&fakeDrawRepo{}, &fakePredRepo{}, &fakeStateRepo{})

	_, err := svc.GeneratePredictions(context.Background(), "powerball")
	if !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("err = %v, want ErrUnknownGame", err)
	}
}

func TestTopByFrequency(t *testing.T) {
	game := testGame(t)

	freq := make([]int, game.MaxNumber+1)
	freq[7] = 9
	freq[3] = 5
	freq[40] = 5
	freq[12] = 4
	freq[25] = 3
	freq[1] = 2
	freq[2] = 2

	got := topByFrequency(freq, game)
	want := [6]int{1, 3, 7, 12, 25, 40}
	if got != want {
		t.Errorf("topByFrequency = %v, want %v", got, want)
	}
}

func TestFillDistinct_ResolvesCollisions(t *testing.T) {
	game := testGame(t)
	freq := make([]int, game.MaxNumber+1)

	// Three estimates rounding to the same number must still produce
	// six distinct values.
	got := fillDistinct([]float64{5.2, 5.4, 4.9, 20.0, 21.0, 22.0}, freq, game)
	assertValidPick(t, game, got, "fillDistinct")
}

func TestFillDistinct_ClampsToRange(t *testing.T) {
	game := testGame(t)
	freq := make([]int, game.MaxNumber+1)

	got := fillDistinct([]float64{-10, 0, 100, 200, 25, 26}, freq, game)
	assertValidPick(t, game, got, "fillDistinct clamp")
}

func TestMarkovChain_FollowsObservedTransition(t *testing.T) {
	game := testGame(t)

	stateA := [6]int{1, 2, 3, 4, 5, 6}
	stateB := [6]int{7, 8, 9, 10, 11, 12}

	// Alternate A, B, A, B ... so A -> B is the only transition out
	// of A. Newest first, ending (chronologically) on A.
	var draws []domain.DrawRecord
	for i := 0; i < 12; i++ {
		rec := domain.DrawRecord{
			GameType: game.Type,
			DrawDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (12-i)*2),
		}
		if i%2 == 0 {
			rec.SetNumbers(stateA)
		} else {
			rec.SetNumbers(stateB)
		}
		draws = append(draws, rec)
	}

	model := newMarkovChainModel()
	freq := frequencyCounts(draws, game)

	got, err := model.Predict(context.Background(), game, draws, freq)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != stateB {
		t.Errorf("prediction = %v, want %v (the only successor of the latest state)", got, stateB)
	}

	// Deterministic across runs.
	again, err := model.Predict(context.Background(), game, draws, freq)
	if err != nil {
		t.Fatalf("second Predict: %v", err)
	}
	if again != got {
		t.Errorf("prediction not deterministic: %v vs %v", got, again)
	}
}

func TestAgentLearn_UpdatesValuesAndDecaysEpsilon(t *testing.T) {
	stateRepo := &fakeStateRepo{
		state: &AgentState{
			Epsilon: 0.5,
			Values:  map[int]float64{1: 0.1, 2: 0.1},
		},
	}
	agent := newRLAgent(stateRepo)

	pred := domain.PredictionRecord{GameType: "lotto_6_42", ModelType: domain.ModelRLAgent}
	pred.SetNumbers([6]int{1, 2, 3, 4, 5, 6})

	scored := []ScoredPrediction{{
		Prediction: pred,
		Accuracy:   domain.PredictionAccuracy{NumbersMatched: 3},
	}}

	if err := agent.Learn(context.Background(), "lotto_6_42", scored); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if stateRepo.saves != 1 {
		t.Fatalf("saves = %d, want 1", stateRepo.saves)
	}

	state := stateRepo.state
	if state.Epsilon >= 0.5 {
		t.Errorf("epsilon = %v, want decayed below 0.5", state.Epsilon)
	}
	if state.Trained != 1 {
		t.Errorf("trained = %d, want 1", state.Trained)
	}
	// Reward 0.5 exceeds the prior value 0.1, so the value moves up.
	if state.Values[1] <= 0.1 {
		t.Errorf("value for 1 = %v, want > 0.1", state.Values[1])
	}
	// Newly seen numbers acquire an entry.
	if _, ok := state.Values[3]; !ok {
		t.Error("expected a value entry for number 3")
	}
}

func TestAgentLearn_IgnoresOtherModels(t *testing.T) {
	stateRepo := &fakeStateRepo{state: &AgentState{Epsilon: 0.5, Values: map[int]float64{}}}
	agent := newRLAgent(stateRepo)

	pred := domain.PredictionRecord{GameType: "lotto_6_42", ModelType: domain.ModelMarkovChain}
	pred.SetNumbers([6]int{1, 2, 3, 4, 5, 6})

	scored := []ScoredPrediction{{Prediction: pred, Accuracy: domain.PredictionAccuracy{NumbersMatched: 6}}}

	if err := agent.Learn(context.Background(), "lotto_6_42", scored); err != nil {
		t.Fatalf("Learn: %v", err)
	}

	if stateRepo.state.Trained != 0 {
		t.Errorf("trained = %d, want 0 for another model's prediction", stateRepo.state.Trained)
	}
	if stateRepo.state.Epsilon != 0.5 {
		t.Errorf("epsilon = %v, want unchanged", stateRepo.state.Epsilon)
	}
}

func TestTrainingSet_ChronologicalPairs(t *testing.T) {
	draws := testHistory(t, 5)

	X, y := trainingSet(draws)
	if len(X) != 4 || len(y) != 4 {
		t.Fatalf("pairs = (%d, %d), want (4, 4)", len(X), len(y))
	}

	// The last target must be the newest draw's numbers.
	if y[len(y)-1] != draws[0].Numbers() {
		t.Errorf("last target = %v, want %v", y[len(y)-1], draws[0].Numbers())
	}
}
