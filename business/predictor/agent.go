package predictor

import (
	"context"
	"fmt"
	"lottoLens/domain"
	"lottoLens/pkg/logger"
	"math/rand"
	"sort"
	"time"
)

// Agent hyperparameters.
const (
	agentLearningRate = 0.001
	agentGamma        = 0.99
	agentEpsilonStart = 1.0
	agentEpsilonDecay = 0.995
	agentEpsilonMin   = 0.01
)

// AgentState is the learning agent's persisted state: one value per
// number plus the current exploration rate.
type AgentState struct {
	Epsilon     float64         `json:"epsilon"`
	Values      map[int]float64 `json:"values"`
	Trained     int             `json:"trained"`
	LastUpdated time.Time       `json:"last_updated"`
}

// AgentStateRepository contract interface
type AgentStateRepository interface {
	GetAgentState(ctx context.Context, gameType string) (*AgentState, error)
	SaveAgentState(ctx context.Context, gameType string, state *AgentState) error
}

// ScoredPrediction pairs a stored prediction with its accuracy record
// for agent training.
type ScoredPrediction struct {
	Prediction domain.PredictionRecord
	Accuracy   domain.PredictionAccuracy
}

// rlAgent is an epsilon-greedy value learner over individual numbers.
// It explores random numbers early, then shifts toward the numbers
// whose past predictions scored best.
type rlAgent struct {
	stateRepo AgentStateRepository
}

func newRLAgent(stateRepo AgentStateRepository) *rlAgent {
	return &rlAgent{stateRepo: stateRepo}
}

func (a *rlAgent) Kind() string {
	return domain.ModelRLAgent
}

func (a *rlAgent) Predict(ctx context.Context, game domain.Game, draws []domain.DrawRecord, freq []int) ([6]int, error) {
	if len(draws) < minHistory {
		return topByFrequency(freq, game), nil
	}

	state, err := a.loadOrSeed(ctx, game, freq)
	if err != nil {
		return [6]int{}, err
	}

	picked := make(map[int]bool, 6)
	var out [6]int

	for i := 0; i < 6; i++ {
		if rand.Float64() < state.Epsilon {
			out[i] = randomUnpicked(game, picked)
		} else {
			out[i] = bestUnpicked(game, state.Values, picked)
		}
		picked[out[i]] = true
	}

	sort.Ints(out[:])

	return out, nil
}

// Learn updates the value table from scored predictions and decays
// the exploration rate.
func (a *rlAgent) Learn(ctx context.Context, gameType string, scored []ScoredPrediction) error {
	if len(scored) == 0 {
		return nil
	}

	game, ok := domain.GameByType(gameType)
	if !ok {
		return ErrUnknownGame
	}

	state, err := a.loadOrSeed(ctx, game, nil)
	if err != nil {
		return err
	}

	for _, sp := range scored {
		if sp.Prediction.ModelType != domain.ModelRLAgent {
			continue
		}

		reward := float64(sp.Accuracy.NumbersMatched) / 6.0
		maxValue := 0.0
		for _, v := range state.Values {
			if v > maxValue {
				maxValue = v
			}
		}

		for _, n := range sp.Prediction.Numbers() {
			state.Values[n] += agentLearningRate * (reward + agentGamma*maxValue - state.Values[n])
		}

		state.Trained++
		state.Epsilon *= agentEpsilonDecay
		if state.Epsilon < agentEpsilonMin {
			state.Epsilon = agentEpsilonMin
		}
	}

	state.LastUpdated = time.Now()

	if err := a.stateRepo.SaveAgentState(ctx, gameType, state); err != nil {
		return fmt.Errorf("failed to save agent state: %w", err)
	}

	logger.Info("Agent state updated", "game_type", gameType, "trained", state.Trained, "epsilon", state.Epsilon)

	return nil
}

// loadOrSeed fetches the persisted state, seeding a fresh one from
// the frequency table when none exists yet.
func (a *rlAgent) loadOrSeed(ctx context.Context, game domain.Game, freq []int) (*AgentState, error) {
	state, err := a.stateRepo.GetAgentState(ctx, game.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to load agent state: %w", err)
	}

	if state == nil {
		state = &AgentState{
			Epsilon: agentEpsilonStart,
			Values:  make(map[int]float64, game.MaxNumber),
		}
	}
	if state.Values == nil {
		state.Values = make(map[int]float64, game.MaxNumber)
	}

	if len(state.Values) == 0 && freq != nil {
		total := 0
		for _, c := range freq {
			total += c
		}
		if total > 0 {
			for n := game.MinNumber; n <= game.MaxNumber && n < len(freq); n++ {
				state.Values[n] = float64(freq[n]) / float64(total)
			}
		}
	}

	return state, nil
}

func randomUnpicked(game domain.Game, picked map[int]bool) int {
	for {
		n := game.MinNumber + rand.Intn(game.MaxNumber-game.MinNumber+1)
		if !picked[n] {
			return n
		}
	}
}

func bestUnpicked(game domain.Game, values map[int]float64, picked map[int]bool) int {
	best := -1
	bestValue := 0.0

	for n := game.MinNumber; n <= game.MaxNumber; n++ {
		if picked[n] {
			continue
		}
		if best == -1 || values[n] > bestValue {
			best = n
			bestValue = values[n]
		}
	}

	return best
}
