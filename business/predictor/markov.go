package predictor

import (
	"context"
	"lottoLens/domain"
	"sort"
)

// markovChainModel treats each draw's sorted six-number set as a
// state and counts transitions between consecutive draws. Prediction
// is the most probable successor of the latest state, falling back to
// the globally most common state and finally to frequency ranking.
type markovChainModel struct{}

func newMarkovChainModel() *markovChainModel {
	return &markovChainModel{}
}

func (m *markovChainModel) Kind() string {
	return domain.ModelMarkovChain
}

func (m *markovChainModel) Predict(ctx context.Context, game domain.Game, draws []domain.DrawRecord, freq []int) ([6]int, error) {
	if err := ctx.Err(); err != nil {
		return [6]int{}, err
	}

	if len(draws) < minHistory {
		return topByFrequency(freq, game), nil
	}

	asc := make([]domain.DrawRecord, len(draws))
	copy(asc, draws)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].DrawDate.Before(asc[j].DrawDate)
	})

	transitions := make(map[[6]int]map[[6]int]int)
	stateCounts := make(map[[6]int]int)

	for i := 0; i+1 < len(asc); i++ {
		from := asc[i].Numbers()
		to := asc[i+1].Numbers()

		next, ok := transitions[from]
		if !ok {
			next = make(map[[6]int]int)
			transitions[from] = next
		}
		next[to]++
		stateCounts[from]++
	}

	latest := asc[len(asc)-1].Numbers()

	if next, ok := transitions[latest]; ok && len(next) > 0 {
		return mostCommonState(next), nil
	}

	// No outgoing transition for the latest state: use the state with
	// the most observed successors.
	if len(stateCounts) > 0 {
		return mostCommonState(stateCounts), nil
	}

	return topByFrequency(freq, game), nil
}

// mostCommonState picks the highest-count state; ties resolve to the
// lexicographically smallest set so the result is deterministic.
func mostCommonState(counts map[[6]int]int) [6]int {
	var best [6]int
	bestCount := -1

	for state, count := range counts {
		if count > bestCount || (count == bestCount && lessState(state, best)) {
			best = state
			bestCount = count
		}
	}

	return best
}

func lessState(a, b [6]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
