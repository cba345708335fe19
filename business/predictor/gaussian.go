package predictor

import (
	"context"
	"lottoLens/domain"
	"math"
	"math/rand"
	"sort"
)

const (
	anomalyEpsilon    = 2.0 // standard deviations for the boundary
	anomalyCandidates = 1000
)

// anomalyDetectionModel fits a Gaussian over each draw's (sum,
// log-product) representation, then samples random candidate sets and
// keeps the one furthest outside the epsilon boundary.
type anomalyDetectionModel struct{}

func newAnomalyDetectionModel() *anomalyDetectionModel {
	return &anomalyDetectionModel{}
}

func (m *anomalyDetectionModel) Kind() string {
	return domain.ModelAnomalyDetection
}

func (m *anomalyDetectionModel) Predict(ctx context.Context, game domain.Game, draws []domain.DrawRecord, freq []int) ([6]int, error) {
	if err := ctx.Err(); err != nil {
		return [6]int{}, err
	}

	if len(draws) < minHistory {
		return topByFrequency(freq, game), nil
	}

	sums := make([]float64, 0, len(draws))
	logProducts := make([]float64, 0, len(draws))

	for _, rec := range draws {
		sum := 0
		logProduct := 0.0
		for _, n := range rec.Numbers() {
			sum += n
			logProduct += math.Log(float64(n))
		}
		sums = append(sums, float64(sum))
		logProducts = append(logProducts, logProduct)
	}

	sumMean, sumStd := gaussianFit(sums)
	logMean, logStd := gaussianFit(logProducts)
	if sumStd == 0 {
		sumStd = 1
	}
	if logStd == 0 {
		logStd = 1
	}

	best := topByFrequency(freq, game)
	bestScore := 0.0

	for i := 0; i < anomalyCandidates; i++ {
		candidate := randomSet(game)

		sum := 0
		logProduct := 0.0
		for _, n := range candidate {
			sum += n
			logProduct += math.Log(float64(n))
		}

		z := math.Abs(float64(sum)-sumMean)/sumStd + math.Abs(logProduct-logMean)/logStd
		if z > anomalyEpsilon && z > bestScore {
			bestScore = z
			best = candidate
		}
	}

	return best, nil
}

func gaussianFit(values []float64) (float64, float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

// randomSet draws six distinct numbers within the game's range.
func randomSet(game domain.Game) [6]int {
	picked := make(map[int]bool, 6)
	var out [6]int

	for i := 0; i < 6; {
		n := game.MinNumber + rand.Intn(game.MaxNumber-game.MinNumber+1)
		if picked[n] {
			continue
		}
		picked[n] = true
		out[i] = n
		i++
	}

	sort.Ints(out[:])

	return out
}
