package predictor

import (
	"context"
	"lottoLens/domain"
)

// Boosting hyperparameters.
const (
	boostRounds       = 50
	boostLearningRate = 0.1
	boostWindow       = 400
)

// gradientBoostModel fits boosted regression stumps per number
// position, squared-error gradient descent in function space.
type gradientBoostModel struct{}

func newGradientBoostModel() *gradientBoostModel {
	return &gradientBoostModel{}
}

func (m *gradientBoostModel) Kind() string {
	return domain.ModelGradientBoost
}

func (m *gradientBoostModel) Predict(ctx context.Context, game domain.Game, draws []domain.DrawRecord, freq []int) ([6]int, error) {
	if err := ctx.Err(); err != nil {
		return [6]int{}, err
	}

	if len(draws) < minHistory {
		return topByFrequency(freq, game), nil
	}

	window := draws
	if len(window) > boostWindow {
		window = window[:boostWindow]
	}

	X, y := trainingSet(window)
	if len(X) == 0 {
		return topByFrequency(freq, game), nil
	}

	latest := latestFeatures(window)
	estimates := make([]float64, 6)

	for pos := 0; pos < 6; pos++ {
		target := make([]float64, len(y))
		for i := range y {
			target[i] = float64(y[i][pos])
		}

		estimates[pos] = boostPredict(X, target, latest)
	}

	return fillDistinct(estimates, freq, game), nil
}

// boostPredict runs the full fit-then-predict cycle for one target
// position. Base score is the target mean; each round fits a stump to
// the residuals and contributes a shrunk correction.
func boostPredict(X [][featureDim]float64, target []float64, latest [featureDim]float64) float64 {
	idx := make([]int, len(target))
	for i := range idx {
		idx[i] = i
	}
	base := mean(target, idx)

	pred := make([]float64, len(target))
	for i := range pred {
		pred[i] = base
	}

	out := base
	residual := make([]float64, len(target))

	for round := 0; round < boostRounds; round++ {
		for i := range target {
			residual[i] = target[i] - pred[i]
		}

		st := fitStump(X, residual)
		for i := range pred {
			pred[i] += boostLearningRate * st.predict(X[i])
		}
		out += boostLearningRate * st.predict(latest)
	}

	return out
}
