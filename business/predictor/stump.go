package predictor

import "sort"

// Regression stump machinery shared by the gradient boosting and
// decision tree models.

type stump struct {
	feature   int
	threshold float64
	left      float64
	right     float64
}

func (s stump) predict(x [featureDim]float64) float64 {
	if x[s.feature] <= s.threshold {
		return s.left
	}
	return s.right
}

// bestSplit finds the (feature, threshold) pair minimising the summed
// squared error over the given sample subset. Per feature this sorts
// once and sweeps with prefix sums. Returns ok=false when no split
// separates the samples.
func bestSplit(X [][featureDim]float64, y []float64, idx []int) (feature int, threshold float64, ok bool) {
	if len(idx) < 2 {
		return 0, 0, false
	}

	bestSSE := sse(y, idx)
	found := false

	order := make([]int, len(idx))

	for f := 0; f < featureDim; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return X[order[a]][f] < X[order[b]][f]
		})

		total := 0.0
		for _, i := range order {
			total += y[i]
		}

		prefix := 0.0
		prefixSq := 0.0
		totalSq := 0.0
		for _, i := range order {
			totalSq += y[i] * y[i]
		}

		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			prefix += y[i]
			prefixSq += y[i] * y[i]

			// No split between equal feature values.
			if X[order[k]][f] == X[order[k+1]][f] {
				continue
			}

			nl := float64(k + 1)
			nr := float64(len(order) - k - 1)

			leftSSE := prefixSq - prefix*prefix/nl
			rightSum := total - prefix
			rightSSE := (totalSq - prefixSq) - rightSum*rightSum/nr

			if leftSSE+rightSSE < bestSSE-1e-12 {
				bestSSE = leftSSE + rightSSE
				feature = f
				threshold = (X[order[k]][f] + X[order[k+1]][f]) / 2
				found = true
			}
		}
	}

	return feature, threshold, found
}

// fitStump fits a single regression stump to the residuals.
func fitStump(X [][featureDim]float64, residual []float64) stump {
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}

	f, t, ok := bestSplit(X, residual, idx)
	if !ok {
		return stump{feature: 0, threshold: 0, left: mean(residual, idx), right: mean(residual, idx)}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][f] <= t {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return stump{
		feature:   f,
		threshold: t,
		left:      mean(residual, leftIdx),
		right:     mean(residual, rightIdx),
	}
}

func mean(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sse(y []float64, idx []int) float64 {
	m := mean(y, idx)
	out := 0.0
	for _, i := range idx {
		d := y[i] - m
		out += d * d
	}
	return out
}
