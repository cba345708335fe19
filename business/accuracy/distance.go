package accuracy

import "math"

// Error-distance metrics between a predicted and an actual draw, both
// as sorted six-vectors.

func euclideanDistance(predicted, actual [6]int) float64 {
	sum := 0.0
	for i := range predicted {
		d := float64(predicted[i] - actual[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func manhattanDistance(predicted, actual [6]int) float64 {
	sum := 0.0
	for i := range predicted {
		sum += math.Abs(float64(predicted[i] - actual[i]))
	}
	return sum
}

// hammingDistance counts positions whose values differ.
func hammingDistance(predicted, actual [6]int) int {
	out := 0
	for i := range predicted {
		if predicted[i] != actual[i] {
			out++
		}
	}
	return out
}

// setIntersection counts predicted numbers that appear anywhere in
// the actual draw, position-independent.
func setIntersection(predicted, actual [6]int) int {
	have := make(map[int]bool, 6)
	for _, n := range actual {
		have[n] = true
	}

	out := 0
	for _, n := range predicted {
		if have[n] {
			out++
		}
	}
	return out
}

func sumDifference(predicted, actual [6]int) float64 {
	ps, as := 0, 0
	for i := range predicted {
		ps += predicted[i]
		as += actual[i]
	}
	return math.Abs(float64(ps - as))
}

func productDifference(predicted, actual [6]int) float64 {
	pp, ap := 1.0, 1.0
	for i := range predicted {
		pp *= float64(predicted[i])
		ap *= float64(actual[i])
	}
	return math.Abs(pp - ap)
}

func allMetrics(predicted, actual [6]int) map[string]interface{} {
	return map[string]interface{}{
		"euclidean_distance": euclideanDistance(predicted, actual),
		"manhattan_distance": manhattanDistance(predicted, actual),
		"hamming_distance":   hammingDistance(predicted, actual),
		"set_intersection":   setIntersection(predicted, actual),
		"sum_difference":     sumDifference(predicted, actual),
		"product_difference": productDifference(predicted, actual),
	}
}
