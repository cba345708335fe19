package predictor

import (
	"lottoLens/domain"
	"math"
	"sort"
)

const featureDim = 7

// drawFeatures summarises a draw for the regression models: sum,
// mean, spread statistics, plus the sum delta to the previous draw.
func drawFeatures(prev, cur [6]int) [featureDim]float64 {
	sum := 0
	min, max := cur[0], cur[0]
	for _, n := range cur {
		sum += n
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	mean := float64(sum) / 6.0

	variance := 0.0
	for _, n := range cur {
		d := float64(n) - mean
		variance += d * d
	}
	std := math.Sqrt(variance / 6.0)

	prevSum := 0
	for _, n := range prev {
		prevSum += n
	}

	return [featureDim]float64{
		float64(sum),
		mean,
		std,
		float64(min),
		float64(max),
		float64(max - min),
		float64(sum - prevSum),
	}
}

// trainingSet builds (features of draw i, numbers of draw i+1) pairs
// in chronological order. Input draws are date-descending as the
// repository returns them.
func trainingSet(draws []domain.DrawRecord) ([][featureDim]float64, [][6]int) {
	asc := make([]domain.DrawRecord, len(draws))
	copy(asc, draws)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].DrawDate.Before(asc[j].DrawDate)
	})

	var X [][featureDim]float64
	var y [][6]int

	for i := 0; i+1 < len(asc); i++ {
		prev := [6]int{}
		if i > 0 {
			prev = asc[i-1].Numbers()
		}
		X = append(X, drawFeatures(prev, asc[i].Numbers()))
		y = append(y, asc[i+1].Numbers())
	}

	return X, y
}

// latestFeatures returns the feature vector of the most recent draw.
func latestFeatures(draws []domain.DrawRecord) [featureDim]float64 {
	asc := make([]domain.DrawRecord, len(draws))
	copy(asc, draws)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].DrawDate.Before(asc[j].DrawDate)
	})

	prev := [6]int{}
	if len(asc) > 1 {
		prev = asc[len(asc)-2].Numbers()
	}

	return drawFeatures(prev, asc[len(asc)-1].Numbers())
}

// frequencyCounts tallies number occurrences, indexed by number.
func frequencyCounts(draws []domain.DrawRecord, game domain.Game) []int {
	freq := make([]int, game.MaxNumber+1)
	for _, rec := range draws {
		for _, n := range rec.Numbers() {
			if n >= game.MinNumber && n <= game.MaxNumber {
				freq[n]++
			}
		}
	}
	return freq
}

// topByFrequency is the shared fallback: the six most frequent
// numbers, ties broken by ascending number.
func topByFrequency(freq []int, game domain.Game) [6]int {
	type entry struct {
		number int
		count  int
	}

	entries := make([]entry, 0, game.MaxNumber)
	for n := game.MinNumber; n <= game.MaxNumber && n < len(freq); n++ {
		entries = append(entries, entry{number: n, count: freq[n]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].number < entries[j].number
	})

	var out [6]int
	for i := 0; i < 6 && i < len(entries); i++ {
		out[i] = entries[i].number
	}
	sort.Ints(out[:])

	return out
}

// fillDistinct turns raw per-position estimates into six distinct
// in-range numbers, padding collisions from the frequency ranking.
func fillDistinct(estimates []float64, freq []int, game domain.Game) [6]int {
	used := make(map[int]bool, 6)
	out := make([]int, 0, 6)

	for _, est := range estimates {
		n := int(math.Round(est))
		if n < game.MinNumber {
			n = game.MinNumber
		}
		if n > game.MaxNumber {
			n = game.MaxNumber
		}

		// Nudge upward to the nearest unused number, wrapping once.
		for tries := 0; used[n] && tries <= game.MaxNumber; tries++ {
			n++
			if n > game.MaxNumber {
				n = game.MinNumber
			}
		}

		if !used[n] {
			used[n] = true
			out = append(out, n)
		}
	}

	fallback := topByFrequency(freq, game)
	for i := 0; len(out) < 6 && i < len(fallback); i++ {
		if !used[fallback[i]] {
			used[fallback[i]] = true
			out = append(out, fallback[i])
		}
	}

	for n := game.MinNumber; len(out) < 6 && n <= game.MaxNumber; n++ {
		if !used[n] {
			used[n] = true
			out = append(out, n)
		}
	}

	sort.Ints(out)

	var result [6]int
	copy(result[:], out)

	return result
}
