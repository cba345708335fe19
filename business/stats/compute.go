package stats

import (
	"lottoLens/domain"
	"math"
	"sort"
)

// frequencyTable counts, for every number in the game's range, how
// many stored draws contain it. Entries are ordered by number.
func frequencyTable(records []domain.DrawRecord, game domain.Game) []domain.NumberFrequency {
	counts := make([]int, game.MaxNumber+1)
	for _, rec := range records {
		for _, n := range rec.Numbers() {
			if n >= game.MinNumber && n <= game.MaxNumber {
				counts[n]++
			}
		}
	}

	table := make([]domain.NumberFrequency, 0, game.MaxNumber)
	for n := game.MinNumber; n <= game.MaxNumber; n++ {
		table = append(table, domain.NumberFrequency{Number: n, Frequency: counts[n]})
	}

	return table
}

// hotNumbers orders the frequency table by count descending, ties
// broken by ascending number.
func hotNumbers(table []domain.NumberFrequency) []domain.NumberFrequency {
	out := make([]domain.NumberFrequency, len(table))
	copy(out, table)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Number < out[j].Number
	})

	return out
}

// coldNumbers orders the frequency table by count ascending, ties
// broken by ascending number.
func coldNumbers(table []domain.NumberFrequency) []domain.NumberFrequency {
	out := make([]domain.NumberFrequency, len(table))
	copy(out, table)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency < out[j].Frequency
		}
		return out[i].Number < out[j].Number
	})

	return out
}

// overdueNumbers reports, per number, how many of the most recent
// consecutive draws it has missed. Records must be ordered by draw
// date descending. A number never drawn has missed all of them.
func overdueNumbers(records []domain.DrawRecord, game domain.Game) []domain.OverdueNumber {
	lastSeen := make(map[int]int, game.MaxNumber)
	for i, rec := range records {
		for _, n := range rec.Numbers() {
			if _, ok := lastSeen[n]; !ok {
				lastSeen[n] = i
			}
		}
	}

	out := make([]domain.OverdueNumber, 0, game.MaxNumber)
	for n := game.MinNumber; n <= game.MaxNumber; n++ {
		missed, ok := lastSeen[n]
		if !ok {
			missed = len(records)
		}
		out = append(out, domain.OverdueNumber{Number: n, DrawsMissed: missed})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DrawsMissed != out[j].DrawsMissed {
			return out[i].DrawsMissed > out[j].DrawsMissed
		}
		return out[i].Number < out[j].Number
	})

	return out
}

// summarize computes the aggregate view. Average jackpot is absent
// when no record carries a known jackpot.
func summarize(records []domain.DrawRecord) domain.StatsSummary {
	summary := domain.StatsSummary{TotalDraws: len(records)}
	if len(records) == 0 {
		return summary
	}

	var jackpotSum float64
	jackpotCount := 0
	minDate := records[0].DrawDate
	maxDate := records[0].DrawDate

	for _, rec := range records {
		if rec.Jackpot != nil {
			jackpotSum += *rec.Jackpot
			jackpotCount++
		}
		if rec.DrawDate.Before(minDate) {
			minDate = rec.DrawDate
		}
		if rec.DrawDate.After(maxDate) {
			maxDate = rec.DrawDate
		}
	}

	if jackpotCount > 0 {
		avg := jackpotSum / float64(jackpotCount)
		summary.AverageJackpot = &avg
	}

	summary.DateRange = &domain.DateRange{Start: minDate, End: maxDate}

	return summary
}

// distribution maps every draw onto the (sum, product) plane and fits
// a Gaussian over sums and log-products.
func distribution(records []domain.DrawRecord, game domain.Game) domain.DrawDistribution {
	dist := domain.DrawDistribution{GameType: game.Type}
	if len(records) == 0 {
		return dist
	}

	points := make([]domain.DistributionPoint, 0, len(records))
	sums := make([]float64, 0, len(records))
	logProducts := make([]float64, 0, len(records))
	sumMin, sumMax := math.MaxInt32, 0

	for _, rec := range records {
		numbers := rec.Numbers()

		sum := 0
		product := 1.0
		for _, n := range numbers {
			sum += n
			product *= float64(n)
		}

		points = append(points, domain.DistributionPoint{
			DrawDate: rec.DrawDate,
			Numbers:  numbers,
			Sum:      sum,
			Product:  product,
		})

		sums = append(sums, float64(sum))
		logProducts = append(logProducts, math.Log(product))

		if sum < sumMin {
			sumMin = sum
		}
		if sum > sumMax {
			sumMax = sum
		}
	}

	sumMean, sumStd := meanStd(sums)
	logMean, logStd := meanStd(logProducts)

	dist.Points = points
	dist.Fit = &domain.GaussianFit{
		SumMean:        sumMean,
		SumStd:         sumStd,
		SumMin:         sumMin,
		SumMax:         sumMax,
		LogProductMean: logMean,
		LogProductStd:  logStd,
		Count:          len(points),
	}

	return dist
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

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
