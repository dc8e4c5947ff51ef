package leaderboard

import (
	"math"
	"slices"

	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

// AggregateSeason combines per-round points under rule. For best_n, a bestN of zero or less counts
// every round. No rounds always yields 0.
func AggregateSeason(rule tournament.AggregationRule, bestN int, points []float64) float64 {
	if len(points) == 0 {
		return 0
	}

	switch rule {
	case tournament.AggregationAverage:
		return RoundToTenth(sum(points) / float64(len(points)))
	case tournament.AggregationBestN:
		if bestN <= 0 || bestN >= len(points) {
			return sum(points)
		}
		sorted := slices.Clone(points)
		slices.Sort(sorted)
		slices.Reverse(sorted)
		return sum(sorted[:bestN])
	default:
		return sum(points)
	}
}

// RoundToTenth rounds half up to one decimal place.
func RoundToTenth(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
