package leaderboard

import (
	"cmp"
	"slices"
)

// Ranked pairs an item with its standard competition rank.
type Ranked[T any] struct {
	Item  T
	Score float64
	Rank  int
}

// Rank orders items by score descending and assigns competition ranks: equal scores share a rank and
// the next distinct score takes its 1-based position, so [40,40,38] ranks [1,1,3]. Equal scores are
// ordered by key to keep the output stable across runs. The input slice is not modified.
func Rank[T any](items []T, score func(T) float64, key func(T) string) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		out = append(out, Ranked[T]{Item: item, Score: score(item)})
	}

	slices.SortStableFunc(out, func(a, b Ranked[T]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(key(a.Item), key(b.Item))
	})

	for i := range out {
		if i > 0 && out[i].Score == out[i-1].Score {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
