package leaderboard

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

type scored struct {
	id    string
	score float64
}

func TestRank_CompetitionRanking(t *testing.T) {
	items := []scored{{"c", 38}, {"b", 40}, {"a", 40}, {"d", 12}}
	got := Rank(items, func(s scored) float64 { return s.score }, func(s scored) string { return s.id })

	wantIDs := []string{"a", "b", "c", "d"}
	wantRanks := []int{1, 1, 3, 4}
	for i := range got {
		if got[i].Item.id != wantIDs[i] || got[i].Rank != wantRanks[i] {
			t.Fatalf("position %d: expected %s rank %d, got %s rank %d", i, wantIDs[i], wantRanks[i], got[i].Item.id, got[i].Rank)
		}
	}
	if items[0].id != "c" {
		t.Fatalf("input slice must not be reordered")
	}
}

func TestRank_RankEqualsOnePlusStrictlyGreater(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for run := 0; run < 50; run++ {
		items := make([]scored, rng.IntN(20)+1)
		for i := range items {
			items[i] = scored{id: fmt.Sprintf("p%02d", i), score: float64(rng.IntN(6))}
		}

		got := Rank(items, func(s scored) float64 { return s.score }, func(s scored) string { return s.id })
		for _, r := range got {
			greater := 0
			for _, other := range items {
				if other.score > r.Score {
					greater++
				}
			}
			if r.Rank != greater+1 {
				t.Fatalf("run %d: %s score %v expected rank %d, got %d", run, r.Item.id, r.Score, greater+1, r.Rank)
			}
		}
	}
}

func TestRank_Empty(t *testing.T) {
	got := Rank([]scored(nil), func(s scored) float64 { return s.score }, func(s scored) string { return s.id })
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestPointsTable_MissingRankEarnsZero(t *testing.T) {
	table := NewPointsTable(twoRoundFacts().Tournament.PointsTable)
	if got := table.Points(2); got != 60 {
		t.Fatalf("expected 60 for rank 2, got %v", got)
	}
	if got := table.Points(9); got != 0 {
		t.Fatalf("expected 0 for rank outside table, got %v", got)
	}
}
