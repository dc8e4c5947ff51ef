package leaderboard

import (
	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

// PointsTable maps a rank to the points it earns. Ranks missing from the table earn 0.
type PointsTable map[int]float64

func NewPointsTable(entries []tournament.PointsTableEntry) PointsTable {
	out := make(PointsTable, len(entries))
	for _, entry := range entries {
		out[entry.Rank] = entry.Points
	}
	return out
}

func (t PointsTable) Points(rank int) float64 {
	return t[rank]
}

type Placing struct {
	PlayerID        string
	StablefordTotal int
	Rank            int
	Points          float64
}

// RoundOutcome is the ranked result of one completed round.
type RoundOutcome struct {
	RoundID  string
	RoundNo  int
	Placings []Placing
	Winners  []string
}

// RankRounds ranks every completed round independently in round_no order. Results for players outside
// the roster are excluded, and rounds without roster results produce no outcome.
func RankRounds(f Facts, table PointsTable) []RoundOutcome {
	return rankRounds(indexFacts(f), f.Results, table)
}

func rankRounds(idx factIndex, results []round.Result, table PointsTable) []RoundOutcome {
	byRound := make(map[string][]round.Result, len(idx.rounds))
	for _, res := range results {
		if !idx.completed(res.RoundID) || !idx.onRoster(res.PlayerID) {
			continue
		}
		byRound[res.RoundID] = append(byRound[res.RoundID], res)
	}

	out := make([]RoundOutcome, 0, len(idx.rounds))
	for _, r := range idx.rounds {
		rows := byRound[r.RoundID]
		if len(rows) == 0 {
			continue
		}

		ranked := Rank(rows,
			func(res round.Result) float64 { return float64(res.StablefordTotal) },
			func(res round.Result) string { return res.PlayerID },
		)

		outcome := RoundOutcome{
			RoundID:  r.RoundID,
			RoundNo:  r.RoundNo,
			Placings: make([]Placing, 0, len(ranked)),
		}
		for _, item := range ranked {
			outcome.Placings = append(outcome.Placings, Placing{
				PlayerID:        item.Item.PlayerID,
				StablefordTotal: item.Item.StablefordTotal,
				Rank:            item.Rank,
				Points:          table.Points(item.Rank),
			})
			if item.Rank == 1 {
				outcome.Winners = append(outcome.Winners, item.Item.PlayerID)
			}
		}
		out = append(out, outcome)
	}
	return out
}
