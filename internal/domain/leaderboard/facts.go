package leaderboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

// Facts is the in-memory snapshot a standings computation runs on. Rounds must hold completed rounds
// only; every other fact is filtered against Rounds and Players again, so callers may pass supersets.
type Facts struct {
	Tournament  tournament.Tournament
	Rounds      []tournament.Round
	Players     []tournament.Player
	Results     []round.Result
	HoleResults []round.HoleResult
	Aces        []round.Score
	Skins       []round.SkinsResult
	ComputedAt  time.Time
}

type factIndex struct {
	rounds  []tournament.Round
	roundNo map[string]int
	roster  map[string]tournament.Player
}

func indexFacts(f Facts) factIndex {
	rounds := slices.Clone(f.Rounds)
	slices.SortStableFunc(rounds, func(a, b tournament.Round) int {
		if c := cmp.Compare(a.RoundNo, b.RoundNo); c != 0 {
			return c
		}
		return cmp.Compare(a.RoundID, b.RoundID)
	})

	idx := factIndex{
		rounds:  rounds,
		roundNo: make(map[string]int, len(rounds)),
		roster:  make(map[string]tournament.Player, len(f.Players)),
	}
	for _, r := range rounds {
		idx.roundNo[r.RoundID] = r.RoundNo
	}
	for _, p := range f.Players {
		idx.roster[p.PlayerID] = p
	}
	return idx
}

func (i factIndex) completed(roundID string) bool {
	_, ok := i.roundNo[roundID]
	return ok
}

func (i factIndex) onRoster(playerID string) bool {
	_, ok := i.roster[playerID]
	return ok
}
