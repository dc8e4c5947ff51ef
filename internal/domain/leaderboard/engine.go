package leaderboard

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
)

// Result is the full output of one standings computation.
type Result struct {
	Outcomes  []RoundOutcome
	Standings []standing.Standing
	Teams     []standing.TeamStanding
}

// Compute runs the pipeline with the bonus rules enabled by the tournament's bonus config.
func Compute(f Facts) (Result, error) {
	return ComputeWithRules(f, RulesFromConfig(f.Tournament.BonusConfig))
}

// ComputeWithRules ranks rounds, aggregates season points, applies rules and ranks the standings.
// Every roster player appears exactly once in the output, zeroed when they played no round.
func ComputeWithRules(f Facts, rules []BonusRule) (Result, error) {
	if err := f.Tournament.Validate(); err != nil {
		return Result{}, errors.Wrap(err, "validate tournament")
	}

	idx := indexFacts(f)
	outcomes := rankRounds(idx, f.Results, NewPointsTable(f.Tournament.PointsTable))
	records := buildRecords(idx, outcomes)

	bonuses := CalculateBonuses(rules, BonusInput{
		Facts:    f,
		Outcomes: outcomes,
		Records:  records,
		idx:      idx,
	})
	skins := skinsTotals(idx, f.Skins)

	rule := f.Tournament.Rule()
	items := make([]standing.Standing, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, p := range f.Players {
		rec, ok := records[p.PlayerID]
		if !ok {
			continue
		}
		// Duplicate roster rows collapse into one standing.
		if _, dup := seen[p.PlayerID]; dup {
			continue
		}
		seen[p.PlayerID] = struct{}{}

		season := AggregateSeason(rule, f.Tournament.BestN, rec.RoundPoints)
		bonus := bonuses[p.PlayerID]
		items = append(items, standing.Standing{
			TournamentID:    f.Tournament.ID,
			PlayerID:        p.PlayerID,
			TeamName:        strings.TrimSpace(rec.TeamName),
			SeasonPoints:    season,
			BonusPoints:     bonus,
			TotalPoints:     season + bonus,
			RoundsPlayed:    rec.RoundsPlayed,
			RoundsWon:       rec.RoundsWon,
			StablefordTotal: rec.StablefordTotal,
			SkinsTotalValue: skins[p.PlayerID],
			LastUpdated:     f.ComputedAt,
		})
	}

	ranked := RankStandings(items)
	return Result{
		Outcomes:  outcomes,
		Standings: ranked,
		Teams:     BuildTeamStandings(f.Tournament.ID, ranked, f.ComputedAt),
	}, nil
}
