package leaderboard

import (
	"strings"
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
)

// RankStandings ranks individual standings by total points with ties ordered by player id.
func RankStandings(items []standing.Standing) []standing.Standing {
	ranked := Rank(items,
		func(s standing.Standing) float64 { return s.TotalPoints },
		func(s standing.Standing) string { return s.PlayerID },
	)

	out := make([]standing.Standing, 0, len(ranked))
	for _, item := range ranked {
		s := item.Item
		s.Rank = item.Rank
		out = append(out, s)
	}
	return out
}

// BuildTeamStandings groups members by team name and ranks the teams. Team season points are derived
// as total minus bonus. Players without a team are ignored; no teams yields nil.
func BuildTeamStandings(tournamentID string, members []standing.Standing, at time.Time) []standing.TeamStanding {
	byTeam := make(map[string]*standing.TeamStanding)
	order := make([]string, 0)
	for _, m := range members {
		name := strings.TrimSpace(m.TeamName)
		if name == "" {
			continue
		}
		team, ok := byTeam[name]
		if !ok {
			team = &standing.TeamStanding{
				TournamentID: tournamentID,
				TeamName:     name,
				LastUpdated:  at,
			}
			byTeam[name] = team
			order = append(order, name)
		}
		team.TotalPoints += m.TotalPoints
		team.BonusPoints += m.BonusPoints
		team.RoundsPlayed = max(team.RoundsPlayed, m.RoundsPlayed)
	}
	if len(order) == 0 {
		return nil
	}

	teams := make([]standing.TeamStanding, 0, len(order))
	for _, name := range order {
		team := byTeam[name]
		team.SeasonPoints = team.TotalPoints - team.BonusPoints
		teams = append(teams, *team)
	}

	ranked := Rank(teams,
		func(t standing.TeamStanding) float64 { return t.TotalPoints },
		func(t standing.TeamStanding) string { return t.TeamName },
	)
	out := make([]standing.TeamStanding, 0, len(ranked))
	for _, item := range ranked {
		t := item.Item
		t.Rank = item.Rank
		out = append(out, t)
	}
	return out
}
