package memory

import (
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

const (
	TournamentIDSpringCup    = "club-spring-cup-2026"
	TournamentIDWinterLeague = "club-winter-league-2025"
)

var seedPlayers = []string{"pl-ardi", "pl-bima", "pl-citra", "pl-dewi", "pl-eko", "pl-fajar"}

func SeedTournaments() []tournament.Tournament {
	createdAt := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	return []tournament.Tournament{
		{
			ID:              TournamentIDSpringCup,
			Name:            "Club Spring Cup 2026",
			AggregationRule: tournament.AggregationSum,
			PointsTable:     tournament.GeneratePointsTable(len(seedPlayers)),
			BonusConfig:     tournament.DefaultBonusConfig(),
			Status:          tournament.StatusActive,
			CreatedAt:       createdAt,
			UpdatedAt:       createdAt,
		},
		{
			ID:              TournamentIDWinterLeague,
			Name:            "Club Winter League 2025",
			AggregationRule: tournament.AggregationBestN,
			BestN:           2,
			PointsTable:     tournament.GeneratePointsTable(4),
			BonusConfig:     tournament.BonusConfig{tournament.BonusRoundWinner: 10},
			Status:          tournament.StatusCompleted,
			CreatedAt:       createdAt.AddDate(0, -4, 0),
			UpdatedAt:       createdAt,
		},
	}
}

func SeedRounds() []tournament.Round {
	return []tournament.Round{
		{TournamentID: TournamentIDSpringCup, RoundID: "rd-spring-1", RoundNo: 1},
		{TournamentID: TournamentIDSpringCup, RoundID: "rd-spring-2", RoundNo: 2},
		{TournamentID: TournamentIDSpringCup, RoundID: "rd-spring-3", RoundNo: 3},
		{TournamentID: TournamentIDSpringCup, RoundID: "rd-spring-4", RoundNo: 4},
		{TournamentID: TournamentIDWinterLeague, RoundID: "rd-winter-1", RoundNo: 1},
		{TournamentID: TournamentIDWinterLeague, RoundID: "rd-winter-2", RoundNo: 2},
		{TournamentID: TournamentIDWinterLeague, RoundID: "rd-winter-3", RoundNo: 3},
	}
}

func SeedPlayers() []tournament.Player {
	teams := []string{"Eagles", "Eagles", "Eagles", "Albatross", "Albatross", ""}

	out := make([]tournament.Player, 0, len(seedPlayers)+4)
	for i, id := range seedPlayers {
		out = append(out, tournament.Player{TournamentID: TournamentIDSpringCup, PlayerID: id, TeamName: teams[i]})
	}
	for _, id := range seedPlayers[:4] {
		out = append(out, tournament.Player{TournamentID: TournamentIDWinterLeague, PlayerID: id})
	}
	return out
}

func SeedRoundFacts() RoundFacts {
	facts := RoundFacts{
		Statuses: map[string]round.Status{
			"rd-spring-1": round.StatusCompleted,
			"rd-spring-2": round.StatusCompleted,
			"rd-spring-3": round.StatusCompleted,
			"rd-spring-4": round.StatusScheduled,
			"rd-winter-1": round.StatusCompleted,
			"rd-winter-2": round.StatusCompleted,
			"rd-winter-3": round.StatusCompleted,
		},
	}

	stableford := map[string][]int{
		"rd-spring-1": {38, 34, 36, 31, 34, 29},
		"rd-spring-2": {35, 39, 33, 35, 30, 32},
		"rd-spring-3": {40, 33, 37, 36, 31, 35},
		"rd-winter-1": {30, 36, 33, 28},
		"rd-winter-2": {34, 31, 35, 33},
		"rd-winter-3": {29, 37, 32, 36},
	}
	for _, roundID := range []string{"rd-spring-1", "rd-spring-2", "rd-spring-3", "rd-winter-1", "rd-winter-2", "rd-winter-3"} {
		for i, total := range stableford[roundID] {
			facts.Results = append(facts.Results, round.Result{RoundID: roundID, PlayerID: seedPlayers[i], StablefordTotal: total})
		}
	}

	facts.HoleResults = []round.HoleResult{
		{RoundID: "rd-spring-1", PlayerID: "pl-ardi", HoleNo: 7, Par: 5, NetStrokes: 3},
		{RoundID: "rd-spring-2", PlayerID: "pl-bima", HoleNo: 12, Par: 4, NetStrokes: 3},
		{RoundID: "rd-spring-3", PlayerID: "pl-dewi", HoleNo: 3, Par: 4, NetStrokes: 2},
	}
	facts.Scores = []round.Score{
		{RoundID: "rd-spring-2", PlayerID: "pl-citra", HoleNo: 8, Strokes: 1},
	}
	facts.Skins = []round.SkinsResult{
		{RoundID: "rd-spring-1", HoleNo: 7, WinnerPlayerID: "pl-ardi", AwardedValue: 2},
		{RoundID: "rd-spring-1", HoleNo: 11, AwardedValue: 0},
		{RoundID: "rd-spring-2", HoleNo: 8, WinnerPlayerID: "pl-citra", AwardedValue: 3},
		{RoundID: "rd-spring-3", HoleNo: 3, WinnerPlayerID: "pl-dewi", AwardedValue: 1.5},
		{RoundID: "rd-spring-3", HoleNo: 15, WinnerPlayerID: "pl-ardi", AwardedValue: 1},
	}
	return facts
}
