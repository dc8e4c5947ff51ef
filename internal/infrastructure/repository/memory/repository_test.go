package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

func TestTournamentRepository_RoundsOrderedByRoundNo(t *testing.T) {
	repo := NewTournamentRepository(nil, []tournament.Round{
		{TournamentID: "t1", RoundID: "r-c", RoundNo: 3},
		{TournamentID: "t1", RoundID: "r-a", RoundNo: 1},
		{TournamentID: "t1", RoundID: "r-b", RoundNo: 2},
	}, nil)

	rounds, err := repo.ListRounds(context.Background(), "t1")
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	got := []string{rounds[0].RoundID, rounds[1].RoundID, rounds[2].RoundID}
	want := []string{"r-a", "r-b", "r-c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got=%v want=%v", got, want)
		}
	}

	link, ok, err := repo.GetRoundLink(context.Background(), "r-b")
	if err != nil || !ok || link.TournamentID != "t1" {
		t.Fatalf("unexpected round link: link=%+v ok=%v err=%v", link, ok, err)
	}
	if _, ok, _ := repo.GetRoundLink(context.Background(), "r-x"); ok {
		t.Fatalf("expected unknown round to be unlinked")
	}
}

func TestTournamentRepository_ListByStatus(t *testing.T) {
	repo := NewTournamentRepository(SeedTournaments(), SeedRounds(), SeedPlayers())

	active, err := repo.ListByStatus(context.Background(), tournament.StatusActive)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != TournamentIDSpringCup {
		t.Fatalf("unexpected active tournaments: %+v", active)
	}
}

func TestRoundRepository_FiltersByRoundAndPlayer(t *testing.T) {
	repo := NewRoundRepository(SeedRoundFacts())
	ctx := context.Background()

	completed, err := repo.FilterCompleted(ctx, []string{"rd-spring-1", "rd-spring-4", "rd-unknown"})
	if err != nil {
		t.Fatalf("filter completed: %v", err)
	}
	if len(completed) != 1 || completed[0] != "rd-spring-1" {
		t.Fatalf("unexpected completed rounds: %v", completed)
	}

	repo.SetStatus("rd-spring-4", round.StatusCompleted)
	completed, _ = repo.FilterCompleted(ctx, []string{"rd-spring-4"})
	if len(completed) != 1 {
		t.Fatalf("expected status change to be visible, got %v", completed)
	}

	results, err := repo.ListResults(ctx, []string{"rd-spring-1"}, []string{"pl-ardi", "pl-bima"})
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	aces, err := repo.ListScoresByStrokes(ctx, []string{"rd-spring-1", "rd-spring-2"}, []string{"pl-citra"}, 1)
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(aces) != 1 || aces[0].HoleNo != 8 {
		t.Fatalf("unexpected aces: %+v", aces)
	}

	skins, err := repo.ListSkinsResults(ctx, []string{"rd-spring-1"})
	if err != nil {
		t.Fatalf("list skins: %v", err)
	}
	if len(skins) != 2 {
		t.Fatalf("expected 2 skins rows, got %d", len(skins))
	}
}

func TestStandingRepository_UpsertOverwritesAndSorts(t *testing.T) {
	repo := NewStandingRepository()
	ctx := context.Background()

	for _, item := range []standing.Standing{
		{TournamentID: "t1", PlayerID: "p2", Rank: 1, TotalPoints: 90},
		{TournamentID: "t1", PlayerID: "p1", Rank: 2, TotalPoints: 80},
		{TournamentID: "t1", PlayerID: "p3", Rank: 2, TotalPoints: 80},
		{TournamentID: "t2", PlayerID: "p1", Rank: 1, TotalPoints: 10},
		{TournamentID: "t1", PlayerID: "p2", Rank: 1, TotalPoints: 95},
	} {
		if err := repo.UpsertStanding(ctx, item); err != nil {
			t.Fatalf("upsert standing: %v", err)
		}
	}

	items, err := repo.ListByTournament(ctx, "t1")
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(items))
	}
	if items[0].PlayerID != "p2" || items[0].TotalPoints != 95 {
		t.Fatalf("expected overwritten leader, got %+v", items[0])
	}
	if items[1].PlayerID != "p1" || items[2].PlayerID != "p3" {
		t.Fatalf("expected ties ordered by player id, got %s,%s", items[1].PlayerID, items[2].PlayerID)
	}

	_ = repo.UpsertTeamStanding(ctx, standing.TeamStanding{TournamentID: "t1", TeamName: "Hawks", Rank: 2})
	_ = repo.UpsertTeamStanding(ctx, standing.TeamStanding{TournamentID: "t1", TeamName: "Eagles", Rank: 1})
	teams, _ := repo.ListTeamsByTournament(ctx, "t1")
	if len(teams) != 2 || teams[0].TeamName != "Eagles" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}

func TestSeed_PointsTableCoversRoster(t *testing.T) {
	for _, item := range SeedTournaments() {
		if err := item.Validate(); err != nil {
			t.Fatalf("seed tournament %s invalid: %v", item.ID, err)
		}
	}

	spring := SeedTournaments()[0]
	if len(spring.PointsTable) != len(seedPlayers) {
		t.Fatalf("expected %d points entries, got %d", len(seedPlayers), len(spring.PointsTable))
	}
}
