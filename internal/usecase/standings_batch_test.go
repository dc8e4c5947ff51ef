package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	gocmp "github.com/google/go-cmp/cmp"

	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

func batchFixture() (*stubTournamentRepository, *stubRoundRepository) {
	table := tournament.GeneratePointsTable(4)
	tournaments := &stubTournamentRepository{
		items: map[string]tournament.Tournament{
			"t-live":    {ID: "t-live", PointsTable: table, Status: tournament.StatusActive},
			"t-empty":   {ID: "t-empty", PointsTable: table, Status: tournament.StatusActive},
			"t-broken":  {ID: "t-broken", AggregationRule: "median", Status: tournament.StatusActive},
			"t-archive": {ID: "t-archive", PointsTable: table, Status: tournament.StatusCompleted},
		},
		rounds: map[string][]tournament.Round{
			"t-live":  {{TournamentID: "t-live", RoundID: "live-1", RoundNo: 1}},
			"t-empty": {{TournamentID: "t-empty", RoundID: "empty-1", RoundNo: 1}},
		},
		players: map[string][]tournament.Player{
			"t-live": {
				{TournamentID: "t-live", PlayerID: "p1", TeamName: "Reds"},
				{TournamentID: "t-live", PlayerID: "p2", TeamName: "Blues"},
				{TournamentID: "t-live", PlayerID: "p3"},
			},
		},
	}
	rounds := &stubRoundRepository{
		completed: map[string]bool{"live-1": true},
		results: []round.Result{
			{RoundID: "live-1", PlayerID: "p1", StablefordTotal: 36},
			{RoundID: "live-1", PlayerID: "p2", StablefordTotal: 31},
		},
	}
	return tournaments, rounds
}

func TestStandingsService_RecalculateActive(t *testing.T) {
	t.Parallel()

	tournaments, rounds := batchFixture()
	standings := newStubStandingRepository()
	service := NewStandingsService(tournaments, rounds, standings, StandingsConfig{BatchWorkers: 2}, nil)

	got, err := service.RecalculateActive(context.Background())
	if err != nil {
		t.Fatalf("RecalculateActive error: %v", err)
	}

	if got.TournamentCount != 3 || got.WorkerCount != 2 {
		t.Fatalf("unexpected batch shape: %+v", got)
	}
	if got.UpdatedCount != 1 || got.SkippedCount != 1 || got.FailedCount != 1 {
		t.Fatalf("unexpected batch counters: %+v", got)
	}

	statuses := make([]string, 0, len(got.Items))
	for _, item := range got.Items {
		statuses = append(statuses, item.TournamentID+":"+item.Status)
	}
	want := []string{"t-broken:failed", "t-empty:skipped", "t-live:updated"}
	if diff := gocmp.Diff(want, statuses); diff != "" {
		t.Fatalf("batch items mismatch (-want +got):\n%s", diff)
	}

	rows, _ := standings.ListByTournament(context.Background(), "t-empty")
	if len(rows) != 0 {
		t.Fatalf("tournament without completed rounds must not be written, got %d rows", len(rows))
	}
	rows, _ = standings.ListByTournament(context.Background(), "t-live")
	if len(rows) != 3 {
		t.Fatalf("expected every roster player stored, got %d rows", len(rows))
	}
}

func TestStandingsService_RecalculateActive_NoTournaments(t *testing.T) {
	t.Parallel()

	service := NewStandingsService(&stubTournamentRepository{}, &stubRoundRepository{}, newStubStandingRepository(), StandingsConfig{}, nil)
	got, err := service.RecalculateActive(context.Background())
	if err != nil {
		t.Fatalf("RecalculateActive error: %v", err)
	}
	if got.TournamentCount != 0 || len(got.Items) != 0 {
		t.Fatalf("expected empty batch, got %+v", got)
	}
}

func TestStandingsService_RecalculateIsIdempotent(t *testing.T) {
	t.Parallel()

	tournaments, rounds := batchFixture()
	standings := newStubStandingRepository()
	service := NewStandingsService(tournaments, rounds, standings, StandingsConfig{}, nil).
		WithClock(func() time.Time { return fixedNow })

	snapshot := func() ([]standing.Standing, []standing.TeamStanding) {
		rows, _ := standings.ListByTournament(context.Background(), "t-live")
		teams, _ := standings.ListTeamsByTournament(context.Background(), "t-live")
		sort.Slice(rows, func(i, j int) bool { return rows[i].PlayerID < rows[j].PlayerID })
		sort.Slice(teams, func(i, j int) bool { return teams[i].TeamName < teams[j].TeamName })
		return rows, teams
	}

	if _, err := service.Recalculate(context.Background(), RecalculationTarget{RoundID: "live-1"}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstRows, firstTeams := snapshot()

	if _, err := service.Recalculate(context.Background(), RecalculationTarget{TournamentID: "t-live"}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	secondRows, secondTeams := snapshot()

	if diff := gocmp.Diff(firstRows, secondRows); diff != "" {
		t.Fatalf("standings changed between runs (-first +second):\n%s", diff)
	}
	if diff := gocmp.Diff(firstTeams, secondTeams); diff != "" {
		t.Fatalf("team standings changed between runs (-first +second):\n%s", diff)
	}
	if len(firstRows) != 3 || len(firstTeams) != 2 {
		t.Fatalf("unexpected row counts: standings=%d teams=%d", len(firstRows), len(firstTeams))
	}
}
