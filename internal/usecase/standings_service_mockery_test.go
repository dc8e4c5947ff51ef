package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
	roundmock "github.com/riskibarqy/golf-tournament/internal/mocks/domain/round"
	standingmock "github.com/riskibarqy/golf-tournament/internal/mocks/domain/standing"
	tournamentmock "github.com/riskibarqy/golf-tournament/internal/mocks/domain/tournament"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.April, 11, 18, 0, 0, 0, time.UTC)

type standingsMocks struct {
	tournaments *tournamentmock.Repository
	rounds      *roundmock.Repository
	standings   *standingmock.Repository
	service     *StandingsService
}

func newStandingsMocks(t *testing.T) standingsMocks {
	t.Helper()

	m := standingsMocks{
		tournaments: tournamentmock.NewRepository(t),
		rounds:      roundmock.NewRepository(t),
		standings:   standingmock.NewRepository(t),
	}
	m.service = NewStandingsService(m.tournaments, m.rounds, m.standings, StandingsConfig{}, nil).
		WithClock(func() time.Time { return fixedNow })
	return m
}

func eagleTournament() tournament.Tournament {
	return tournament.Tournament{
		ID:              "spring-cup",
		AggregationRule: tournament.AggregationSum,
		PointsTable: []tournament.PointsTableEntry{
			{Rank: 1, Points: 100},
			{Rank: 2, Points: 60},
			{Rank: 3, Points: 40},
		},
		BonusConfig: tournament.BonusConfig{tournament.BonusEagle: 5},
		Status:      tournament.StatusActive,
	}
}

func TestStandingsService_RecalculateByRound_EmptyRoundID(t *testing.T) {
	t.Parallel()

	m := newStandingsMocks(t)
	_, err := m.service.RecalculateByRound(context.Background(), "  ")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStandingsService_RecalculateByRound_RoundNotLinkedUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newStandingsMocks(t)
	m.tournaments.
		On("GetRoundLink", mock.Anything, "round-x").
		Return(tournament.Round{}, false, nil).
		Once()

	_, err := m.service.RecalculateByRound(ctx, "round-x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	require.Contains(t, err.Error(), "round is not part of a tournament")
}

func TestStandingsService_RecalculateByTournament_NoCompletedRoundsWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newStandingsMocks(t)
	item := eagleTournament()

	m.tournaments.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Once()
	m.tournaments.
		On("ListRounds", mock.Anything, item.ID).
		Return([]tournament.Round{{TournamentID: item.ID, RoundID: "r1", RoundNo: 1}}, nil).
		Once()
	m.rounds.On("FilterCompleted", mock.Anything, []string{"r1"}).Return([]string{}, nil).Once()

	got, err := m.service.RecalculateByTournament(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, got.IsNoop())
	require.Equal(t, StatusNoCompletedRounds, got.Status)
	require.Empty(t, got.Standings)
}

func TestStandingsService_RecalculateByRound_PublishesAndToleratesRowFailuresUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newStandingsMocks(t)
	item := eagleTournament()

	m.tournaments.
		On("GetRoundLink", mock.Anything, "r2").
		Return(tournament.Round{TournamentID: item.ID, RoundID: "r2", RoundNo: 2}, true, nil).
		Once()
	m.tournaments.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Once()
	m.tournaments.
		On("ListRounds", mock.Anything, item.ID).
		Return([]tournament.Round{
			{TournamentID: item.ID, RoundID: "r1", RoundNo: 1},
			{TournamentID: item.ID, RoundID: "r2", RoundNo: 2},
			{TournamentID: item.ID, RoundID: "r3", RoundNo: 3},
		}, nil).
		Once()
	// Completion order from storage does not decide round order.
	m.rounds.On("FilterCompleted", mock.Anything, []string{"r1", "r2", "r3"}).Return([]string{"r2", "r1"}, nil).Once()
	m.tournaments.
		On("ListPlayers", mock.Anything, item.ID).
		Return([]tournament.Player{
			{TournamentID: item.ID, PlayerID: "A", TeamName: "North"},
			{TournamentID: item.ID, PlayerID: "B", TeamName: "South"},
			{TournamentID: item.ID, PlayerID: "C", TeamName: "North"},
		}, nil).
		Once()
	m.rounds.
		On("ListResults", mock.Anything, []string{"r1", "r2"}, []string{"A", "B", "C"}).
		Return([]round.Result{
			{RoundID: "r1", PlayerID: "A", StablefordTotal: 40},
			{RoundID: "r1", PlayerID: "B", StablefordTotal: 40},
			{RoundID: "r1", PlayerID: "C", StablefordTotal: 38},
			{RoundID: "r2", PlayerID: "A", StablefordTotal: 36},
			{RoundID: "r2", PlayerID: "B", StablefordTotal: 38},
			{RoundID: "r2", PlayerID: "C", StablefordTotal: 40},
		}, nil).
		Once()
	m.rounds.
		On("ListSkinsResults", mock.Anything, []string{"r1", "r2"}).
		Return([]round.SkinsResult{{RoundID: "r1", HoleNo: 3, WinnerPlayerID: "C", AwardedValue: 2.5}}, nil).
		Once()
	m.rounds.
		On("ListHoleResults", mock.Anything, []string{"r1", "r2"}, []string{"A", "B", "C"}).
		Return([]round.HoleResult{
			{RoundID: "r1", PlayerID: "A", HoleNo: 7, Par: 4, NetStrokes: 2},
			{RoundID: "r2", PlayerID: "A", HoleNo: 8, Par: 4, NetStrokes: 3},
		}, nil).
		Once()

	upserted := make(map[string]standing.Standing)
	m.standings.
		On("UpsertStanding", mock.Anything, mock.MatchedBy(func(s standing.Standing) bool { return s.PlayerID == "C" })).
		Return(errors.New("connection reset")).
		Once()
	m.standings.
		On("UpsertStanding", mock.Anything, mock.MatchedBy(func(s standing.Standing) bool { return s.PlayerID != "C" })).
		Run(func(args mock.Arguments) {
			s := args.Get(1).(standing.Standing)
			upserted[s.PlayerID] = s
		}).
		Return(nil).
		Times(2)
	m.standings.On("UpsertTeamStanding", mock.Anything, mock.AnythingOfType("standing.TeamStanding")).Return(nil).Times(2)

	got, err := m.service.RecalculateByRound(ctx, "r2")
	require.NoError(t, err)
	require.Equal(t, StatusUpdated, got.Status)
	require.Equal(t, "r2", got.TriggerRoundID)
	require.Equal(t, 2, got.RoundsCounted)
	require.Equal(t, []FailedRow{{PlayerID: "C", Error: "connection reset"}}, got.FailedRows)

	a := upserted["A"]
	require.Equal(t, 145.0, a.TotalPoints)
	require.Equal(t, 5.0, a.BonusPoints)
	require.Equal(t, 2, a.Rank)
	require.Equal(t, fixedNow, a.LastUpdated)
	require.Equal(t, 1, upserted["B"].Rank)

	require.Len(t, got.Teams, 2)
	require.Equal(t, "North", got.Teams[0].TeamName)
	require.Equal(t, 285.0, got.Teams[0].TotalPoints)
	require.Equal(t, 280.0, got.Teams[0].SeasonPoints)
	require.Equal(t, 2.5, got.Standings[2].SkinsTotalValue)
}

func TestStandingsService_RecalculateByTournament_FetchFailureAbortsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newStandingsMocks(t)
	item := eagleTournament()
	item.BonusConfig[tournament.BonusHoleInOne] = 20

	m.tournaments.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Once()
	m.tournaments.
		On("ListRounds", mock.Anything, item.ID).
		Return([]tournament.Round{{TournamentID: item.ID, RoundID: "r1", RoundNo: 1}}, nil).
		Once()
	m.rounds.On("FilterCompleted", mock.Anything, []string{"r1"}).Return([]string{"r1"}, nil).Once()
	m.tournaments.
		On("ListPlayers", mock.Anything, item.ID).
		Return([]tournament.Player{{TournamentID: item.ID, PlayerID: "A"}}, nil).
		Once()
	m.rounds.
		On("ListResults", mock.Anything, []string{"r1"}, []string{"A"}).
		Return([]round.Result{{RoundID: "r1", PlayerID: "A", StablefordTotal: 30}}, nil).
		Once()
	m.rounds.On("ListSkinsResults", mock.Anything, []string{"r1"}).Return(nil, errors.New("timeout")).Once()
	m.rounds.On("ListHoleResults", mock.Anything, []string{"r1"}, []string{"A"}).Return([]round.HoleResult{}, nil).Maybe()
	m.rounds.On("ListScoresByStrokes", mock.Anything, []string{"r1"}, []string{"A"}, 1).Return([]round.Score{}, nil).Maybe()

	_, err := m.service.RecalculateByTournament(ctx, item.ID)
	require.ErrorContains(t, err, "list skins results: timeout")
	m.standings.AssertNotCalled(t, "UpsertStanding", mock.Anything, mock.Anything)
}

func TestStandingsService_RecalculateByTournament_InvalidConfigUsingMockery(t *testing.T) {
	t.Parallel()

	m := newStandingsMocks(t)
	item := eagleTournament()
	item.AggregationRule = "median"
	m.tournaments.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Once()

	_, err := m.service.RecalculateByTournament(context.Background(), item.ID)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, tournament.ErrInvalidAggregationRule) {
		t.Fatalf("expected invalid aggregation rule input error, got %v", err)
	}
}

func TestStandingsService_RecalculateByTournament_ListRoundsFailure(t *testing.T) {
	t.Parallel()

	m := newStandingsMocks(t)
	item := eagleTournament()
	m.tournaments.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Once()
	m.tournaments.On("ListRounds", mock.Anything, item.ID).Return(nil, errors.New("db down")).Once()

	_, err := m.service.RecalculateByTournament(context.Background(), item.ID)
	require.ErrorContains(t, err, "list tournament rounds: db down")
}

type recordedSample struct {
	status     string
	failedRows int
}

type recordingObserver struct {
	samples []recordedSample
}

func (o *recordingObserver) ObserveRecalculation(status string, failedRows int, _ time.Duration) {
	o.samples = append(o.samples, recordedSample{status: status, failedRows: failedRows})
}

func TestStandingsService_ObserverReceivesOutcome(t *testing.T) {
	t.Parallel()

	m := newStandingsMocks(t)
	observer := &recordingObserver{}
	m.service.WithObserver(observer)

	item := eagleTournament()
	m.tournaments.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Twice()
	m.tournaments.
		On("ListRounds", mock.Anything, item.ID).
		Return([]tournament.Round{{TournamentID: item.ID, RoundID: "r1", RoundNo: 1}}, nil).
		Once()
	m.rounds.On("FilterCompleted", mock.Anything, []string{"r1"}).Return([]string{}, nil).Once()
	m.tournaments.On("ListRounds", mock.Anything, item.ID).Return(nil, errors.New("db down")).Once()

	_, err := m.service.RecalculateByTournament(context.Background(), item.ID)
	require.NoError(t, err)
	_, err = m.service.RecalculateByTournament(context.Background(), item.ID)
	require.Error(t, err)

	require.Equal(t, []recordedSample{
		{status: string(StatusNoCompletedRounds)},
		{status: "failed"},
	}, observer.samples)
}
