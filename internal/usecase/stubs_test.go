package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/jobscheduler"
	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

type stubTournamentRepository struct {
	items   map[string]tournament.Tournament
	rounds  map[string][]tournament.Round
	players map[string][]tournament.Player
}

func (s *stubTournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	item, ok := s.items[tournamentID]
	return item, ok, nil
}

func (s *stubTournamentRepository) ListByStatus(_ context.Context, status tournament.Status) ([]tournament.Tournament, error) {
	out := make([]tournament.Tournament, 0, len(s.items))
	for _, item := range s.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubTournamentRepository) GetRoundLink(_ context.Context, roundID string) (tournament.Round, bool, error) {
	for _, rounds := range s.rounds {
		for _, r := range rounds {
			if r.RoundID == roundID {
				return r, true, nil
			}
		}
	}
	return tournament.Round{}, false, nil
}

func (s *stubTournamentRepository) ListRounds(_ context.Context, tournamentID string) ([]tournament.Round, error) {
	return slices.Clone(s.rounds[tournamentID]), nil
}

func (s *stubTournamentRepository) ListPlayers(_ context.Context, tournamentID string) ([]tournament.Player, error) {
	return slices.Clone(s.players[tournamentID]), nil
}

type stubRoundRepository struct {
	completed map[string]bool
	results   []round.Result
}

func (s *stubRoundRepository) FilterCompleted(_ context.Context, roundIDs []string) ([]string, error) {
	out := make([]string, 0, len(roundIDs))
	for _, id := range roundIDs {
		if s.completed[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *stubRoundRepository) ListResults(_ context.Context, roundIDs, playerIDs []string) ([]round.Result, error) {
	out := make([]round.Result, 0, len(s.results))
	for _, res := range s.results {
		if slices.Contains(roundIDs, res.RoundID) && slices.Contains(playerIDs, res.PlayerID) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (s *stubRoundRepository) ListHoleResults(context.Context, []string, []string) ([]round.HoleResult, error) {
	return nil, nil
}

func (s *stubRoundRepository) ListScoresByStrokes(context.Context, []string, []string, int) ([]round.Score, error) {
	return nil, nil
}

func (s *stubRoundRepository) ListSkinsResults(context.Context, []string) ([]round.SkinsResult, error) {
	return nil, nil
}

type stubStandingRepository struct {
	mu    sync.Mutex
	rows  map[string]standing.Standing
	teams map[string]standing.TeamStanding
}

func newStubStandingRepository() *stubStandingRepository {
	return &stubStandingRepository{
		rows:  make(map[string]standing.Standing),
		teams: make(map[string]standing.TeamStanding),
	}
}

func (s *stubStandingRepository) UpsertStanding(_ context.Context, item standing.Standing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[item.TournamentID+"|"+item.PlayerID] = item
	return nil
}

func (s *stubStandingRepository) UpsertTeamStanding(_ context.Context, item standing.TeamStanding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[item.TournamentID+"|"+item.TeamName] = item
	return nil
}

func (s *stubStandingRepository) ListByTournament(_ context.Context, tournamentID string) ([]standing.Standing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]standing.Standing, 0, len(s.rows))
	for _, item := range s.rows {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubStandingRepository) ListTeamsByTournament(_ context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]standing.TeamStanding, 0, len(s.teams))
	for _, item := range s.teams {
		if item.TournamentID == tournamentID {
			out = append(out, item)
		}
	}
	return out, nil
}

type queuedJob struct {
	path    string
	payload any
	delay   time.Duration
	dedupID string
}

type stubJobQueue struct {
	mu   sync.Mutex
	jobs []queuedJob
	err  error
}

func (q *stubJobQueue) Enqueue(_ context.Context, path string, payload any, delay time.Duration, dedupID string) error {
	if q.err != nil {
		return q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, queuedJob{path: path, payload: payload, delay: delay, dedupID: dedupID})
	return nil
}

type stubResolver struct {
	tournamentID string
}

func (r stubResolver) ResolveTournamentID(_ context.Context, target RecalculationTarget) (string, error) {
	if target.RoundID == "" && target.TournamentID == "" {
		return "", errors.Join(ErrInvalidInput, errors.New("empty target"))
	}
	return r.tournamentID, nil
}

var _ jobscheduler.Repository = (*stubDispatchRepository)(nil)

type stubDispatchRepository struct {
	events []jobscheduler.DispatchEvent
}

func (s *stubDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	s.events = append(s.events, event)
	return nil
}
