package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
)

type standingKey struct {
	tournamentID string
	id           string
}

type StandingRepository struct {
	mu      sync.RWMutex
	players map[standingKey]standing.Standing
	teams   map[standingKey]standing.TeamStanding
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{
		players: make(map[standingKey]standing.Standing),
		teams:   make(map[standingKey]standing.TeamStanding),
	}
}

func (r *StandingRepository) UpsertStanding(_ context.Context, item standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[standingKey{tournamentID: item.TournamentID, id: item.PlayerID}] = item
	return nil
}

func (r *StandingRepository) UpsertTeamStanding(_ context.Context, item standing.TeamStanding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.teams[standingKey{tournamentID: item.TournamentID, id: item.TeamName}] = item
	return nil
}

func (r *StandingRepository) ListByTournament(_ context.Context, tournamentID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, 0)
	for key, item := range r.players {
		if key.tournamentID == tournamentID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *StandingRepository) ListTeamsByTournament(_ context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.TeamStanding, 0)
	for key, item := range r.teams {
		if key.tournamentID == tournamentID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out, nil
}
