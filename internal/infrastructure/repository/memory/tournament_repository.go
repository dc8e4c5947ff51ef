package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

type TournamentRepository struct {
	mu      sync.RWMutex
	items   map[string]tournament.Tournament
	orders  []string
	links   map[string]tournament.Round
	rounds  map[string][]tournament.Round
	players map[string][]tournament.Player
}

func NewTournamentRepository(tournaments []tournament.Tournament, rounds []tournament.Round, players []tournament.Player) *TournamentRepository {
	r := &TournamentRepository{
		items:   make(map[string]tournament.Tournament, len(tournaments)),
		orders:  make([]string, 0, len(tournaments)),
		links:   make(map[string]tournament.Round, len(rounds)),
		rounds:  make(map[string][]tournament.Round),
		players: make(map[string][]tournament.Player),
	}

	for _, t := range tournaments {
		if _, exists := r.items[t.ID]; !exists {
			r.orders = append(r.orders, t.ID)
		}
		r.items[t.ID] = t
	}
	for _, link := range rounds {
		r.links[link.RoundID] = link
		r.rounds[link.TournamentID] = append(r.rounds[link.TournamentID], link)
	}
	for id := range r.rounds {
		items := r.rounds[id]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].RoundNo != items[j].RoundNo {
				return items[i].RoundNo < items[j].RoundNo
			}
			return items[i].RoundID < items[j].RoundID
		})
	}
	for _, p := range players {
		r.players[p.TournamentID] = append(r.players[p.TournamentID], p)
	}

	return r
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[tournamentID]
	if !ok {
		return tournament.Tournament{}, false, nil
	}
	return t, true, nil
}

func (r *TournamentRepository) ListByStatus(_ context.Context, status tournament.Status) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.orders))
	for _, id := range r.orders {
		if t := r.items[id]; t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TournamentRepository) GetRoundLink(_ context.Context, roundID string) (tournament.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[roundID]
	return link, ok, nil
}

func (r *TournamentRepository) ListRounds(_ context.Context, tournamentID string) ([]tournament.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]tournament.Round(nil), r.rounds[tournamentID]...), nil
}

func (r *TournamentRepository) ListPlayers(_ context.Context, tournamentID string) ([]tournament.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]tournament.Player(nil), r.players[tournamentID]...), nil
}
