package cache

import (
	"context"

	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	basecache "github.com/riskibarqy/golf-tournament/internal/platform/cache"
)

// StandingRepository caches standings reads per tournament. Any upsert for a tournament drops
// both its player and team entries.
type StandingRepository struct {
	next  standing.Repository
	cache *basecache.Store
}

func NewStandingRepository(next standing.Repository, cache *basecache.Store) *StandingRepository {
	return &StandingRepository{next: next, cache: cache}
}

func (r *StandingRepository) UpsertStanding(ctx context.Context, item standing.Standing) error {
	if err := r.next.UpsertStanding(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, standingsPrefix(item.TournamentID))
	return nil
}

func (r *StandingRepository) UpsertTeamStanding(ctx context.Context, item standing.TeamStanding) error {
	if err := r.next.UpsertTeamStanding(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, standingsPrefix(item.TournamentID))
	return nil
}

func (r *StandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]standing.Standing, error) {
	items, err := basecache.Load(ctx, r.cache, standingsPrefix(tournamentID)+"players", func(ctx context.Context) ([]standing.Standing, error) {
		items, err := r.next.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]standing.Standing(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]standing.Standing(nil), items...), nil
}

func (r *StandingRepository) ListTeamsByTournament(ctx context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	items, err := basecache.Load(ctx, r.cache, standingsPrefix(tournamentID)+"teams", func(ctx context.Context) ([]standing.TeamStanding, error) {
		items, err := r.next.ListTeamsByTournament(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]standing.TeamStanding(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]standing.TeamStanding(nil), items...), nil
}

func standingsPrefix(tournamentID string) string {
	return "standings:" + tournamentID + ":"
}
