package standing

import "context"

// Repository persists standings keyed by tournament and player or team.
type Repository interface {
	UpsertStanding(ctx context.Context, item Standing) error
	UpsertTeamStanding(ctx context.Context, item TeamStanding) error
	ListByTournament(ctx context.Context, tournamentID string) ([]Standing, error)
	ListTeamsByTournament(ctx context.Context, tournamentID string) ([]TeamStanding, error)
}
