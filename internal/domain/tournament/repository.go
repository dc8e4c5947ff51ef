package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	ListByStatus(ctx context.Context, status Status) ([]Tournament, error)
	// GetRoundLink resolves the tournament a round belongs to.
	GetRoundLink(ctx context.Context, roundID string) (Round, bool, error)
	// ListRounds returns tournament rounds ordered by round number.
	ListRounds(ctx context.Context, tournamentID string) ([]Round, error)
	ListPlayers(ctx context.Context, tournamentID string) ([]Player, error)
}
