package round

import "context"

// Repository exposes the round facts consumed by standings computation.
type Repository interface {
	// FilterCompleted returns the subset of roundIDs whose status is completed.
	FilterCompleted(ctx context.Context, roundIDs []string) ([]string, error)
	ListResults(ctx context.Context, roundIDs, playerIDs []string) ([]Result, error)
	ListHoleResults(ctx context.Context, roundIDs, playerIDs []string) ([]HoleResult, error)
	ListScoresByStrokes(ctx context.Context, roundIDs, playerIDs []string, strokes int) ([]Score, error)
	ListSkinsResults(ctx context.Context, roundIDs []string) ([]SkinsResult, error)
}
