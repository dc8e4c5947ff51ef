package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

const (
	batchStatusUpdated = "updated"
	batchStatusSkipped = "skipped"
	batchStatusFailed  = "failed"
)

type BatchItemResult struct {
	TournamentID string `json:"tournament_id"`
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	Players      int    `json:"players"`
	FailedRows   int    `json:"failed_rows"`
	DurationMs   int64  `json:"duration_ms"`
}

type BatchResult struct {
	TournamentCount int               `json:"tournament_count"`
	WorkerCount     int               `json:"worker_count"`
	UpdatedCount    int               `json:"updated_count"`
	SkippedCount    int               `json:"skipped_count"`
	FailedCount     int               `json:"failed_count"`
	Items           []BatchItemResult `json:"items"`
}

// RecalculateActive recomputes every active tournament on a bounded worker pool. A failing tournament
// is reported in its item and does not stop the others.
func (s *StandingsService) RecalculateActive(ctx context.Context) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RecalculateActive")
	defer span.End()

	items, err := s.tournamentRepo.ListByStatus(ctx, tournament.StatusActive)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list active tournaments: %w", err)
	}

	workerCount := min(s.cfg.BatchWorkers, len(items))
	result := BatchResult{
		TournamentCount: len(items),
		WorkerCount:     workerCount,
		Items:           make([]BatchItemResult, 0, len(items)),
	}
	if len(items) == 0 {
		return result, nil
	}

	results := make(chan BatchItemResult, len(items))

	var updatedCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			start := time.Now()
			row := BatchItemResult{TournamentID: item.ID}

			out, err := s.RecalculateByTournament(ctx, item.ID)
			switch {
			case err != nil:
				row.Status = batchStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				if !isClientError(err) {
					s.logger.WarnContext(ctx, "batch recalculation failed", "tournament_id", item.ID, "error", err)
				}
			case out.IsNoop():
				row.Status = batchStatusSkipped
				row.Message = out.Message
				skippedCount.Add(1)
			default:
				row.Status = batchStatusUpdated
				row.Players = len(out.Standings)
				row.FailedRows = len(out.FailedRows)
				updatedCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()

			results <- row
		}); err != nil {
			wg.Done()
			return BatchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	wg.Wait()
	close(results)

	for row := range results {
		result.Items = append(result.Items, row)
	}
	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].TournamentID < result.Items[j].TournamentID
	})

	result.UpdatedCount = int(updatedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}
