package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/jobscheduler"
	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
)

const (
	RecalculateStandingsJobName = "recalculate-standings"
	RecalculateStandingsJobPath = "/v1/internal/jobs/recalculate-standings"
)

type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

// TournamentResolver maps a recalculation target to its tournament id.
type TournamentResolver interface {
	ResolveTournamentID(ctx context.Context, target RecalculationTarget) (string, error)
}

type DispatcherConfig struct {
	// DedupWindow buckets requests for the same tournament into one queued job.
	DedupWindow time.Duration
	Delay       time.Duration
}

type DispatchResult struct {
	DispatchID   string `json:"dispatch_id"`
	TournamentID string `json:"tournament_id"`
	JobPath      string `json:"job_path"`
	Queued       bool   `json:"queued"`
}

// RecalculateJobPayload is the body delivered to the internal recalculation job.
type RecalculateJobPayload struct {
	TournamentID   string `json:"tournament_id"`
	TriggerRoundID string `json:"trigger_round_id,omitempty"`
	DispatchID     string `json:"dispatch_id"`
}

// RecalculationDispatcher queues standings recalculation for asynchronous execution.
type RecalculationDispatcher struct {
	resolver     TournamentResolver
	queue        JobQueue
	dispatchRepo jobscheduler.Repository
	cfg          DispatcherConfig
	logger       *logging.Logger
	now          func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewRecalculationDispatcher(
	resolver TournamentResolver,
	queue JobQueue,
	dispatchRepo jobscheduler.Repository,
	cfg DispatcherConfig,
	logger *logging.Logger,
) *RecalculationDispatcher {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DedupWindow <= 0 {
		cfg.DedupWindow = 30 * time.Second
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}

	return &RecalculationDispatcher{
		resolver:     resolver,
		queue:        queue,
		dispatchRepo: dispatchRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (d *RecalculationDispatcher) Enqueue(ctx context.Context, target RecalculationTarget) (DispatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationDispatcher.Enqueue")
	defer span.End()

	tournamentID, err := d.resolver.ResolveTournamentID(ctx, target)
	if err != nil {
		return DispatchResult{}, err
	}

	now := d.now().UTC()
	dispatchID := dedupKey(RecalculateStandingsJobName, tournamentID, now.Add(d.cfg.Delay), d.cfg.DedupWindow)
	payload := RecalculateJobPayload{
		TournamentID:   tournamentID,
		TriggerRoundID: strings.TrimSpace(target.RoundID),
		DispatchID:     dispatchID,
	}
	event := jobscheduler.DispatchEvent{
		DispatchID:   dispatchID,
		JobName:      RecalculateStandingsJobName,
		JobPath:      RecalculateStandingsJobPath,
		TournamentID: tournamentID,
		Payload: map[string]any{
			"tournament_id":    payload.TournamentID,
			"trigger_round_id": payload.TriggerRoundID,
			"dispatch_id":      payload.DispatchID,
		},
		OccurredAt: now,
	}

	if err := d.queue.Enqueue(ctx, RecalculateStandingsJobPath, payload, d.cfg.Delay, dispatchID); err != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = err.Error()
		d.recordDispatchEvent(ctx, event)
		return DispatchResult{}, fmt.Errorf("%w: enqueue %s tournament=%s: %w", ErrDependencyUnavailable, RecalculateStandingsJobName, tournamentID, err)
	}
	event.Status = jobscheduler.StatusSent
	d.recordDispatchEvent(ctx, event)

	return DispatchResult{
		DispatchID:   dispatchID,
		TournamentID: tournamentID,
		JobPath:      RecalculateStandingsJobPath,
		Queued:       true,
	}, nil
}

// MarkFinished records the outcome of a delivered job. Blank dispatch ids are ignored.
func (d *RecalculationDispatcher) MarkFinished(ctx context.Context, payload RecalculateJobPayload, jobErr error) {
	event := jobscheduler.DispatchEvent{
		DispatchID:   strings.TrimSpace(payload.DispatchID),
		JobName:      RecalculateStandingsJobName,
		JobPath:      RecalculateStandingsJobPath,
		TournamentID: payload.TournamentID,
		Status:       jobscheduler.StatusCompleted,
		OccurredAt:   d.now().UTC(),
	}
	if jobErr != nil {
		event.Status = jobscheduler.StatusFailed
		event.ErrorMessage = jobErr.Error()
	}
	d.recordDispatchEvent(ctx, event)
}

func (d *RecalculationDispatcher) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if d.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = d.now().UTC()
	}
	if err := d.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		d.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func dedupKey(prefix, tournamentID string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	return sanitizeDedupSegment(prefix) + "-" + sanitizeDedupSegment(tournamentID) + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}
