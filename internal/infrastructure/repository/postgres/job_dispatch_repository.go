package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/golf-tournament/internal/domain/jobscheduler"
	qb "github.com/riskibarqy/golf-tournament/internal/platform/querybuilder"
)

// jobDispatchConflictClause keeps the timestamps and trace ids of earlier states and overwrites
// only the columns that belong to the incoming status.
var jobDispatchConflictClause = buildJobDispatchConflictClause()

type JobDispatchRepository struct {
	db *sqlx.DB
}

func NewJobDispatchRepository(db *sqlx.DB) *JobDispatchRepository {
	return &JobDispatchRepository{db: db}
}

func (r *JobDispatchRepository) UpsertEvent(ctx context.Context, event jobscheduler.DispatchEvent) error {
	model, err := newJobDispatchModel(event)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("job_dispatches", model, jobDispatchConflictClause)
	if err != nil {
		return fmt.Errorf("build upsert job dispatch query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert job dispatch dispatch_id=%s status=%s: %w", model.DispatchID, event.Status, err)
	}
	return nil
}

func newJobDispatchModel(event jobscheduler.DispatchEvent) (jobDispatchInsertModel, error) {
	dispatchID := strings.TrimSpace(event.DispatchID)
	if dispatchID == "" {
		return jobDispatchInsertModel{}, fmt.Errorf("dispatch id is required")
	}

	payload, err := marshalPayload(event.Payload)
	if err != nil {
		return jobDispatchInsertModel{}, fmt.Errorf("marshal job dispatch payload: %w", err)
	}

	occurredAt := event.OccurredAt.UTC()
	if event.OccurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	model := jobDispatchInsertModel{
		DispatchID:   dispatchID,
		JobName:      valueOr(event.JobName, "unknown"),
		JobPath:      valueOr(event.JobPath, "/unknown"),
		TournamentID: valueOr(event.TournamentID, "unknown"),
		Payload:      payload,
		Status:       string(event.Status),
	}

	traceID := optionalString(event.TraceID)
	spanID := optionalString(event.SpanID)
	switch event.Status {
	case jobscheduler.StatusSent:
		model.SentAt, model.SentTraceID, model.SentSpanID = &occurredAt, traceID, spanID
	case jobscheduler.StatusCompleted:
		model.CompletedAt, model.CompletedTraceID, model.CompletedSpanID = &occurredAt, traceID, spanID
	case jobscheduler.StatusFailed:
		model.FailedAt, model.FailedTraceID, model.FailedSpanID = &occurredAt, traceID, spanID
		model.LastError = optionalString(event.ErrorMessage)
	default:
		return jobDispatchInsertModel{}, fmt.Errorf("unsupported dispatch status %q", event.Status)
	}
	return model, nil
}

func buildJobDispatchConflictClause() string {
	var b strings.Builder
	b.WriteString("ON CONFLICT (dispatch_id) DO UPDATE SET\n")
	b.WriteString("    job_name = EXCLUDED.job_name,\n")
	b.WriteString("    job_path = EXCLUDED.job_path,\n")
	b.WriteString("    tournament_id = EXCLUDED.tournament_id,\n")
	b.WriteString("    payload = EXCLUDED.payload,\n")
	b.WriteString("    status = EXCLUDED.status,\n")
	b.WriteString("    updated_at = NOW(),\n")
	b.WriteString("    last_error = CASE WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.last_error ELSE NULL END")

	for _, status := range []string{"sent", "completed", "failed"} {
		for _, column := range []string{status + "_at", status + "_trace_id", status + "_span_id"} {
			fmt.Fprintf(&b, ",\n    %[1]s = CASE WHEN EXCLUDED.status = '%[2]s' THEN EXCLUDED.%[1]s ELSE job_dispatches.%[1]s END", column, status)
		}
	}
	return b.String()
}

func marshalPayload(payload map[string]any) (string, error) {
	if len(payload) == 0 {
		return "{}", nil
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func valueOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
