package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/jobscheduler"
	"github.com/stretchr/testify/require"
)

func TestNewJobDispatchModel_StampsColumnsOfIncomingStatus(t *testing.T) {
	at := time.Date(2026, time.March, 7, 9, 30, 0, 0, time.FixedZone("WIB", 7*3600))

	model, err := newJobDispatchModel(jobscheduler.DispatchEvent{
		DispatchID:   " dispatch-1 ",
		JobName:      "recalculate-standings",
		TournamentID: "spring-cup",
		Status:       jobscheduler.StatusFailed,
		Payload:      map[string]any{"tournament_id": "spring-cup"},
		ErrorMessage: "timeout",
		OccurredAt:   at,
		TraceID:      "trace-1",
	})
	require.NoError(t, err)

	require.Equal(t, "dispatch-1", model.DispatchID)
	require.Equal(t, "/unknown", model.JobPath)
	require.Equal(t, `{"tournament_id":"spring-cup"}`, model.Payload)
	require.NotNil(t, model.FailedAt)
	require.True(t, model.FailedAt.Equal(at))
	require.Equal(t, time.UTC, model.FailedAt.Location())
	require.Equal(t, "trace-1", *model.FailedTraceID)
	require.Nil(t, model.FailedSpanID)
	require.Equal(t, "timeout", *model.LastError)
	require.Nil(t, model.SentAt)
	require.Nil(t, model.CompletedAt)
}

func TestNewJobDispatchModel_ClearsErrorOutsideFailure(t *testing.T) {
	model, err := newJobDispatchModel(jobscheduler.DispatchEvent{
		DispatchID:   "dispatch-2",
		Status:       jobscheduler.StatusCompleted,
		ErrorMessage: "stale",
	})
	require.NoError(t, err)
	require.Nil(t, model.LastError)
	require.NotNil(t, model.CompletedAt)
	require.Equal(t, "unknown", model.TournamentID)
	require.Equal(t, "{}", model.Payload)
}

func TestNewJobDispatchModel_RejectsInvalidInput(t *testing.T) {
	_, err := newJobDispatchModel(jobscheduler.DispatchEvent{Status: jobscheduler.StatusSent})
	require.ErrorContains(t, err, "dispatch id is required")

	_, err = newJobDispatchModel(jobscheduler.DispatchEvent{DispatchID: "d", Status: "queued"})
	require.ErrorContains(t, err, "unsupported dispatch status")
}

func TestJobDispatchConflictClause_PreservesOtherStates(t *testing.T) {
	clause := jobDispatchConflictClause

	require.True(t, strings.HasPrefix(clause, "ON CONFLICT (dispatch_id) DO UPDATE SET"))
	require.Contains(t, clause, "sent_at = CASE WHEN EXCLUDED.status = 'sent' THEN EXCLUDED.sent_at ELSE job_dispatches.sent_at END")
	require.Contains(t, clause, "failed_span_id = CASE WHEN EXCLUDED.status = 'failed' THEN EXCLUDED.failed_span_id ELSE job_dispatches.failed_span_id END")
	require.NotContains(t, clause, "deleted_at")
}
