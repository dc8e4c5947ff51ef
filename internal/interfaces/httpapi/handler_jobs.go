package httpapi

import (
	"net/http"

	"github.com/riskibarqy/golf-tournament/internal/usecase"
)

// RunRecalculateStandingsJob is the QStash delivery target for queued recalculations.
func (h *Handler) RunRecalculateStandingsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateStandingsJob")
	defer span.End()

	var req recalculateJobRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	payload := usecase.RecalculateJobPayload{
		TournamentID:   req.TournamentID,
		TriggerRoundID: req.TriggerRoundID,
		DispatchID:     req.DispatchID,
	}
	result, err := h.standingsService.Recalculate(ctx, usecase.RecalculationTarget{
		RoundID:      req.TriggerRoundID,
		TournamentID: req.TournamentID,
	})
	if h.dispatcher != nil {
		h.dispatcher.MarkFinished(ctx, payload, err)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "run recalculate standings job failed",
			"dispatch_id", req.DispatchID,
			"tournament_id", req.TournamentID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recalculationToDTO(result))
}

func (h *Handler) RunRecalculateActiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecalculateActiveJob")
	defer span.End()

	result, err := h.standingsService.RecalculateActive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run recalculate active job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
