package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/golf-tournament/internal/usecase"
)

func (h *Handler) ListStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStandings")
	defer span.End()

	tournamentID := pathID(r, "tournamentID")
	items, err := h.queryService.ListStandings(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list standings failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(items))
}

func (h *Handler) ListTeamStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamStandings")
	defer span.End()

	tournamentID := pathID(r, "tournamentID")
	items, err := h.queryService.ListTeamStandings(ctx, tournamentID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team standings failed", "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStandingsToDTO(items))
}

// RecalculateStandings recomputes synchronously, or queues a job when async is set.
func (h *Handler) RecalculateStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateStandings")
	defer span.End()

	var req recalculateRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var userID string
	if principal, ok := principalFromContext(ctx); ok {
		userID = principal.UserID
	}
	target := usecase.RecalculationTarget{RoundID: req.RoundID, TournamentID: req.TournamentID}

	if req.Async {
		if h.dispatcher == nil {
			writeError(ctx, w, fmt.Errorf("%w: recalculation queue is not configured", usecase.ErrDependencyUnavailable))
			return
		}
		dispatch, err := h.dispatcher.Enqueue(ctx, target)
		if err != nil {
			h.logger.WarnContext(ctx, "enqueue recalculation failed",
				"round_id", req.RoundID,
				"tournament_id", req.TournamentID,
				"user_id", userID,
				"error", err,
			)
			writeError(ctx, w, err)
			return
		}
		h.logger.InfoContext(ctx, "recalculation queued",
			"dispatch_id", dispatch.DispatchID,
			"tournament_id", dispatch.TournamentID,
			"user_id", userID,
		)
		writeSuccess(ctx, w, http.StatusAccepted, dispatch)
		return
	}

	result, err := h.standingsService.Recalculate(ctx, target)
	if err != nil {
		h.logger.WarnContext(ctx, "recalculate standings failed",
			"round_id", req.RoundID,
			"tournament_id", req.TournamentID,
			"user_id", userID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recalculationToDTO(result))
}
