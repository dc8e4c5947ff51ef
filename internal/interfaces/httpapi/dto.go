package httpapi

import (
	"time"

	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/usecase"
)

type recalculateRequest struct {
	RoundID      string `json:"round_id" validate:"required_without=TournamentID,max=128"`
	TournamentID string `json:"tournament_id" validate:"required_without=RoundID,max=128"`
	Async        bool   `json:"async"`
}

type recalculateJobRequest struct {
	TournamentID   string `json:"tournament_id" validate:"required,max=128"`
	TriggerRoundID string `json:"trigger_round_id" validate:"omitempty,max=128"`
	DispatchID     string `json:"dispatch_id" validate:"omitempty,max=256"`
}

type standingDTO struct {
	TournamentID    string  `json:"tournament_id"`
	PlayerID        string  `json:"player_id"`
	TeamName        string  `json:"team_name,omitempty"`
	SeasonPoints    float64 `json:"season_points"`
	BonusPoints     float64 `json:"bonus_points"`
	TotalPoints     float64 `json:"total_points"`
	RoundsPlayed    int     `json:"rounds_played"`
	RoundsWon       int     `json:"rounds_won"`
	StablefordTotal int     `json:"stableford_total"`
	SkinsTotalValue float64 `json:"skins_total_value"`
	Rank            int     `json:"rank"`
	LastUpdated     string  `json:"last_updated"`
}

type teamStandingDTO struct {
	TournamentID string  `json:"tournament_id"`
	TeamName     string  `json:"team_name"`
	SeasonPoints float64 `json:"season_points"`
	BonusPoints  float64 `json:"bonus_points"`
	TotalPoints  float64 `json:"total_points"`
	RoundsPlayed int     `json:"rounds_played"`
	Rank         int     `json:"rank"`
	LastUpdated  string  `json:"last_updated"`
}

type failedRowDTO struct {
	PlayerID string `json:"player_id,omitempty"`
	TeamName string `json:"team_name,omitempty"`
	Error    string `json:"error"`
}

type recalculationDTO struct {
	TournamentID   string            `json:"tournament_id"`
	TriggerRoundID string            `json:"trigger_round_id,omitempty"`
	Status         string            `json:"status"`
	Message        string            `json:"message"`
	RoundsCounted  int               `json:"rounds_counted"`
	Standings      []standingDTO     `json:"standings"`
	Teams          []teamStandingDTO `json:"teams"`
	FailedRows     []failedRowDTO    `json:"failed_rows,omitempty"`
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func standingsToDTO(items []standing.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		out = append(out, standingDTO{
			TournamentID:    s.TournamentID,
			PlayerID:        s.PlayerID,
			TeamName:        s.TeamName,
			SeasonPoints:    s.SeasonPoints,
			BonusPoints:     s.BonusPoints,
			TotalPoints:     s.TotalPoints,
			RoundsPlayed:    s.RoundsPlayed,
			RoundsWon:       s.RoundsWon,
			StablefordTotal: s.StablefordTotal,
			SkinsTotalValue: s.SkinsTotalValue,
			Rank:            s.Rank,
			LastUpdated:     formatTimestamp(s.LastUpdated),
		})
	}
	return out
}

func teamStandingsToDTO(items []standing.TeamStanding) []teamStandingDTO {
	out := make([]teamStandingDTO, 0, len(items))
	for _, t := range items {
		out = append(out, teamStandingDTO{
			TournamentID: t.TournamentID,
			TeamName:     t.TeamName,
			SeasonPoints: t.SeasonPoints,
			BonusPoints:  t.BonusPoints,
			TotalPoints:  t.TotalPoints,
			RoundsPlayed: t.RoundsPlayed,
			Rank:         t.Rank,
			LastUpdated:  formatTimestamp(t.LastUpdated),
		})
	}
	return out
}

func recalculationToDTO(result usecase.RecalculationResult) recalculationDTO {
	out := recalculationDTO{
		TournamentID:   result.TournamentID,
		TriggerRoundID: result.TriggerRoundID,
		Status:         string(result.Status),
		Message:        result.Message,
		RoundsCounted:  result.RoundsCounted,
		Standings:      standingsToDTO(result.Standings),
		Teams:          teamStandingsToDTO(result.Teams),
	}
	for _, row := range result.FailedRows {
		out.FailedRows = append(out.FailedRows, failedRowDTO{
			PlayerID: row.PlayerID,
			TeamName: row.TeamName,
			Error:    row.Error,
		})
	}
	return out
}
