package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	qb "github.com/riskibarqy/golf-tournament/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) UpsertStanding(ctx context.Context, item standing.Standing) error {
	model := standingUpsertModel{
		TournamentID:    item.TournamentID,
		PlayerID:        item.PlayerID,
		TeamName:        optionalString(item.TeamName),
		SeasonPoints:    item.SeasonPoints,
		BonusPoints:     item.BonusPoints,
		TotalPoints:     item.TotalPoints,
		RoundsPlayed:    item.RoundsPlayed,
		RoundsWon:       item.RoundsWon,
		StablefordTotal: item.StablefordTotal,
		SkinsTotalValue: item.SkinsTotalValue,
		Rank:            item.Rank,
		LastUpdated:     lastUpdated(item.LastUpdated),
	}

	query, args, err := qb.UpsertModel("tournament_standings", model, "tournament_id", "player_id")
	if err != nil {
		return fmt.Errorf("build upsert standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standing tournament=%s player=%s: %w", item.TournamentID, item.PlayerID, err)
	}
	return nil
}

func (r *StandingRepository) UpsertTeamStanding(ctx context.Context, item standing.TeamStanding) error {
	model := teamStandingTableModel{
		TournamentID: item.TournamentID,
		TeamName:     item.TeamName,
		SeasonPoints: item.SeasonPoints,
		BonusPoints:  item.BonusPoints,
		TotalPoints:  item.TotalPoints,
		RoundsPlayed: item.RoundsPlayed,
		Rank:         item.Rank,
		LastUpdated:  lastUpdated(item.LastUpdated),
	}

	query, args, err := qb.UpsertModel("tournament_team_standings", model, "tournament_id", "team_name")
	if err != nil {
		return fmt.Errorf("build upsert team standing query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team standing tournament=%s team=%s: %w", item.TournamentID, item.TeamName, err)
	}
	return nil
}

func (r *StandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("tournament_standings").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("rank", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			TournamentID:    row.TournamentID,
			PlayerID:        row.PlayerID,
			TeamName:        nullStringValue(row.TeamName),
			SeasonPoints:    row.SeasonPoints,
			BonusPoints:     row.BonusPoints,
			TotalPoints:     row.TotalPoints,
			RoundsPlayed:    row.RoundsPlayed,
			RoundsWon:       row.RoundsWon,
			StablefordTotal: row.StablefordTotal,
			SkinsTotalValue: row.SkinsTotalValue,
			Rank:            row.Rank,
			LastUpdated:     row.LastUpdated.UTC(),
		})
	}
	return out, nil
}

func (r *StandingRepository) ListTeamsByTournament(ctx context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	query, args, err := qb.Select("*").From("tournament_team_standings").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("rank", "team_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team standings query: %w", err)
	}

	var rows []teamStandingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team standings: %w", err)
	}

	out := make([]standing.TeamStanding, 0, len(rows))
	for _, row := range rows {
		item := standing.TeamStanding(row)
		item.LastUpdated = item.LastUpdated.UTC()
		out = append(out, item)
	}
	return out, nil
}

func lastUpdated(at time.Time) time.Time {
	if at.IsZero() {
		return time.Now().UTC()
	}
	return at.UTC()
}
