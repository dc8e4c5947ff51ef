package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
	qb "github.com/riskibarqy/golf-tournament/internal/platform/querybuilder"
)

var tournamentColumns = []string{
	"id",
	"name",
	"aggregation_rule",
	"best_n",
	"points_table",
	"bonus_config",
	"status",
	"created_at",
	"updated_at",
}

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(qb.Eq("id", tournamentID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("build get tournament query: %w", err)
	}

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament by id: %w", err)
	}

	item, err := mapTournament(row)
	if err != nil {
		return tournament.Tournament{}, false, err
	}
	return item, true, nil
}

func (r *TournamentRepository) ListByStatus(ctx context.Context, status tournament.Status) ([]tournament.Tournament, error) {
	query, args, err := qb.Select(tournamentColumns...).From("tournaments").
		Where(qb.Eq("status", string(status))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments query: %w", err)
	}

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournaments by status: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		item, err := mapTournament(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TournamentRepository) GetRoundLink(ctx context.Context, roundID string) (tournament.Round, bool, error) {
	query, args, err := qb.Select("tournament_id", "round_id", "round_no").From("tournament_rounds").
		Where(qb.Eq("round_id", roundID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tournament.Round{}, false, fmt.Errorf("build get tournament round query: %w", err)
	}

	var row tournamentRoundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tournament.Round{}, false, nil
		}
		return tournament.Round{}, false, fmt.Errorf("get tournament round link: %w", err)
	}
	return tournament.Round(row), true, nil
}

func (r *TournamentRepository) ListRounds(ctx context.Context, tournamentID string) ([]tournament.Round, error) {
	query, args, err := qb.Select("tournament_id", "round_id", "round_no").From("tournament_rounds").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("round_no", "round_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament rounds query: %w", err)
	}

	var rows []tournamentRoundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournament rounds: %w", err)
	}

	out := make([]tournament.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournament.Round(row))
	}
	return out, nil
}

func (r *TournamentRepository) ListPlayers(ctx context.Context, tournamentID string) ([]tournament.Player, error) {
	query, args, err := qb.Select("tournament_id", "player_id", "team_name").From("tournament_players").
		Where(qb.Eq("tournament_id", tournamentID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tournament players query: %w", err)
	}

	var rows []tournamentPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tournament players: %w", err)
	}

	out := make([]tournament.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournament.Player{
			TournamentID: row.TournamentID,
			PlayerID:     row.PlayerID,
			TeamName:     nullStringValue(row.TeamName),
		})
	}
	return out, nil
}

func mapTournament(row tournamentTableModel) (tournament.Tournament, error) {
	item := tournament.Tournament{
		ID:              row.ID,
		Name:            row.Name,
		AggregationRule: tournament.AggregationRule(strings.TrimSpace(row.AggregationRule)),
		Status:          tournament.Status(strings.TrimSpace(row.Status)),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.BestN.Valid {
		item.BestN = int(row.BestN.Int64)
	}

	if len(row.PointsTable) > 0 {
		var entries []pointsTableEntryJSON
		if err := sonic.Unmarshal(row.PointsTable, &entries); err != nil {
			return tournament.Tournament{}, fmt.Errorf("decode points table tournament=%s: %w", row.ID, err)
		}
		item.PointsTable = make([]tournament.PointsTableEntry, 0, len(entries))
		for _, entry := range entries {
			item.PointsTable = append(item.PointsTable, tournament.PointsTableEntry(entry))
		}
	}

	if len(row.BonusConfig) > 0 {
		var raw map[string]float64
		if err := sonic.Unmarshal(row.BonusConfig, &raw); err != nil {
			return tournament.Tournament{}, fmt.Errorf("decode bonus config tournament=%s: %w", row.ID, err)
		}
		item.BonusConfig = make(tournament.BonusConfig, len(raw))
		for name, value := range raw {
			item.BonusConfig[tournament.BonusRule(strings.TrimSpace(name))] = value
		}
	}

	return item, nil
}
