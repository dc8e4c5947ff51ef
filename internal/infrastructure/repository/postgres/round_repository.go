package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	qb "github.com/riskibarqy/golf-tournament/internal/platform/querybuilder"
)

type RoundRepository struct {
	db *sqlx.DB
}

func NewRoundRepository(db *sqlx.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) FilterCompleted(ctx context.Context, roundIDs []string) ([]string, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("id").From("rounds").
		Where(
			qb.Any("id", pq.Array(roundIDs)),
			qb.Eq("status", string(round.StatusCompleted)),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build filter completed rounds query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("filter completed rounds: %w", err)
	}
	return ids, nil
}

// ListResults treats a missing stableford total as zero.
func (r *RoundRepository) ListResults(ctx context.Context, roundIDs, playerIDs []string) ([]round.Result, error) {
	if len(roundIDs) == 0 || len(playerIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("round_id", "player_id", "COALESCE(stableford_total, 0) AS stableford_total").
		From("round_results").
		Where(
			qb.Any("round_id", pq.Array(roundIDs)),
			qb.Any("player_id", pq.Array(playerIDs)),
		).
		OrderBy("round_id", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list round results query: %w", err)
	}

	var rows []roundResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list round results: %w", err)
	}

	out := make([]round.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.Result(row))
	}
	return out, nil
}

func (r *RoundRepository) ListHoleResults(ctx context.Context, roundIDs, playerIDs []string) ([]round.HoleResult, error) {
	if len(roundIDs) == 0 || len(playerIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select(
		"round_id",
		"player_id",
		"hole_no",
		"COALESCE(par, 0) AS par",
		"COALESCE(net_strokes, 0) AS net_strokes",
	).
		From("hole_results").
		Where(
			qb.Any("round_id", pq.Array(roundIDs)),
			qb.Any("player_id", pq.Array(playerIDs)),
		).
		OrderBy("round_id", "player_id", "hole_no").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list hole results query: %w", err)
	}

	var rows []holeResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list hole results: %w", err)
	}

	out := make([]round.HoleResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.HoleResult(row))
	}
	return out, nil
}

func (r *RoundRepository) ListScoresByStrokes(ctx context.Context, roundIDs, playerIDs []string, strokes int) ([]round.Score, error) {
	if len(roundIDs) == 0 || len(playerIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("round_id", "player_id", "hole_no", "strokes").
		From("scores").
		Where(
			qb.Any("round_id", pq.Array(roundIDs)),
			qb.Any("player_id", pq.Array(playerIDs)),
			qb.Eq("strokes", strokes),
		).
		OrderBy("round_id", "player_id", "hole_no").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list scores query: %w", err)
	}

	var rows []scoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scores strokes=%d: %w", strokes, err)
	}

	out := make([]round.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.Score(row))
	}
	return out, nil
}

func (r *RoundRepository) ListSkinsResults(ctx context.Context, roundIDs []string) ([]round.SkinsResult, error) {
	if len(roundIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("round_id", "hole_no", "winner_player_id", "skin_awarded_value").
		From("skins_results").
		Where(qb.Any("round_id", pq.Array(roundIDs))).
		OrderBy("round_id", "hole_no").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list skins results query: %w", err)
	}

	var rows []skinsResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list skins results: %w", err)
	}

	out := make([]round.SkinsResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, round.SkinsResult{
			RoundID:        row.RoundID,
			HoleNo:         row.HoleNo,
			WinnerPlayerID: nullStringValue(row.WinnerPlayerID),
			AwardedValue:   row.AwardedValue,
		})
	}
	return out, nil
}
