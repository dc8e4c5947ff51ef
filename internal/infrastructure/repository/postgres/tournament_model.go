package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	ID              string        `db:"id"`
	Name            string        `db:"name"`
	AggregationRule string        `db:"aggregation_rule"`
	BestN           sql.NullInt64 `db:"best_n"`
	PointsTable     []byte        `db:"points_table"`
	BonusConfig     []byte        `db:"bonus_config"`
	Status          string        `db:"status"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

type pointsTableEntryJSON struct {
	Rank   int     `json:"rank"`
	Points float64 `json:"points"`
}

type tournamentRoundTableModel struct {
	TournamentID string `db:"tournament_id"`
	RoundID      string `db:"round_id"`
	RoundNo      int    `db:"round_no"`
}

type tournamentPlayerTableModel struct {
	TournamentID string         `db:"tournament_id"`
	PlayerID     string         `db:"player_id"`
	TeamName     sql.NullString `db:"team_name"`
}
