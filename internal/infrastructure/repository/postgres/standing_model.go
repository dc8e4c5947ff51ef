package postgres

import (
	"database/sql"
	"time"
)

type standingTableModel struct {
	TournamentID    string         `db:"tournament_id"`
	PlayerID        string         `db:"player_id"`
	TeamName        sql.NullString `db:"team_name"`
	SeasonPoints    float64        `db:"season_points"`
	BonusPoints     float64        `db:"bonus_points"`
	TotalPoints     float64        `db:"total_points"`
	RoundsPlayed    int            `db:"rounds_played"`
	RoundsWon       int            `db:"rounds_won"`
	StablefordTotal int            `db:"stableford_total"`
	SkinsTotalValue float64        `db:"skins_total_value"`
	Rank            int            `db:"rank"`
	LastUpdated     time.Time      `db:"last_updated"`
}

type standingUpsertModel struct {
	TournamentID    string    `db:"tournament_id"`
	PlayerID        string    `db:"player_id"`
	TeamName        *string   `db:"team_name"`
	SeasonPoints    float64   `db:"season_points"`
	BonusPoints     float64   `db:"bonus_points"`
	TotalPoints     float64   `db:"total_points"`
	RoundsPlayed    int       `db:"rounds_played"`
	RoundsWon       int       `db:"rounds_won"`
	StablefordTotal int       `db:"stableford_total"`
	SkinsTotalValue float64   `db:"skins_total_value"`
	Rank            int       `db:"rank"`
	LastUpdated     time.Time `db:"last_updated"`
}

type teamStandingTableModel struct {
	TournamentID string    `db:"tournament_id"`
	TeamName     string    `db:"team_name"`
	SeasonPoints float64   `db:"season_points"`
	BonusPoints  float64   `db:"bonus_points"`
	TotalPoints  float64   `db:"total_points"`
	RoundsPlayed int       `db:"rounds_played"`
	Rank         int       `db:"rank"`
	LastUpdated  time.Time `db:"last_updated"`
}
