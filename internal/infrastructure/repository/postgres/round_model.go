package postgres

import "database/sql"

type roundResultTableModel struct {
	RoundID         string `db:"round_id"`
	PlayerID        string `db:"player_id"`
	StablefordTotal int    `db:"stableford_total"`
}

type holeResultTableModel struct {
	RoundID    string `db:"round_id"`
	PlayerID   string `db:"player_id"`
	HoleNo     int    `db:"hole_no"`
	Par        int    `db:"par"`
	NetStrokes int    `db:"net_strokes"`
}

type scoreTableModel struct {
	RoundID  string `db:"round_id"`
	PlayerID string `db:"player_id"`
	HoleNo   int    `db:"hole_no"`
	Strokes  int    `db:"strokes"`
}

type skinsResultTableModel struct {
	RoundID        string         `db:"round_id"`
	HoleNo         int            `db:"hole_no"`
	WinnerPlayerID sql.NullString `db:"winner_player_id"`
	AwardedValue   float64        `db:"skin_awarded_value"`
}
