package standing

import "time"

// Standing is the computed leaderboard row of one player in a tournament.
type Standing struct {
	TournamentID    string
	PlayerID        string
	TeamName        string
	SeasonPoints    float64
	BonusPoints     float64
	TotalPoints     float64
	RoundsPlayed    int
	RoundsWon       int
	StablefordTotal int
	SkinsTotalValue float64
	Rank            int
	LastUpdated     time.Time
}

// TeamStanding aggregates member standings under one team name.
type TeamStanding struct {
	TournamentID string
	TeamName     string
	SeasonPoints float64
	BonusPoints  float64
	TotalPoints  float64
	RoundsPlayed int
	Rank         int
	LastUpdated  time.Time
}
