package leaderboard

// PlayerRecord is the per-player accumulation over ranked rounds. RoundPoints and RoundRanks follow
// round_no order and only contain rounds the player played.
type PlayerRecord struct {
	PlayerID        string
	TeamName        string
	RoundPoints     []float64
	RoundRanks      []int
	StablefordTotal int
	RoundsPlayed    int
	RoundsWon       int
}

func buildRecords(idx factIndex, outcomes []RoundOutcome) map[string]PlayerRecord {
	records := make(map[string]PlayerRecord, len(idx.roster))
	for id, p := range idx.roster {
		records[id] = PlayerRecord{PlayerID: id, TeamName: p.TeamName}
	}

	for _, outcome := range outcomes {
		for _, placing := range outcome.Placings {
			rec, ok := records[placing.PlayerID]
			if !ok {
				continue
			}
			rec.RoundPoints = append(rec.RoundPoints, placing.Points)
			rec.RoundRanks = append(rec.RoundRanks, placing.Rank)
			rec.StablefordTotal += placing.StablefordTotal
			rec.RoundsPlayed++
			if placing.Rank == 1 {
				rec.RoundsWon++
			}
			records[placing.PlayerID] = rec
		}
	}
	return records
}
