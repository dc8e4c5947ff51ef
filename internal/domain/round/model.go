package round

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Result is the stableford total a player produced in one round.
type Result struct {
	RoundID         string
	PlayerID        string
	StablefordTotal int
}

// HoleResult carries net strokes against par for one hole.
type HoleResult struct {
	RoundID    string
	PlayerID   string
	HoleNo     int
	Par        int
	NetStrokes int
}

// GainOnPar is par minus net strokes. Unplayed or unset holes return 0.
func (h HoleResult) GainOnPar() int {
	if h.Par <= 0 || h.NetStrokes <= 0 {
		return 0
	}
	return h.Par - h.NetStrokes
}

// Score is a raw gross stroke count for one hole.
type Score struct {
	RoundID  string
	PlayerID string
	HoleNo   int
	Strokes  int
}

// SkinsResult is the outcome of one skins hole. WinnerPlayerID is empty for carried holes.
type SkinsResult struct {
	RoundID        string
	HoleNo         int
	WinnerPlayerID string
	AwardedValue   float64
}
