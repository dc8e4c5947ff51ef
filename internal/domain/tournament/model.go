package tournament

import (
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrInvalidAggregationRule = errors.New("invalid aggregation rule")
	ErrInvalidPointsTable     = errors.New("invalid points table")
	ErrDuplicatePointsRank    = errors.New("duplicate points table rank")
	ErrInvalidBonusConfig     = errors.New("invalid bonus config")
)

// AggregationRule decides how per-round points become season points.
type AggregationRule string

const (
	AggregationSum     AggregationRule = "sum"
	AggregationAverage AggregationRule = "average"
	AggregationBestN   AggregationRule = "best_n"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// BonusRule names a configurable bonus. The string values are the keys stored in bonus_config.
type BonusRule string

const (
	BonusRoundWinner BonusRule = "round_winner"
	BonusSkinsLeader BonusRule = "skins_leader"
	BonusEagle       BonusRule = "eagle"
	BonusHoleInOne   BonusRule = "hole_in_one"
	BonusHotStreak   BonusRule = "hot_streak"
)

var AllBonusRules = []BonusRule{
	BonusRoundWinner,
	BonusSkinsLeader,
	BonusEagle,
	BonusHoleInOne,
	BonusHotStreak,
}

// BonusConfig maps a bonus rule to the points it awards. A missing or zero value disables the rule.
type BonusConfig map[BonusRule]float64

func (c BonusConfig) Value(rule BonusRule) float64 {
	if c == nil {
		return 0
	}
	return c[rule]
}

func (c BonusConfig) Enabled(rule BonusRule) bool {
	return c.Value(rule) != 0
}

type PointsTableEntry struct {
	Rank   int
	Points float64
}

// Tournament is a multi-round competition. It is treated as immutable while standings are computed.
type Tournament struct {
	ID              string
	Name            string
	AggregationRule AggregationRule
	BestN           int
	PointsTable     []PointsTableEntry
	BonusConfig     BonusConfig
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Rule returns the effective aggregation rule; an empty rule means sum.
func (t Tournament) Rule() AggregationRule {
	rule := AggregationRule(strings.ToLower(strings.TrimSpace(string(t.AggregationRule))))
	if rule == "" {
		return AggregationSum
	}
	return rule
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("tournament id is required")
	}

	switch t.Rule() {
	case AggregationSum, AggregationAverage, AggregationBestN:
	default:
		return errors.Wrapf(ErrInvalidAggregationRule, "tournament=%s rule=%q", t.ID, t.AggregationRule)
	}

	seen := make(map[int]struct{}, len(t.PointsTable))
	for _, entry := range t.PointsTable {
		if entry.Rank < 1 {
			return errors.Wrapf(ErrInvalidPointsTable, "rank must be >= 1, got %d", entry.Rank)
		}
		if entry.Points < 0 || math.IsNaN(entry.Points) || math.IsInf(entry.Points, 0) {
			return errors.Wrapf(ErrInvalidPointsTable, "rank %d has invalid points %v", entry.Rank, entry.Points)
		}
		if _, exists := seen[entry.Rank]; exists {
			return errors.Wrapf(ErrDuplicatePointsRank, "rank %d", entry.Rank)
		}
		seen[entry.Rank] = struct{}{}
	}

	for rule, value := range t.BonusConfig {
		if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return errors.Wrapf(ErrInvalidBonusConfig, "rule %s has invalid value %v", rule, value)
		}
	}

	return nil
}

// Round links a tournament to an underlying round. RoundNo orders the tournament schedule.
type Round struct {
	TournamentID string
	RoundID      string
	RoundNo      int
}

// Player is a roster entry. TeamName is empty when the player is not on a team.
type Player struct {
	TournamentID string
	PlayerID     string
	TeamName     string
}

func (p Player) HasTeam() bool {
	return strings.TrimSpace(p.TeamName) != ""
}

// GeneratePointsTable builds a decaying table for playerCount ranks: 100 points for the winner,
// 70% of the previous value for each following rank, never below 5.
func GeneratePointsTable(playerCount int) []PointsTableEntry {
	if playerCount <= 0 {
		return nil
	}

	out := make([]PointsTableEntry, 0, playerCount)
	pts := 100.0
	for rank := 1; rank <= playerCount; rank++ {
		out = append(out, PointsTableEntry{
			Rank:   rank,
			Points: math.Max(math.Floor(pts+0.5), 5),
		})
		pts *= 0.7
	}
	return out
}

func DefaultBonusConfig() BonusConfig {
	return BonusConfig{
		BonusRoundWinner: 10,
		BonusSkinsLeader: 5,
		BonusEagle:       5,
		BonusHoleInOne:   20,
		BonusHotStreak:   10,
	}
}
