package leaderboard

import (
	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

const (
	eagleMinGain     = 2
	holeInOneStrokes = 1
	hotStreakTopRank = 3
	hotStreakLength  = 3
)

// BonusInput is the read-only view a bonus rule evaluates.
type BonusInput struct {
	Facts    Facts
	Outcomes []RoundOutcome
	Records  map[string]PlayerRecord

	idx factIndex
}

// Completed reports whether roundID is one of the completed rounds under evaluation.
func (in BonusInput) Completed(roundID string) bool {
	return in.idx.completed(roundID)
}

func (in BonusInput) OnRoster(playerID string) bool {
	return in.idx.onRoster(playerID)
}

// BonusRule awards bonus points per player. Rules are independent and their deltas are additive.
type BonusRule interface {
	Name() tournament.BonusRule
	Evaluate(in BonusInput) map[string]float64
}

// RulesFromConfig returns the enabled rules in a fixed evaluation order.
func RulesFromConfig(cfg tournament.BonusConfig) []BonusRule {
	rules := make([]BonusRule, 0, len(tournament.AllBonusRules))
	for _, name := range tournament.AllBonusRules {
		value := cfg.Value(name)
		if value == 0 {
			continue
		}
		switch name {
		case tournament.BonusRoundWinner:
			rules = append(rules, RoundWinnerRule{Value: value})
		case tournament.BonusSkinsLeader:
			rules = append(rules, SkinsLeaderRule{Value: value})
		case tournament.BonusEagle:
			rules = append(rules, EagleRule{Value: value})
		case tournament.BonusHoleInOne:
			rules = append(rules, HoleInOneRule{Value: value})
		case tournament.BonusHotStreak:
			rules = append(rules, HotStreakRule{Value: value})
		}
	}
	return rules
}

// CalculateBonuses sums every rule's deltas per player.
func CalculateBonuses(rules []BonusRule, in BonusInput) map[string]float64 {
	out := make(map[string]float64)
	for _, rule := range rules {
		for playerID, delta := range rule.Evaluate(in) {
			if delta == 0 {
				continue
			}
			out[playerID] += delta
		}
	}
	return out
}

// RoundWinnerRule pays every rank-1 player once per round won, co-winners included.
type RoundWinnerRule struct {
	Value float64
}

func (RoundWinnerRule) Name() tournament.BonusRule { return tournament.BonusRoundWinner }

func (r RoundWinnerRule) Evaluate(in BonusInput) map[string]float64 {
	out := make(map[string]float64)
	for _, outcome := range in.Outcomes {
		for _, playerID := range outcome.Winners {
			out[playerID] += r.Value
		}
	}
	return out
}

// SkinsLeaderRule pays the players holding the highest skins value in each round. The maximum is taken
// over every winner of the round while only roster players are paid, and a zero maximum pays nobody.
type SkinsLeaderRule struct {
	Value float64
}

func (SkinsLeaderRule) Name() tournament.BonusRule { return tournament.BonusSkinsLeader }

func (r SkinsLeaderRule) Evaluate(in BonusInput) map[string]float64 {
	perRound := make(map[string]map[string]float64)
	for _, skin := range in.Facts.Skins {
		if skin.WinnerPlayerID == "" || !in.Completed(skin.RoundID) {
			continue
		}
		totals, ok := perRound[skin.RoundID]
		if !ok {
			totals = make(map[string]float64)
			perRound[skin.RoundID] = totals
		}
		totals[skin.WinnerPlayerID] += skin.AwardedValue
	}

	out := make(map[string]float64)
	for _, rd := range in.idx.rounds {
		totals := perRound[rd.RoundID]
		var best float64
		for _, v := range totals {
			if v > best {
				best = v
			}
		}
		if best <= 0 {
			continue
		}
		for playerID, v := range totals {
			if v == best && in.OnRoster(playerID) {
				out[playerID] += r.Value
			}
		}
	}
	return out
}

// EagleRule pays once per hole finished two or more net strokes under par.
type EagleRule struct {
	Value float64
}

func (EagleRule) Name() tournament.BonusRule { return tournament.BonusEagle }

func (r EagleRule) Evaluate(in BonusInput) map[string]float64 {
	out := make(map[string]float64)
	for _, hole := range in.Facts.HoleResults {
		if !in.Completed(hole.RoundID) || !in.OnRoster(hole.PlayerID) {
			continue
		}
		if hole.GainOnPar() >= eagleMinGain {
			out[hole.PlayerID] += r.Value
		}
	}
	return out
}

// HoleInOneRule pays once per hole scored in a single stroke.
type HoleInOneRule struct {
	Value float64
}

func (HoleInOneRule) Name() tournament.BonusRule { return tournament.BonusHoleInOne }

func (r HoleInOneRule) Evaluate(in BonusInput) map[string]float64 {
	out := make(map[string]float64)
	for _, score := range in.Facts.Aces {
		if score.Strokes != holeInOneStrokes || !in.Completed(score.RoundID) || !in.OnRoster(score.PlayerID) {
			continue
		}
		out[score.PlayerID] += r.Value
	}
	return out
}

// HotStreakRule pays a player once, the first time they finish top three in three consecutive
// rounds played. Longer or later streaks pay nothing more.
type HotStreakRule struct {
	Value float64
}

func (HotStreakRule) Name() tournament.BonusRule { return tournament.BonusHotStreak }

func (r HotStreakRule) Evaluate(in BonusInput) map[string]float64 {
	out := make(map[string]float64)
	for playerID, rec := range in.Records {
		if hasHotStreak(rec.RoundRanks) {
			out[playerID] = r.Value
		}
	}
	return out
}

func hasHotStreak(ranks []int) bool {
	streak := 0
	for _, rank := range ranks {
		if rank > hotStreakTopRank {
			streak = 0
			continue
		}
		streak++
		if streak >= hotStreakLength {
			return true
		}
	}
	return false
}

// skinsTotals sums the skins value won by roster players across completed rounds.
func skinsTotals(idx factIndex, skins []round.SkinsResult) map[string]float64 {
	out := make(map[string]float64)
	for _, skin := range skins {
		if skin.WinnerPlayerID == "" || !idx.completed(skin.RoundID) || !idx.onRoster(skin.WinnerPlayerID) {
			continue
		}
		out[skin.WinnerPlayerID] += skin.AwardedValue
	}
	return out
}
