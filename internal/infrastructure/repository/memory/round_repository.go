package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/golf-tournament/internal/domain/round"
)

// RoundFacts is the raw round data held by RoundRepository.
type RoundFacts struct {
	Statuses    map[string]round.Status
	Results     []round.Result
	HoleResults []round.HoleResult
	Scores      []round.Score
	Skins       []round.SkinsResult
}

type RoundRepository struct {
	mu    sync.RWMutex
	facts RoundFacts
}

func NewRoundRepository(facts RoundFacts) *RoundRepository {
	statuses := make(map[string]round.Status, len(facts.Statuses))
	for id, status := range facts.Statuses {
		statuses[id] = status
	}
	facts.Statuses = statuses
	return &RoundRepository{facts: facts}
}

// SetStatus moves a round to a new status, e.g. when scoring is closed.
func (r *RoundRepository) SetStatus(roundID string, status round.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.facts.Statuses[roundID] = status
}

func (r *RoundRepository) FilterCompleted(_ context.Context, roundIDs []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(roundIDs))
	for _, id := range roundIDs {
		if r.facts.Statuses[id] == round.StatusCompleted {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *RoundRepository) ListResults(_ context.Context, roundIDs, playerIDs []string) ([]round.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inRound, inPlayer := toSet(roundIDs), toSet(playerIDs)
	out := make([]round.Result, 0)
	for _, item := range r.facts.Results {
		if inRound[item.RoundID] && inPlayer[item.PlayerID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *RoundRepository) ListHoleResults(_ context.Context, roundIDs, playerIDs []string) ([]round.HoleResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inRound, inPlayer := toSet(roundIDs), toSet(playerIDs)
	out := make([]round.HoleResult, 0)
	for _, item := range r.facts.HoleResults {
		if inRound[item.RoundID] && inPlayer[item.PlayerID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *RoundRepository) ListScoresByStrokes(_ context.Context, roundIDs, playerIDs []string, strokes int) ([]round.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inRound, inPlayer := toSet(roundIDs), toSet(playerIDs)
	out := make([]round.Score, 0)
	for _, item := range r.facts.Scores {
		if item.Strokes == strokes && inRound[item.RoundID] && inPlayer[item.PlayerID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *RoundRepository) ListSkinsResults(_ context.Context, roundIDs []string) ([]round.SkinsResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inRound := toSet(roundIDs)
	out := make([]round.SkinsResult, 0)
	for _, item := range r.facts.Skins {
		if inRound[item.RoundID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
