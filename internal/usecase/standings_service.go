package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/golf-tournament/internal/domain/leaderboard"
	"github.com/riskibarqy/golf-tournament/internal/domain/round"
	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
	"github.com/riskibarqy/golf-tournament/internal/platform/logging"
)

const (
	defaultFetchWorkers = 3
	defaultBatchWorkers = 4
)

type RecalculationStatus string

const (
	StatusUpdated           RecalculationStatus = "updated"
	StatusNoCompletedRounds RecalculationStatus = "no_completed_rounds"
)

// RecalculationTarget selects a tournament directly or through one of its rounds.
type RecalculationTarget struct {
	RoundID      string
	TournamentID string
}

// FailedRow is a standing row whose upsert failed. Other rows are still written.
type FailedRow struct {
	PlayerID string
	TeamName string
	Error    string
}

type RecalculationResult struct {
	TournamentID   string
	TriggerRoundID string
	Status         RecalculationStatus
	Message        string
	RoundsCounted  int
	Standings      []standing.Standing
	Teams          []standing.TeamStanding
	FailedRows     []FailedRow
}

// RecalculationObserver receives one sample per tournament recalculation.
type RecalculationObserver interface {
	ObserveRecalculation(status string, failedRows int, elapsed time.Duration)
}

type StandingsConfig struct {
	FetchWorkers int
	BatchWorkers int
}

// StandingsService loads tournament facts, runs the leaderboard engine and publishes the rows.
type StandingsService struct {
	tournamentRepo tournament.Repository
	roundRepo      round.Repository
	standingRepo   standing.Repository
	cfg            StandingsConfig
	logger         *logging.Logger
	observer       RecalculationObserver
	now            func() time.Time
}

func NewStandingsService(
	tournamentRepo tournament.Repository,
	roundRepo round.Repository,
	standingRepo standing.Repository,
	cfg StandingsConfig,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = defaultFetchWorkers
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = defaultBatchWorkers
	}

	return &StandingsService{
		tournamentRepo: tournamentRepo,
		roundRepo:      roundRepo,
		standingRepo:   standingRepo,
		cfg:            cfg,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock replaces the clock used for last_updated.
func (s *StandingsService) WithClock(now func() time.Time) *StandingsService {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *StandingsService) WithObserver(observer RecalculationObserver) *StandingsService {
	s.observer = observer
	return s
}

func (s *StandingsService) Recalculate(ctx context.Context, target RecalculationTarget) (RecalculationResult, error) {
	if strings.TrimSpace(target.RoundID) != "" {
		return s.RecalculateByRound(ctx, target.RoundID)
	}
	return s.RecalculateByTournament(ctx, target.TournamentID)
}

// RecalculateByRound recomputes the standings of the tournament owning roundID.
func (s *StandingsService) RecalculateByRound(ctx context.Context, roundID string) (RecalculationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RecalculateByRound")
	defer span.End()

	tournamentID, err := s.resolveRound(ctx, roundID)
	if err != nil {
		return RecalculationResult{}, err
	}
	return s.recalculate(ctx, tournamentID, strings.TrimSpace(roundID))
}

func (s *StandingsService) RecalculateByTournament(ctx context.Context, tournamentID string) (RecalculationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RecalculateByTournament")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return RecalculationResult{}, fmt.Errorf("%w: tournament id or round id is required", ErrInvalidInput)
	}
	return s.recalculate(ctx, tournamentID, "")
}

// ResolveTournamentID returns the tournament a target points at without recalculating it.
func (s *StandingsService) ResolveTournamentID(ctx context.Context, target RecalculationTarget) (string, error) {
	if strings.TrimSpace(target.RoundID) != "" {
		return s.resolveRound(ctx, target.RoundID)
	}

	tournamentID := strings.TrimSpace(target.TournamentID)
	if tournamentID == "" {
		return "", fmt.Errorf("%w: tournament id or round id is required", ErrInvalidInput)
	}
	_, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return "", fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return tournamentID, nil
}

func (s *StandingsService) resolveRound(ctx context.Context, roundID string) (string, error) {
	roundID = strings.TrimSpace(roundID)
	if roundID == "" {
		return "", fmt.Errorf("%w: round id is required", ErrInvalidInput)
	}

	link, exists, err := s.tournamentRepo.GetRoundLink(ctx, roundID)
	if err != nil {
		return "", fmt.Errorf("get tournament round link: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: round is not part of a tournament: round=%s", ErrNotFound, roundID)
	}
	return link.TournamentID, nil
}

func (s *StandingsService) recalculate(ctx context.Context, tournamentID, triggerRoundID string) (_ RecalculationResult, err error) {
	start := time.Now()
	var result RecalculationResult
	defer func() {
		s.observe(result, err, time.Since(start))
	}()
	s.logger.InfoContext(ctx, "recalculate standings started",
		"tournament_id", tournamentID,
		"trigger_round_id", triggerRoundID,
	)

	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return RecalculationResult{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return RecalculationResult{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	if err := item.Validate(); err != nil {
		return RecalculationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	result = RecalculationResult{
		TournamentID:   tournamentID,
		TriggerRoundID: triggerRoundID,
	}

	completed, err := s.loadCompletedRounds(ctx, tournamentID)
	if err != nil {
		return RecalculationResult{}, err
	}
	if len(completed) == 0 {
		s.logger.InfoContext(ctx, "no completed rounds yet", "tournament_id", tournamentID)
		result.Status = StatusNoCompletedRounds
		result.Message = "no completed rounds yet"
		return result, nil
	}

	players, err := s.tournamentRepo.ListPlayers(ctx, tournamentID)
	if err != nil {
		return RecalculationResult{}, fmt.Errorf("list tournament players: %w", err)
	}

	facts, err := s.loadFacts(ctx, item, completed, players)
	if err != nil {
		return RecalculationResult{}, err
	}

	computed, err := leaderboard.Compute(facts)
	if err != nil {
		return RecalculationResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	result.Status = StatusUpdated
	result.Message = "standings updated"
	result.RoundsCounted = len(computed.Outcomes)
	result.Standings = computed.Standings
	result.Teams = computed.Teams
	result.FailedRows = s.publish(ctx, computed)

	s.logger.InfoContext(ctx, "recalculate standings finished",
		"tournament_id", tournamentID,
		"players", len(result.Standings),
		"teams", len(result.Teams),
		"rounds", result.RoundsCounted,
		"failed_rows", len(result.FailedRows),
		"duration", time.Since(start),
	)
	return result, nil
}

// loadCompletedRounds returns the tournament rounds in round_no order restricted to completed ones.
func (s *StandingsService) loadCompletedRounds(ctx context.Context, tournamentID string) ([]tournament.Round, error) {
	rounds, err := s.tournamentRepo.ListRounds(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament rounds: %w", err)
	}
	if len(rounds) == 0 {
		return nil, nil
	}

	roundIDs := make([]string, 0, len(rounds))
	for _, r := range rounds {
		roundIDs = append(roundIDs, r.RoundID)
	}
	completedIDs, err := s.roundRepo.FilterCompleted(ctx, roundIDs)
	if err != nil {
		return nil, fmt.Errorf("list completed rounds: %w", err)
	}

	completedSet := make(map[string]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completedSet[id] = struct{}{}
	}
	out := make([]tournament.Round, 0, len(completedIDs))
	for _, r := range rounds {
		if _, ok := completedSet[r.RoundID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// loadFacts fetches round results first, then the bonus facts in parallel. Any failed fetch aborts the
// computation so bonuses are never applied partially.
func (s *StandingsService) loadFacts(
	ctx context.Context,
	item tournament.Tournament,
	completed []tournament.Round,
	players []tournament.Player,
) (leaderboard.Facts, error) {
	roundIDs := make([]string, 0, len(completed))
	for _, r := range completed {
		roundIDs = append(roundIDs, r.RoundID)
	}
	playerIDs := make([]string, 0, len(players))
	for _, p := range players {
		playerIDs = append(playerIDs, p.PlayerID)
	}

	results, err := s.roundRepo.ListResults(ctx, roundIDs, playerIDs)
	if err != nil {
		return leaderboard.Facts{}, fmt.Errorf("list round results: %w", err)
	}

	var (
		skins []round.SkinsResult
		holes []round.HoleResult
		aces  []round.Score
	)

	fetch := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(s.cfg.FetchWorkers)

	fetch.Go(func(ctx context.Context) error {
		items, err := s.roundRepo.ListSkinsResults(ctx, roundIDs)
		if err != nil {
			return fmt.Errorf("list skins results: %w", err)
		}
		skins = items
		return nil
	})
	if item.BonusConfig.Enabled(tournament.BonusEagle) {
		fetch.Go(func(ctx context.Context) error {
			items, err := s.roundRepo.ListHoleResults(ctx, roundIDs, playerIDs)
			if err != nil {
				return fmt.Errorf("list hole results: %w", err)
			}
			holes = items
			return nil
		})
	}
	if item.BonusConfig.Enabled(tournament.BonusHoleInOne) {
		fetch.Go(func(ctx context.Context) error {
			items, err := s.roundRepo.ListScoresByStrokes(ctx, roundIDs, playerIDs, 1)
			if err != nil {
				return fmt.Errorf("list hole-in-one scores: %w", err)
			}
			aces = items
			return nil
		})
	}
	if err := fetch.Wait(); err != nil {
		return leaderboard.Facts{}, err
	}

	return leaderboard.Facts{
		Tournament:  item,
		Rounds:      completed,
		Players:     players,
		Results:     results,
		HoleResults: holes,
		Aces:        aces,
		Skins:       skins,
		ComputedAt:  s.now().UTC(),
	}, nil
}

// publish upserts every row. A failed row is logged and reported without stopping the others.
func (s *StandingsService) publish(ctx context.Context, computed leaderboard.Result) []FailedRow {
	var failed []FailedRow
	for _, item := range computed.Standings {
		if err := s.standingRepo.UpsertStanding(ctx, item); err != nil {
			s.logger.ErrorContext(ctx, "upsert standing failed",
				"tournament_id", item.TournamentID,
				"player_id", item.PlayerID,
				"error", err,
			)
			failed = append(failed, FailedRow{PlayerID: item.PlayerID, Error: err.Error()})
		}
	}
	for _, item := range computed.Teams {
		if err := s.standingRepo.UpsertTeamStanding(ctx, item); err != nil {
			s.logger.ErrorContext(ctx, "upsert team standing failed",
				"tournament_id", item.TournamentID,
				"team_name", item.TeamName,
				"error", err,
			)
			failed = append(failed, FailedRow{TeamName: item.TeamName, Error: err.Error()})
		}
	}
	return failed
}

func (s *StandingsService) observe(result RecalculationResult, err error, elapsed time.Duration) {
	if s.observer == nil {
		return
	}
	status := string(result.Status)
	switch {
	case err != nil && isClientError(err):
		status = "rejected"
	case err != nil:
		status = "failed"
	}
	s.observer.ObserveRecalculation(status, len(result.FailedRows), elapsed)
}

// IsNoop reports whether the result wrote nothing because no round is completed.
func (r RecalculationResult) IsNoop() bool {
	return r.Status == StatusNoCompletedRounds
}
