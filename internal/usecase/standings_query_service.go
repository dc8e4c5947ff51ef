package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/golf-tournament/internal/domain/standing"
	"github.com/riskibarqy/golf-tournament/internal/domain/tournament"
)

type StandingsQueryService struct {
	tournamentRepo tournament.Repository
	standingRepo   standing.Repository
}

func NewStandingsQueryService(tournamentRepo tournament.Repository, standingRepo standing.Repository) *StandingsQueryService {
	return &StandingsQueryService{
		tournamentRepo: tournamentRepo,
		standingRepo:   standingRepo,
	}
}

func (s *StandingsQueryService) ListStandings(ctx context.Context, tournamentID string) ([]standing.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsQueryService.ListStandings")
	defer span.End()

	tournamentID, err := s.ensureTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.standingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament standings: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rank != items[j].Rank {
			return items[i].Rank < items[j].Rank
		}
		return items[i].PlayerID < items[j].PlayerID
	})
	return items, nil
}

func (s *StandingsQueryService) ListTeamStandings(ctx context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsQueryService.ListTeamStandings")
	defer span.End()

	tournamentID, err := s.ensureTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	items, err := s.standingRepo.ListTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament team standings: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rank != items[j].Rank {
			return items[i].Rank < items[j].Rank
		}
		return items[i].TeamName < items[j].TeamName
	})
	return items, nil
}

func (s *StandingsQueryService) ensureTournament(ctx context.Context, tournamentID string) (string, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return "", fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
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
