package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
	"github.com/Dosada05/doubles-tournament/standings"
	"golang.org/x/sync/errgroup"
)

type StandingsService interface {
	// Standings ranks the tournament's teams. Empty types folds every match of the tournament.
	Standings(ctx context.Context, tournamentID string, types []models.MatchType) ([]models.Standing, error)
}

type standingsService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	logger         *slog.Logger
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		logger:         loggerOrDefault(logger),
	}
}

func (s *standingsService) Standings(ctx context.Context, tournamentID string, types []models.MatchType) ([]models.Standing, error) {
	var (
		teams   []*models.Team
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.tournamentRepo.GetByID(gCtx, tournamentID)
		return handleRepositoryError(err, "get tournament")
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, nil, tournamentID)
		return handleRepositoryError(err, "list teams")
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx, nil, repositories.MatchFilter{
			TournamentID: tournamentID,
			Types:        types,
		})
		return handleRepositoryError(err, "list matches")
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ts, ms := standings.FromModels(teams, matches)
	return standings.ComputeParallel(ctx, ts, ms)
}
