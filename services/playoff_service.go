package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-tournament/brackets"
	"github.com/Dosada05/doubles-tournament/events"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
)

type SeedPlayoffInput struct {
	PlayDate models.Date `json:"play_date"`
}

type PlayoffService interface {
	// SeedSemifinals pairs the top four of the standings, 1 v 4 and 2 v 3, replacing any
	// existing playoff matches.
	SeedSemifinals(ctx context.Context, tournamentID string, input SeedPlayoffInput) ([]*models.Match, error)
	// SeedFinal pairs the two semifinal winners, replacing an existing final.
	SeedFinal(ctx context.Context, tournamentID string, input SeedPlayoffInput) (*models.Match, error)
}

type playoffService struct {
	tx        repositories.TxRunner
	matchRepo repositories.MatchRepository
	standings StandingsService
	publisher events.Publisher
	logger    *slog.Logger
}

func NewPlayoffService(
	tx repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	publisher events.Publisher,
	logger *slog.Logger,
) PlayoffService {
	return &playoffService{
		tx:        tx,
		matchRepo: matchRepo,
		standings: standings,
		publisher: publisher,
		logger:    loggerOrDefault(logger),
	}
}

func (s *playoffService) SeedSemifinals(ctx context.Context, tournamentID string, input SeedPlayoffInput) ([]*models.Match, error) {
	if input.PlayDate.IsZero() {
		return nil, fmt.Errorf("%w: play_date is required", ErrValidationFailed)
	}

	// Seeding uses the regular season only, so reseeding ignores earlier playoff results.
	table, err := s.standings.Standings(ctx, tournamentID, []models.MatchType{models.MatchTypeRoundRobin})
	if err != nil {
		return nil, err
	}
	ranked := make([]string, len(table))
	for i, row := range table {
		ranked[i] = row.TeamID
	}

	pairs, err := brackets.SeedSemifinals(ranked)
	if err != nil {
		return nil, err
	}

	matches := playoffMatches(tournamentID, pairs, input.PlayDate, models.MatchTypeSemifinal)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.matchRepo.DeleteByTournament(ctx, exec, tournamentID,
			[]models.MatchType{models.MatchTypeSemifinal, models.MatchTypeFinal}); err != nil {
			return err
		}
		return s.matchRepo.CreateBatch(ctx, exec, matches)
	})
	if err != nil {
		return nil, handleRepositoryError(err, "store semifinals")
	}

	s.logger.Info("semifinals seeded", slog.String("tournament_id", tournamentID))
	publish(ctx, s.publisher, s.logger, events.New(events.PlayoffsSeeded, tournamentID, matches))
	return matches, nil
}

func (s *playoffService) SeedFinal(ctx context.Context, tournamentID string, input SeedPlayoffInput) (*models.Match, error) {
	if input.PlayDate.IsZero() {
		return nil, fmt.Errorf("%w: play_date is required", ErrValidationFailed)
	}

	semis, err := s.matchRepo.List(ctx, nil, repositories.MatchFilter{
		TournamentID: tournamentID,
		Types:        []models.MatchType{models.MatchTypeSemifinal},
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list semifinals")
	}

	results := make([]brackets.PlayoffResult, len(semis))
	for i, m := range semis {
		results[i] = brackets.PlayoffResult{Team1ID: m.Team1ID, Team2ID: m.Team2ID, WinnerID: m.WinnerID}
	}
	pair, err := brackets.SeedFinal(results)
	if err != nil {
		return nil, err
	}

	matches := playoffMatches(tournamentID, []brackets.Pair{pair}, input.PlayDate, models.MatchTypeFinal)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.matchRepo.DeleteByTournament(ctx, exec, tournamentID,
			[]models.MatchType{models.MatchTypeFinal}); err != nil {
			return err
		}
		return s.matchRepo.CreateBatch(ctx, exec, matches)
	})
	if err != nil {
		return nil, handleRepositoryError(err, "store final")
	}

	s.logger.Info("final seeded", slog.String("tournament_id", tournamentID))
	publish(ctx, s.publisher, s.logger, events.New(events.PlayoffsSeeded, tournamentID, matches))
	return matches[0], nil
}

func playoffMatches(tournamentID string, pairs []brackets.Pair, day models.Date, typ models.MatchType) []*models.Match {
	matches := make([]*models.Match, len(pairs))
	for i, p := range pairs {
		matches[i] = &models.Match{
			TournamentID: tournamentID,
			Team1ID:      p.Team1ID,
			Team2ID:      p.Team2ID,
			PlayDate:     day,
			Type:         typ,
		}
	}
	return matches
}
