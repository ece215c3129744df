package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Dosada05/doubles-tournament/brackets"
	"github.com/Dosada05/doubles-tournament/events"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
)

// GenerateScheduleInput is the body of a schedule request. MatchesPerDay is keyed by weekday
// ordinal, "0" for Sunday through "6" for Saturday.
type GenerateScheduleInput struct {
	StartDate     models.Date    `json:"start_date"`
	MatchesPerDay map[string]int `json:"matches_per_day"`
}

// ParseCapacity converts JSON weekday keys into a capacity profile.
func ParseCapacity(perDay map[string]int) (brackets.CapacityProfile, error) {
	capacity := make(brackets.CapacityProfile, len(perDay))
	for key, n := range perDay {
		day, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: weekday key %q is not a number", brackets.ErrInvalidCapacity, key)
		}
		capacity[time.Weekday(day)] = n
	}
	return capacity, capacity.Validate()
}

type ScheduleService interface {
	// Regenerate replaces every match of the tournament with a fresh round-robin schedule.
	Regenerate(ctx context.Context, tournamentID string, input GenerateScheduleInput) ([]*models.Match, error)
}

type scheduleService struct {
	tx             repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	generator      brackets.BracketGenerator
	assigner       *brackets.DateAssigner
	publisher      events.Publisher
	logger         *slog.Logger
}

func NewScheduleService(
	tx repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	assigner *brackets.DateAssigner,
	publisher events.Publisher,
	logger *slog.Logger,
) ScheduleService {
	if assigner == nil {
		assigner = brackets.NewDateAssigner(brackets.DefaultMaxDaySearch)
	}
	return &scheduleService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		generator:      brackets.NewRoundRobinGenerator(),
		assigner:       assigner,
		publisher:      publisher,
		logger:         loggerOrDefault(logger),
	}
}

func (s *scheduleService) Regenerate(ctx context.Context, tournamentID string, input GenerateScheduleInput) ([]*models.Match, error) {
	capacity, err := ParseCapacity(input.MatchesPerDay)
	if err != nil {
		return nil, err
	}
	if input.StartDate.IsZero() {
		return nil, brackets.ErrInvalidStartDate
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "list teams")
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: tournament has %d", ErrNotEnoughTeams, len(teams))
	}

	teamIDs := make([]string, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}

	rounds, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{TeamIDs: teamIDs})
	if err != nil {
		return nil, fmt.Errorf("%s pairing failed: %w", s.generator.GetName(), err)
	}
	scheduled, err := s.assigner.AssignDates(rounds, input.StartDate, capacity)
	if err != nil {
		return nil, err
	}

	matches := make([]*models.Match, len(scheduled))
	for i, sm := range scheduled {
		matches[i] = &models.Match{
			TournamentID: tournamentID,
			Team1ID:      sm.Team1ID,
			Team2ID:      sm.Team2ID,
			Team1Points:  sm.Team1Points,
			Team2Points:  sm.Team2Points,
			PlayDate:     sm.PlayDate,
			Type:         models.MatchTypeRoundRobin,
		}
	}

	var removed int64
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var txErr error
		// Playoff matches are seeded from round-robin results, so they go too.
		if removed, txErr = s.matchRepo.DeleteByTournament(ctx, exec, tournamentID, nil); txErr != nil {
			return txErr
		}
		if txErr = s.matchRepo.CreateBatch(ctx, exec, matches); txErr != nil {
			return txErr
		}
		if len(matches) == 0 {
			return nil
		}
		return s.tournamentRepo.UpdateDates(ctx, exec, tournamentID, matches[0].PlayDate, matches[len(matches)-1].PlayDate)
	})
	if err != nil {
		return nil, handleRepositoryError(err, "store schedule")
	}

	s.logger.Info("schedule regenerated",
		slog.String("tournament_id", tournamentID),
		slog.Int("teams", len(teams)),
		slog.Int("rounds", len(rounds)),
		slog.Int("matches", len(matches)),
		slog.Int64("replaced", removed))

	publish(ctx, s.publisher, s.logger, events.New(events.ScheduleRegenerated, tournamentID, map[string]int{
		"rounds":  len(rounds),
		"matches": len(matches),
	}))
	return matches, nil
}
