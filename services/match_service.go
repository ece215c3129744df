package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/doubles-tournament/events"
	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
)

// UpdateMatchInput changes a match result. Nil fields are left as they are; an empty
// WinnerID clears the winner.
type UpdateMatchInput struct {
	Team1Points *int         `json:"team1_points"`
	Team2Points *int         `json:"team2_points"`
	WinnerID    *string      `json:"winner_id"`
	PlayDate    *models.Date `json:"play_date"`
}

// CreateMatchInput records a single match outside the generated schedule, for example a
// rescheduled or replayed game. Type defaults to ROUNDROBIN.
type CreateMatchInput struct {
	Team1ID     string           `json:"team1_id"`
	Team2ID     string           `json:"team2_id"`
	Team1Points int              `json:"team1_points"`
	Team2Points int              `json:"team2_points"`
	WinnerID    *string          `json:"winner_id"`
	PlayDate    models.Date      `json:"play_date"`
	Type        models.MatchType `json:"type"`
}

type BulkMatchUpdate struct {
	ID string `json:"id"`
	UpdateMatchInput
}

type MatchListFilter struct {
	Types  []models.MatchType
	TeamID string
}

type MatchService interface {
	ListMatches(ctx context.Context, tournamentID string, filter MatchListFilter) ([]*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error)
	BulkUpdate(ctx context.Context, tournamentID string, updates []BulkMatchUpdate) ([]*models.Match, error)
	CreateMatch(ctx context.Context, tournamentID string, input CreateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id string) error
}

type matchService struct {
	tx             repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	publisher      events.Publisher
	logger         *slog.Logger
}

func NewMatchService(
	tx repositories.TxRunner,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		publisher:      publisher,
		logger:         loggerOrDefault(logger),
	}
}

// applyUpdate validates the input against the match and copies it over.
func applyUpdate(m *models.Match, input UpdateMatchInput) error {
	if input.Team1Points != nil {
		if *input.Team1Points < 0 {
			return fmt.Errorf("%w: team1_points cannot be negative", ErrValidationFailed)
		}
		m.Team1Points = *input.Team1Points
	}
	if input.Team2Points != nil {
		if *input.Team2Points < 0 {
			return fmt.Errorf("%w: team2_points cannot be negative", ErrValidationFailed)
		}
		m.Team2Points = *input.Team2Points
	}
	if input.PlayDate != nil {
		if input.PlayDate.IsZero() {
			return fmt.Errorf("%w: play_date cannot be empty", ErrValidationFailed)
		}
		m.PlayDate = *input.PlayDate
	}
	if input.WinnerID != nil {
		switch winner := *input.WinnerID; {
		case winner == "":
			m.WinnerID = nil
		case m.HasTeam(winner):
			m.WinnerID = &winner
		default:
			return fmt.Errorf("%w: %q", ErrInvalidWinner, winner)
		}
	}
	return nil
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID string, filter MatchListFilter) ([]*models.Match, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	matches, err := s.matchRepo.List(ctx, nil, repositories.MatchFilter{
		TournamentID: tournamentID,
		Types:        filter.Types,
		TeamID:       filter.TeamID,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list matches")
	}
	return matches, nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	return m, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id string, input UpdateMatchInput) (*models.Match, error) {
	var updated *models.Match
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetByID(ctx, exec, id)
		if err != nil {
			return err
		}
		if err := applyUpdate(m, input); err != nil {
			return err
		}
		if err := s.matchRepo.UpdateResult(ctx, exec, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, "update match")
	}

	publish(ctx, s.publisher, s.logger, events.New(events.MatchUpdated, updated.TournamentID, updated))
	return updated, nil
}

// BulkUpdate applies every update in one transaction. Any invalid entry rejects the batch.
func (s *matchService) BulkUpdate(ctx context.Context, tournamentID string, updates []BulkMatchUpdate) ([]*models.Match, error) {
	if len(updates) == 0 {
		return []*models.Match{}, nil
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}

	updated := make([]*models.Match, 0, len(updates))
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, u := range updates {
			if u.ID == "" {
				return fmt.Errorf("%w: every update needs a match id", ErrValidationFailed)
			}
			m, err := s.matchRepo.GetByID(ctx, exec, u.ID)
			if err != nil {
				return err
			}
			if m.TournamentID != tournamentID {
				return fmt.Errorf("%w: %s", ErrMatchNotInTournament, u.ID)
			}
			if err := applyUpdate(m, u.UpdateMatchInput); err != nil {
				return fmt.Errorf("match %s: %w", u.ID, err)
			}
			if err := s.matchRepo.UpdateResult(ctx, exec, m); err != nil {
				return err
			}
			updated = append(updated, m)
		}
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, "update matches")
	}

	s.logger.Info("match results updated", slog.String("tournament_id", tournamentID), slog.Int("count", len(updated)))
	publish(ctx, s.publisher, s.logger, events.New(events.MatchUpdated, tournamentID, updated))
	return updated, nil
}

func (s *matchService) teamOf(ctx context.Context, tournamentID, teamID string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return handleRepositoryError(err, "get team")
	}
	if team.TournamentID != tournamentID {
		return fmt.Errorf("%w: %s", ErrTeamNotInTournament, teamID)
	}
	return nil
}

func (s *matchService) CreateMatch(ctx context.Context, tournamentID string, input CreateMatchInput) (*models.Match, error) {
	if input.Team1ID == "" || input.Team2ID == "" {
		return nil, fmt.Errorf("%w: team1_id and team2_id are required", ErrValidationFailed)
	}
	if input.Team1ID == input.Team2ID {
		return nil, fmt.Errorf("%w: a team cannot play itself", ErrValidationFailed)
	}
	if input.PlayDate.IsZero() {
		return nil, fmt.Errorf("%w: play_date is required", ErrValidationFailed)
	}
	matchType := models.MatchTypeRoundRobin
	if input.Type != "" {
		t, err := models.ParseMatchType(string(input.Type))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		matchType = t
	}

	m := &models.Match{
		TournamentID: tournamentID,
		Team1ID:      input.Team1ID,
		Team2ID:      input.Team2ID,
		PlayDate:     input.PlayDate,
		Type:         matchType,
	}
	if err := applyUpdate(m, UpdateMatchInput{
		Team1Points: &input.Team1Points,
		Team2Points: &input.Team2Points,
		WinnerID:    input.WinnerID,
	}); err != nil {
		return nil, err
	}

	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	for _, teamID := range []string{m.Team1ID, m.Team2ID} {
		if err := s.teamOf(ctx, tournamentID, teamID); err != nil {
			return nil, err
		}
	}

	if err := s.matchRepo.CreateBatch(ctx, nil, []*models.Match{m}); err != nil {
		return nil, handleRepositoryError(err, "create match")
	}

	s.logger.Info("match created", slog.String("tournament_id", tournamentID), slog.String("match_id", m.ID))
	publish(ctx, s.publisher, s.logger, events.New(events.MatchCreated, tournamentID, m))
	return m, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id string) error {
	var deleted *models.Match
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetByID(ctx, exec, id)
		if err != nil {
			return err
		}
		if err := s.matchRepo.Delete(ctx, exec, id); err != nil {
			return err
		}
		deleted = m
		return nil
	})
	if err != nil {
		return handleRepositoryError(err, "delete match")
	}

	s.logger.Info("match deleted", slog.String("tournament_id", deleted.TournamentID), slog.String("match_id", id))
	publish(ctx, s.publisher, s.logger, events.New(events.MatchDeleted, deleted.TournamentID, map[string]string{"id": id}))
	return nil
}
