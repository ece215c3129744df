package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
)

// CreateTeamInput registers one doubles pair.
type CreateTeamInput struct {
	Name      string `json:"name"`
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
}

// UpdateTeamInput changes a team. Nil fields are left as they are.
type UpdateTeamInput struct {
	Name      *string `json:"name"`
	PlayerOne *string `json:"player_one"`
	PlayerTwo *string `json:"player_two"`
}

type TeamService interface {
	CreateTeams(ctx context.Context, tournamentID string, inputs []CreateTeamInput) ([]*models.Team, error)
	ListTeams(ctx context.Context, tournamentID string) ([]*models.Team, error)
	GetTeam(ctx context.Context, id string) (*models.Team, error)
	UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

type teamService struct {
	tx             repositories.TxRunner
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewTeamService(tx repositories.TxRunner, tournamentRepo repositories.TournamentRepository, teamRepo repositories.TeamRepository, logger *slog.Logger) TeamService {
	return &teamService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		logger:         loggerOrDefault(logger),
	}
}

func validateTeam(name, p1, p2 string) error {
	if name == "" || p1 == "" || p2 == "" {
		return fmt.Errorf("%w: a team needs a name and two players", ErrValidationFailed)
	}
	if strings.EqualFold(p1, p2) {
		return fmt.Errorf("%w: team %q lists %q twice", ErrValidationFailed, name, p1)
	}
	return nil
}

func validateTeamInputs(inputs []CreateTeamInput) error {
	if len(inputs) == 0 {
		return fmt.Errorf("%w: at least one team is required", ErrValidationFailed)
	}
	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if err := validateTeam(name, strings.TrimSpace(in.PlayerOne), strings.TrimSpace(in.PlayerTwo)); err != nil {
			return fmt.Errorf("team %d: %w", i+1, err)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrTeamNameConflict, name)
		}
		seen[key] = true
	}
	return nil
}

// CreateTeams registers the whole batch or nothing.
func (s *teamService) CreateTeams(ctx context.Context, tournamentID string, inputs []CreateTeamInput) ([]*models.Team, error) {
	if err := validateTeamInputs(inputs); err != nil {
		return nil, err
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}

	teams := make([]*models.Team, len(inputs))
	for i, in := range inputs {
		teams[i] = &models.Team{
			TournamentID: tournamentID,
			Name:         strings.TrimSpace(in.Name),
			PlayerOne:    strings.TrimSpace(in.PlayerOne),
			PlayerTwo:    strings.TrimSpace(in.PlayerTwo),
		}
	}

	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.teamRepo.CreateBatch(ctx, exec, teams)
	})
	if err != nil {
		return nil, handleRepositoryError(err, "create teams")
	}

	s.logger.Info("teams registered", slog.String("tournament_id", tournamentID), slog.Int("count", len(teams)))
	return teams, nil
}

func (s *teamService) ListTeams(ctx context.Context, tournamentID string) ([]*models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err, "list teams")
	}
	return teams, nil
}

func (s *teamService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get team")
	}
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get team")
	}
	if input.Name != nil {
		team.Name = strings.TrimSpace(*input.Name)
	}
	if input.PlayerOne != nil {
		team.PlayerOne = strings.TrimSpace(*input.PlayerOne)
	}
	if input.PlayerTwo != nil {
		team.PlayerTwo = strings.TrimSpace(*input.PlayerTwo)
	}
	if err := validateTeam(team.Name, team.PlayerOne, team.PlayerTwo); err != nil {
		return nil, err
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, handleRepositoryError(err, "update team")
	}
	s.logger.Info("team updated", slog.String("team_id", team.ID), slog.String("tournament_id", team.TournamentID))
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id string) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, "delete team")
	}
	return nil
}
