package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
	"github.com/Dosada05/doubles-tournament/utils"
	"github.com/google/uuid"
)

type CreateTournamentInput struct {
	Name      string      `json:"name"`
	StartDate models.Date `json:"start_date"`
	EndDate   models.Date `json:"end_date"`
	IsActive  *bool       `json:"is_active"`
}

// UpdateTournamentInput changes a tournament. Nil fields are left as they are.
type UpdateTournamentInput struct {
	Name        *string      `json:"name"`
	StartDate   *models.Date `json:"start_date"`
	EndDate     *models.Date `json:"end_date"`
	IsActive    *bool        `json:"is_active"`
	IsFinalized *bool        `json:"is_finalized"`
}

// MinTournamentNameLength counts characters, not bytes.
const MinTournamentNameLength = 3

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	Get(ctx context.Context, idOrSlug string) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id string) error
}

type tournamentService struct {
	tournamentRepo  repositories.TournamentRepository
	slugMaxAttempts int
	logger          *slog.Logger
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, slugMaxAttempts int, logger *slog.Logger) TournamentService {
	if slugMaxAttempts <= 0 {
		slugMaxAttempts = 1
	}
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		slugMaxAttempts: slugMaxAttempts,
		logger:          loggerOrDefault(logger),
	}
}

func validateTournamentName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < MinTournamentNameLength {
		return "", fmt.Errorf("%w: tournament name must be at least %d characters", ErrValidationFailed, MinTournamentNameLength)
	}
	return name, nil
}

func validateTournamentDates(start, end models.Date) error {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return fmt.Errorf("%w: end date is before start date", ErrValidationFailed)
	}
	return nil
}

// Create derives the slug from the name. When it is taken, "-1", "-2" and so on are tried
// until slugMaxAttempts inserts have failed.
func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name, err := validateTournamentName(input.Name)
	if err != nil {
		return nil, err
	}
	base := utils.Slugify(name)
	if base == "" {
		return nil, fmt.Errorf("%w: tournament name must contain letters or digits", ErrValidationFailed)
	}
	if err := validateTournamentDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	slug := base
	for attempt := 1; ; attempt++ {
		t := &models.Tournament{
			Name:      name,
			Slug:      slug,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
			IsActive:  isActive,
		}
		err = s.tournamentRepo.Create(ctx, t)
		if err == nil {
			s.logger.Info("tournament created", slog.String("tournament_id", t.ID), slog.String("slug", t.Slug))
			return t, nil
		}
		if !errors.Is(err, repositories.ErrTournamentSlugConflict) {
			return nil, handleRepositoryError(err, "create tournament")
		}
		if attempt >= s.slugMaxAttempts {
			return nil, fmt.Errorf("%w: %q after %d attempts", ErrSlugConflict, base, attempt)
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}
}

// Get accepts either the tournament id or its slug.
func (s *tournamentService) Get(ctx context.Context, idOrSlug string) (*models.Tournament, error) {
	var (
		t   *models.Tournament
		err error
	)
	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		t, err = s.tournamentRepo.GetByID(ctx, idOrSlug)
	} else {
		t, err = s.tournamentRepo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	ts, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list tournaments")
	}
	return ts, nil
}

// Update changes the given fields. A renamed tournament keeps its slug so links stay valid.
func (s *tournamentService) Update(ctx context.Context, id string, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tournament")
	}

	if input.Name != nil {
		if t.Name, err = validateTournamentName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	if err := validateTournamentDates(t.StartDate, t.EndDate); err != nil {
		return nil, err
	}
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}
	if input.IsFinalized != nil {
		t.IsFinalized = *input.IsFinalized
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, handleRepositoryError(err, "update tournament")
	}
	s.logger.Info("tournament updated", slog.String("tournament_id", t.ID))
	return t, nil
}

func (s *tournamentService) Delete(ctx context.Context, id string) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, "delete tournament")
	}
	s.logger.Info("tournament deleted", slog.String("tournament_id", id))
	return nil
}
