package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
)

type UserListFilter struct {
	Email    string
	IsActive *bool
}

// UpdateUserInput changes a user's access. Nil fields are left as they are.
type UpdateUserInput struct {
	Role     *models.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
}

type UserService interface {
	ListUsers(ctx context.Context, filter UserListFilter) ([]*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateUser applies an admin's change to another account. actorID is the admin making it.
	UpdateUser(ctx context.Context, actorID, id string, input UpdateUserInput) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   loggerOrDefault(logger),
	}
}

func (s *userService) ListUsers(ctx context.Context, filter UserListFilter) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx, repositories.UserFilter{
		Email:    strings.ToLower(strings.TrimSpace(filter.Email)),
		IsActive: filter.IsActive,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list users")
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get user")
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID, id string, input UpdateUserInput) (*models.User, error) {
	if input.Role != nil && *input.Role != models.RoleAdmin && *input.Role != models.RoleViewer {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, *input.Role)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get user")
	}

	// Без этой проверки последний админ может запереть себя снаружи.
	if user.ID == actorID {
		if input.Role != nil && *input.Role != user.Role {
			return nil, ErrSelfUpdate
		}
		if input.IsActive != nil && !*input.IsActive {
			return nil, ErrSelfUpdate
		}
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, handleRepositoryError(err, "update user")
	}
	s.logger.Info("user updated",
		slog.String("user_id", user.ID),
		slog.String("actor_id", actorID),
		slog.String("role", string(user.Role)),
		slog.Bool("is_active", user.IsActive))
	return user, nil
}
