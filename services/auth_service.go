package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/doubles-tournament/models"
	"github.com/Dosada05/doubles-tournament/repositories"
	"github.com/Dosada05/doubles-tournament/utils"
	"github.com/golang-jwt/jwt/v4"
)

const (
	MinPasswordLength = 8
	TokenTTL          = 24 * time.Hour
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserInput struct {
	Email    string
	Password string
	Role     models.UserRole
}

type AuthService interface {
	// Login checks the credentials and returns a signed HS256 token.
	Login(ctx context.Context, input LoginInput) (string, *models.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	now       func() time.Time
	logger    *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
		logger:    loggerOrDefault(logger),
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrValidationFailed)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, handleRepositoryError(err, "get user")
	}
	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	// Деактивированный пользователь не отличается от неизвестного.
	if !user.IsActive {
		s.logger.Info("login rejected for inactive user", slog.String("user_id", user.ID))
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(TokenTTL).Unix(),
		"iat":     now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *authService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidationFailed)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: at least %d characters", ErrPasswordTooShort, MinPasswordLength)
	}
	role := input.Role
	if role == "" {
		role = models.RoleViewer
	}
	if role != models.RoleAdmin && role != models.RoleViewer {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, role)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hash, Role: role, IsActive: true}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, handleRepositoryError(err, "create user")
	}
	s.logger.Info("user created", slog.String("user_id", user.ID), slog.String("role", string(role)))
	return user, nil
}
