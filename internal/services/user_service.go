package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atikur-24/daily-fit-server/internal/events"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Register creates a student account. An existing email is reported, not overwritten.
func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*RegisterResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	user := &models.User{
		Name:  req.Name,
		Email: email,
		Role:  models.RoleStudent,
		Photo: req.Photo,
	}

	var result *models.WriteResult
	existing := false
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		exists, err := tx.User().ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			existing = true
			return nil
		}

		result, err = tx.User().Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	if existing {
		return &RegisterResult{Existing: true}, nil
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", email)
	publish(ctx, s.publisher, s.logger, events.EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return &RegisterResult{WriteResult: result}, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.User().List(ctx, repositories.UserFilters{})
}

func (s *userService) ListInstructors(ctx context.Context) ([]*models.User, error) {
	role := models.RoleInstructor
	return s.repo.User().List(ctx, repositories.UserFilters{Role: &role})
}

func (s *userService) SetRole(ctx context.Context, id string, role models.UserRole) (*models.WriteResult, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidationFailed, role)
	}

	result, err := s.repo.User().UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	if result.ModifiedCount > 0 {
		s.logger.Info("User role changed", "user_id", id, "role", role)
		publish(ctx, s.publisher, s.logger, events.EventUserRoleChanged, map[string]interface{}{
			"user_id": id,
			"role":    role,
		})
	}

	return result, nil
}

func (s *userService) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	result, err := s.repo.User().Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.DeletedCount > 0 {
		s.logger.Info("User deleted", "user_id", id)
	}
	return result, nil
}
