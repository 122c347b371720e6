package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type accessService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAccessService(repo repositories.Repository, logger *slog.Logger) AccessService {
	return &accessService{
		repo:   repo,
		logger: logger,
	}
}

func (s *accessService) RequireRoles(ctx context.Context, email string, roles ...models.UserRole) (*models.User, error) {
	if email == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewPermissionError(email, "route", "access", "user is not registered")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !roleAllowed(user.EffectiveRole(), roles) {
		s.logger.Warn("Role check failed", "email", email, "role", user.EffectiveRole(), "allowed", roles)
		return nil, NewPermissionError(email, "route", "access", "role "+string(user.EffectiveRole())+" not allowed")
	}

	return user, nil
}

func (s *accessService) HasAnyRole(ctx context.Context, email string, roles ...models.UserRole) (bool, error) {
	_, err := s.RequireRoles(ctx, email, roles...)
	if err == nil {
		return true, nil
	}
	if IsPermissionError(err) {
		return false, nil
	}
	return false, err
}

func (s *accessService) IsAdmin(ctx context.Context, requesterEmail, email string) (bool, error) {
	return s.isSelfWithRole(ctx, requesterEmail, email, models.RoleAdmin)
}

func (s *accessService) IsInstructor(ctx context.Context, requesterEmail, email string) (bool, error) {
	return s.isSelfWithRole(ctx, requesterEmail, email, models.RoleInstructor)
}

// isSelfWithRole never touches the store when asked about somebody else
func (s *accessService) isSelfWithRole(ctx context.Context, requesterEmail, email string, role models.UserRole) (bool, error) {
	if requesterEmail == "" || requesterEmail != email {
		return false, nil
	}
	return s.HasAnyRole(ctx, requesterEmail, role)
}

// roleAllowed is an explicit membership test over the allowed set
func roleAllowed(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
