package services

import (
	"context"
	"log/slog"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

type cartService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCartService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) CartService {
	return &cartService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// AddToCart always inserts a new row; the same class may sit in a cart more than once
func (s *cartService) AddToCart(ctx context.Context, requesterEmail string, req *AddToCartRequest) (*models.WriteResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := req.Email
	if email == "" {
		email = requesterEmail
	}
	if email != requesterEmail {
		return nil, NewPermissionError(requesterEmail, "cart", "add", "cart belongs to another user")
	}

	item := &models.CartItem{
		Email:          email,
		ClassID:        req.ClassID,
		Name:           req.Name,
		Image:          req.Image,
		InstructorName: req.InstructorName,
		Price:          req.Price,
	}

	result, err := s.repo.Cart().Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Cart item added", "cart_id", item.ID, "class_id", item.ClassID, "email", email)
	return result, nil
}

func (s *cartService) ListCart(ctx context.Context, requesterEmail, targetEmail string) ([]*models.CartItem, error) {
	if targetEmail == "" {
		return []*models.CartItem{}, nil
	}
	if targetEmail != requesterEmail {
		return nil, NewPermissionError(requesterEmail, "cart", "read", "cart belongs to another user")
	}
	return s.repo.Cart().ListByEmail(ctx, targetEmail)
}

// RemoveFromCart is idempotent. An item owned by someone else is refused.
func (s *cartService) RemoveFromCart(ctx context.Context, requesterEmail, id string) (*models.WriteResult, error) {
	item, err := s.repo.Cart().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return models.DeleteResult(0), nil
		}
		return nil, err
	}
	if item.Email != requesterEmail {
		return nil, NewPermissionError(requesterEmail, "cart", "delete", "cart belongs to another user")
	}

	return s.repo.Cart().Delete(ctx, id)
}
