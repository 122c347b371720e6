package repositories

import (
	"context"

	"github.com/atikur-24/daily-fit-server/internal/models"
)

type CartRepository interface {
	Create(ctx context.Context, item *models.CartItem) (*models.WriteResult, error)
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	ListByEmail(ctx context.Context, email string) ([]*models.CartItem, error)
	Delete(ctx context.Context, id string) (*models.WriteResult, error)
}
