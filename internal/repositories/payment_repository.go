package repositories

import (
	"context"

	"github.com/atikur-24/daily-fit-server/internal/models"
)

type PaymentFilters struct {
	Email *string
	Limit int
}

// PaymentRepository is append-only; records are never updated
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.PaymentRecord) (*models.WriteResult, error)
	List(ctx context.Context, filters PaymentFilters) ([]*models.PaymentRecord, error)
}

type ReviewRepository interface {
	List(ctx context.Context) ([]*models.Review, error)
}
