package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type PaymentPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewPaymentPostgreSQL(db *gorm.DB) repositories.PaymentRepository {
	return &PaymentPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *PaymentPostgreSQL) Create(ctx context.Context, payment *models.PaymentRecord) (*models.WriteResult, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return models.InsertResult(payment.ID), nil
}

func (r *PaymentPostgreSQL) List(ctx context.Context, filters repositories.PaymentFilters) ([]*models.PaymentRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentRecord{})
	if filters.Email != nil {
		query = query.Where("email = ?", *filters.Email)
	}
	query = r.helpers.ApplyPaginationAndSort(query, "date", "desc", filters.Limit, 0)

	payments := make([]*models.PaymentRecord, 0)
	if err := query.Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
