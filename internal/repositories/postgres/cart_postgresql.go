package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type CartPostgreSQL struct {
	db *gorm.DB
}

func NewCartPostgreSQL(db *gorm.DB) repositories.CartRepository {
	return &CartPostgreSQL{db: db}
}

func (r *CartPostgreSQL) Create(ctx context.Context, item *models.CartItem) (*models.WriteResult, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return models.InsertResult(item.ID), nil
}

func (r *CartPostgreSQL) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return &item, nil
}

func (r *CartPostgreSQL) ListByEmail(ctx context.Context, email string) ([]*models.CartItem, error) {
	items := make([]*models.CartItem, 0)
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

func (r *CartPostgreSQL) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	return models.DeleteResult(res.RowsAffected), nil
}
