package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type ReviewPostgreSQL struct {
	db *gorm.DB
}

func NewReviewPostgreSQL(db *gorm.DB) repositories.ReviewRepository {
	return &ReviewPostgreSQL{db: db}
}

func (r *ReviewPostgreSQL) List(ctx context.Context) ([]*models.Review, error) {
	reviews := make([]*models.Review, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
