package services

import (
	"context"
	"fmt"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type reviewService struct {
	repo repositories.Repository
}

func NewReviewService(repo repositories.Repository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) List(ctx context.Context) ([]*models.Review, error) {
	reviews, err := s.repo.Review().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
