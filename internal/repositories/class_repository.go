package repositories

import (
	"context"

	"github.com/atikur-24/daily-fit-server/internal/models"
)

type ClassFilters struct {
	Status          *models.ClassStatus
	InstructorEmail *string
}

type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) (*models.WriteResult, error)
	GetByID(ctx context.Context, id string) (*models.Class, error)
	List(ctx context.Context, filters ClassFilters) ([]*models.Class, error)

	// UpdateStatus reports matched=0 for an unknown id and modified=0
	// when the class already has the requested status
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.WriteResult, error)
	UpdateFeedback(ctx context.Context, id string, feedback string) (*models.WriteResult, error)
	Delete(ctx context.Context, id string) (*models.WriteResult, error)
}
