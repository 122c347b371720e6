package repositories

import (
	"context"

	"github.com/atikur-24/daily-fit-server/internal/models"
)

// UserFilters defines filters for user queries
type UserFilters struct {
	Role   *models.UserRole
	Limit  int // Page size, 0 means no limit
	Offset int
}

// UserRepository stores registered users keyed by email
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.WriteResult, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters UserFilters) ([]*models.User, error)

	// UpdateRole sets the role of the user with the given id
	UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.WriteResult, error)
	Delete(ctx context.Context, id string) (*models.WriteResult, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
