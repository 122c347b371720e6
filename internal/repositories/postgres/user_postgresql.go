package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atikur-24/daily-fit-server/internal/cache"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
)

type UserPostgreSQL struct {
	db      *gorm.DB
	cache   *cache.CacheManager
	helpers *SharedHelpers
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &UserPostgreSQL{
		db:      db,
		cache:   cacheManager,
		helpers: NewSharedHelpers(db),
	}
}

func (r *UserPostgreSQL) Create(ctx context.Context, user *models.User) (*models.WriteResult, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return models.InsertResult(user.ID), nil
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// GetByEmail is on the hot path of every role check, so it goes through the cache
func (r *UserPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.cache.User.CacheOrExecute(ctx, cache.UserEmailKey(email), &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var found models.User
		if err := r.db.WithContext(ctx).Where("email = ?", email).First(&found).Error; err != nil {
			return nil, err
		}
		return &found, nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	query = r.helpers.ApplyPaginationAndSort(query, "created_at", "asc", filters.Limit, filters.Offset)

	var users []*models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserPostgreSQL) UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.WriteResult, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id", "email", "role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UpdateResult(0, 0), nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.Role == role {
		return models.UpdateResult(1, 0), nil
	}

	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user role: %w", res.Error)
	}

	cache.InvalidateUserCache(ctx, r.cache, user.Email)

	return models.UpdateResult(1, res.RowsAffected), nil
}

func (r *UserPostgreSQL) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id", "email").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DeleteResult(0), nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete user: %w", res.Error)
	}

	cache.InvalidateUserCache(ctx, r.cache, user.Email)

	return models.DeleteResult(res.RowsAffected), nil
}

func (r *UserPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
