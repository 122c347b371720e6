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

type ClassPostgreSQL struct {
	db      *gorm.DB
	cache   *cache.CacheManager
	helpers *SharedHelpers
}

func NewClassPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ClassRepository {
	return &ClassPostgreSQL{
		db:      db,
		cache:   cacheManager,
		helpers: NewSharedHelpers(db),
	}
}

func (r *ClassPostgreSQL) Create(ctx context.Context, class *models.Class) (*models.WriteResult, error) {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(class).Error; err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	cache.InvalidateClassCache(ctx, r.cache, class.ID)

	return models.InsertResult(class.ID), nil
}

func (r *ClassPostgreSQL) GetByID(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&class).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return &class, nil
}

func (r *ClassPostgreSQL) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, error) {
	// The public catalog is read far more often than it changes
	if filters.Status != nil && *filters.Status == models.ClassApproved && filters.InstructorEmail == nil {
		var classes []*models.Class
		err := r.cache.Class.CacheOrExecute(ctx, cache.ApprovedCatalogKey, &classes, cache.ClassCacheConfig.TTL, func() (interface{}, error) {
			return r.list(ctx, filters)
		})
		if err != nil {
			return nil, err
		}
		return classes, nil
	}

	return r.list(ctx, filters)
}

func (r *ClassPostgreSQL) list(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, error) {
	query := r.helpers.ApplyClassFilters(r.db.WithContext(ctx).Model(&models.Class{}), filters)
	query = r.helpers.ApplyPaginationAndSort(query, "created_at", "asc", 0, 0)

	classes := make([]*models.Class, 0)
	if err := query.Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

func (r *ClassPostgreSQL) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) (*models.WriteResult, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return models.UpdateResult(0, 0), nil
		}
		return nil, err
	}

	if current.Status == status {
		return models.UpdateResult(1, 0), nil
	}

	res := r.db.WithContext(ctx).Model(&models.Class{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update class status: %w", res.Error)
	}

	cache.InvalidateClassCache(ctx, r.cache, id)

	return models.UpdateResult(1, res.RowsAffected), nil
}

func (r *ClassPostgreSQL) UpdateFeedback(ctx context.Context, id string, feedback string) (*models.WriteResult, error) {
	res := r.db.WithContext(ctx).Model(&models.Class{}).Where("id = ?", id).Update("feedback", feedback)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update class feedback: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		cache.InvalidateClassCache(ctx, r.cache, id)
	}

	return models.UpdateResult(res.RowsAffected, res.RowsAffected), nil
}

func (r *ClassPostgreSQL) Delete(ctx context.Context, id string) (*models.WriteResult, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Class{})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to delete class: %w", res.Error)
	}

	if res.RowsAffected > 0 {
		cache.InvalidateClassCache(ctx, r.cache, id)
	}

	return models.DeleteResult(res.RowsAffected), nil
}
