package services

import (
	"context"
	"log/slog"

	"github.com/atikur-24/daily-fit-server/internal/events"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

type classService struct {
	repo      repositories.Repository
	access    AccessService
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(repo repositories.Repository, access AccessService, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ClassService {
	return &classService{
		repo:      repo,
		access:    access,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Submit stores a new class owned by instructor. Status always starts as pending.
func (s *classService) Submit(ctx context.Context, instructor *models.User, req *CreateClassRequest) (*models.WriteResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	instructorName := req.InstructorName
	if instructorName == "" {
		instructorName = instructor.Name
	}

	class := &models.Class{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  instructorName,
		InstructorEmail: instructor.Email,
		AvailableSeats:  req.AvailableSeats,
		Price:           req.Price,
		Status:          models.ClassPending,
	}

	result, err := s.repo.Class().Create(ctx, class)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Class submitted", "class_id", class.ID, "instructor", instructor.Email)
	publish(ctx, s.publisher, s.logger, events.EventClassSubmitted, map[string]interface{}{
		"class_id":   class.ID,
		"instructor": instructor.Email,
	})

	return result, nil
}

func (s *classService) Approve(ctx context.Context, id string) (*models.WriteResult, error) {
	return s.setStatus(ctx, id, models.ClassApproved, events.EventClassApproved)
}

func (s *classService) Deny(ctx context.Context, id string) (*models.WriteResult, error) {
	return s.setStatus(ctx, id, models.ClassDenied, events.EventClassDenied)
}

// setStatus applies the transition unconditionally; the same status twice is a no-op
func (s *classService) setStatus(ctx context.Context, id string, status models.ClassStatus, eventType events.EventType) (*models.WriteResult, error) {
	result, err := s.repo.Class().UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	if result.ModifiedCount > 0 {
		s.logger.Info("Class status changed", "class_id", id, "status", status)
		publish(ctx, s.publisher, s.logger, eventType, map[string]interface{}{
			"class_id": id,
			"status":   status,
		})
	}

	return result, nil
}

func (s *classService) AttachFeedback(ctx context.Context, id string, req *FeedbackRequest) (*models.WriteResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	result, err := s.repo.Class().UpdateFeedback(ctx, id, req.Message)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrClassNotFound
	}

	s.logger.Info("Feedback attached", "class_id", id)
	return result, nil
}

func (s *classService) ListAll(ctx context.Context) ([]*models.Class, error) {
	return s.repo.Class().List(ctx, repositories.ClassFilters{})
}

func (s *classService) ListApproved(ctx context.Context) ([]*models.Class, error) {
	status := models.ClassApproved
	return s.repo.Class().List(ctx, repositories.ClassFilters{Status: &status})
}

// ListByInstructor returns the classes submitted by email. Only the instructor or an admin may read them.
func (s *classService) ListByInstructor(ctx context.Context, requesterEmail, email string) ([]*models.Class, error) {
	if email == "" {
		return []*models.Class{}, nil
	}

	if requesterEmail != email {
		isAdmin, err := s.access.HasAnyRole(ctx, requesterEmail, models.RoleAdmin)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, NewPermissionError(requesterEmail, "classes", "list", "not the instructor")
		}
	}

	return s.repo.Class().List(ctx, repositories.ClassFilters{InstructorEmail: &email})
}

func (s *classService) Remove(ctx context.Context, id string) (*models.WriteResult, error) {
	result, err := s.repo.Class().Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if result.DeletedCount > 0 {
		s.logger.Info("Class deleted", "class_id", id)
		publish(ctx, s.publisher, s.logger, events.EventClassDeleted, map[string]interface{}{
			"class_id": id,
		})
	}

	return result, nil
}
