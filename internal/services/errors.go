package services

import (
	"errors"
	"fmt"

	"github.com/atikur-24/daily-fit-server/internal/auth"
	"github.com/atikur-24/daily-fit-server/internal/payment"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

var (
	ErrUnauthorized     = auth.ErrUnauthorized
	ErrForbidden        = errors.New("forbidden access")
	ErrUserNotFound     = errors.New("user not found")
	ErrClassNotFound    = errors.New("class not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrPaymentGateway   = payment.ErrGateway
	ErrIdentityRejected = repositories.ErrIdentityRejected
	ErrSSODisabled      = errors.New("single sign-on is not configured")
)

type ValidationErrors = validator.ValidationErrors

// PermissionError describes a refused action. It matches ErrForbidden.
type PermissionError struct {
	UserEmail string
	Resource  string
	Action    string
	Reason    string
}

func NewPermissionError(userEmail, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserEmail: userEmail,
		Resource:  resource,
		Action:    action,
		Reason:    reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %s cannot %s %s: %s", e.UserEmail, e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve) || errors.Is(err, ErrValidationFailed)
}
