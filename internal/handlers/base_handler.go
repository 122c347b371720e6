package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/repositories"
	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
)

const (
	ctxUserEmail = "user_email"
	ctxClaims    = "claims"
	ctxUser      = "user"
	ctxUserRole  = "user_role"
)

type ErrorResponse = models.ErrorResponse

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs through the request-scoped logger
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, append(args, "path", c.FullPath())...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append(args, "error", err, "path", c.FullPath())...)
}

// RespondWithError writes the common error body and aborts the chain
func (h *BaseHandler) RespondWithError(c *gin.Context, status int, message string, details interface{}) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     true,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	})
}

// requesterEmail returns the email attached by AuthMiddleware
func (h *BaseHandler) requesterEmail(c *gin.Context) (string, bool) {
	email := c.GetString(ctxUserEmail)
	if email == "" {
		h.RespondWithError(c, http.StatusUnauthorized, "Unauthorized access", nil)
		return "", false
	}
	return email, true
}

func (h *BaseHandler) requester(c *gin.Context) (*models.User, bool) {
	if v, ok := c.Get(ctxUser); ok {
		if user, ok := v.(*models.User); ok && user != nil {
			return user, true
		}
	}
	h.RespondWithError(c, http.StatusForbidden, "Forbidden access", nil)
	return nil, false
}

func (h *BaseHandler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return false
	}
	return true
}

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", validationErrors)
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.RespondWithError(c, http.StatusForbidden, "Forbidden access", map[string]interface{}{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrValidationFailed):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrIdentityRejected):
		h.RespondWithError(c, http.StatusUnauthorized, "Unauthorized access", nil)
	case errors.Is(err, services.ErrForbidden):
		h.RespondWithError(c, http.StatusForbidden, "Forbidden access", nil)
	case errors.Is(err, services.ErrClassNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Class not found", nil)
	case errors.Is(err, services.ErrUserNotFound):
		h.RespondWithError(c, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, services.ErrSSODisabled):
		h.RespondWithError(c, http.StatusNotFound, "Single sign-on is not configured", nil)
	case repositories.IsNotFoundError(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", nil)
	case errors.Is(err, services.ErrPaymentGateway):
		h.LogError(c, err, "Payment gateway failure")
		h.RespondWithError(c, http.StatusBadGateway, "Payment gateway unavailable", nil)
	default:
		h.LogError(c, err, "Unhandled service error")
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
