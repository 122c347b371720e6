package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
)

type ClassHandler struct {
	BaseHandler
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  NewBaseHandler(logger),
		classService: classService,
	}
}

// ListClasses returns every class regardless of status
// @Summary List all classes
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /classes [get]
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// ListApproved is the public catalog
// @Summary List approved classes
// @Tags classes
// @Produce json
// @Success 200 {array} models.Class
// @Router /classes/approved [get]
func (h *ClassHandler) ListApproved(c *gin.Context) {
	classes, err := h.classService.ListApproved(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *ClassHandler) ListByInstructor(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	classes, err := h.classService.ListByInstructor(c.Request.Context(), requester, c.Param("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

// SubmitClass stores a new pending class for the requesting instructor
// @Summary Submit class
// @Tags classes
// @Accept json
// @Produce json
// @Param class body services.CreateClassRequest true "Class data"
// @Success 200 {object} models.WriteResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /classes [post]
func (h *ClassHandler) SubmitClass(c *gin.Context) {
	instructor, ok := h.requester(c)
	if !ok {
		return
	}

	var req services.CreateClassRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Submitting class", "instructor", instructor.Email)

	result, err := h.classService.Submit(c.Request.Context(), instructor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ClassHandler) ApproveClass(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Approving class", "class_id", id)

	result, err := h.classService.Approve(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ClassHandler) DenyClass(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Denying class", "class_id", id)

	result, err := h.classService.Deny(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AttachFeedback stores admin feedback on an existing class
// @Summary Attach feedback
// @Tags classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param feedback body services.FeedbackRequest true "Feedback"
// @Success 200 {object} models.WriteResult
// @Failure 404 {object} ErrorResponse
// @Router /classes/{id} [put]
func (h *ClassHandler) AttachFeedback(c *gin.Context) {
	var req services.FeedbackRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.classService.AttachFeedback(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting class", "class_id", id)

	result, err := h.classService.Remove(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
