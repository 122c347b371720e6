package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
)

type UserHandler struct {
	BaseHandler
	userService   services.UserService
	accessService services.AccessService
}

func NewUserHandler(userService services.UserService, accessService services.AccessService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler:   NewBaseHandler(logger),
		userService:   userService,
		accessService: accessService,
	}
}

// ListUsers lists every registered user
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListInstructors is the public instructor directory
// @Summary List instructors
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users/instructor [get]
func (h *UserHandler) ListInstructors(c *gin.Context) {
	users, err := h.userService.ListInstructors(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// RegisterUser creates a student account, or reports an existing one
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.RegisterUserRequest true "User profile"
// @Success 200 {object} models.WriteResult
// @Failure 400 {object} ErrorResponse
// @Router /users [post]
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if result.Existing {
		c.JSON(http.StatusOK, models.MessageResponse{Message: "User already exists"})
		return
	}

	c.JSON(http.StatusOK, result.WriteResult)
}

func (h *UserHandler) MakeAdmin(c *gin.Context) {
	h.setRole(c, models.RoleAdmin)
}

func (h *UserHandler) MakeInstructor(c *gin.Context) {
	h.setRole(c, models.RoleInstructor)
}

func (h *UserHandler) setRole(c *gin.Context, role models.UserRole) {
	id := c.Param("id")
	h.LogRequest(c, "Changing user role", "user_id", id, "role", role)

	result, err := h.userService.SetRole(c.Request.Context(), id, role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteUser removes a user
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.WriteResult
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	h.LogRequest(c, "Deleting user", "user_id", id)

	result, err := h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CheckAdmin answers {admin: bool} for the requester's own email
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	admin, err := h.accessService.IsAdmin(c.Request.Context(), requester, c.Param("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AdminCheckResponse{Admin: admin})
}

// CheckInstructor answers {instructor: bool} for the requester's own email
func (h *UserHandler) CheckInstructor(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	instructor, err := h.accessService.IsInstructor(c.Request.Context(), requester, c.Param("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InstructorCheckResponse{Instructor: instructor})
}
