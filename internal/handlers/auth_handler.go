package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
	"github.com/atikur-24/daily-fit-server/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService services.AuthService, validator *validator.Validator, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		validator:   validator,
	}
}

// IssueToken signs the posted claims
// @Summary Issue access token
// @Description Signs the request body as token claims. The response body is the bare token string.
// @Tags auth
// @Accept json
// @Produce plain
// @Success 200 {string} string "token"
// @Failure 400 {object} ErrorResponse
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var claims map[string]interface{}
	if !h.bindJSON(c, &claims) {
		return
	}

	token, err := h.authService.IssueToken(claims)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.String(http.StatusOK, token)
}

// CasdoorLogin exchanges a Casdoor authorization code for an access token
// @Summary Casdoor login
// @Tags auth
// @Accept json
// @Produce json
// @Param login body validator.CasdoorLoginRequest true "Authorization code"
// @Success 200 {object} services.LoginResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "SSO not configured"
// @Router /auth/casdoor [post]
func (h *AuthHandler) CasdoorLogin(c *gin.Context) {
	var req validator.CasdoorLoginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if errs := h.validator.Validate(&req); errs != nil {
		h.handleServiceError(c, errs)
		return
	}

	h.LogRequest(c, "SSO login")

	result, err := h.authService.LoginWithCasdoor(c.Request.Context(), req.Code, req.State)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
