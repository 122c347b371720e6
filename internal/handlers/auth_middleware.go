package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/auth"
	"github.com/atikur-24/daily-fit-server/internal/models"
	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
)

// AuthMiddleware guards routes with the bearer token issued by POST /jwt
type AuthMiddleware struct {
	BaseHandler
	authService   services.AuthService
	accessService services.AccessService
}

func NewAuthMiddleware(authService services.AuthService, accessService services.AccessService, logger utils.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		BaseHandler:   NewBaseHandler(logger),
		authService:   authService,
		accessService: accessService,
	}
}

// RequireAuthenticated verifies the token and attaches its email claim. It never touches the store.
func (am *AuthMiddleware) RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			am.RespondWithError(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}

		claims, err := am.authService.VerifyToken(token)
		if err != nil {
			utils.GetLogger(c, am.logger).Debug("Token rejected", "error", err)
			am.RespondWithError(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}

		email, ok := auth.EmailFromClaims(claims)
		if !ok {
			am.RespondWithError(c, http.StatusUnauthorized, "Unauthorized access", nil)
			return
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxUserEmail, email)
		c.Next()
	}
}

// RequireRoleMiddleware loads the requester and rejects roles outside the allowed set.
// It must run after RequireAuthenticated.
func (am *AuthMiddleware) RequireRoleMiddleware(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := am.requesterEmail(c)
		if !ok {
			return
		}

		user, err := am.accessService.RequireRoles(c.Request.Context(), email, roles...)
		if err != nil {
			if services.IsPermissionError(err) {
				am.RespondWithError(c, http.StatusForbidden, "Forbidden access", nil)
				return
			}
			am.handleServiceError(c, err)
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxUserRole, user.EffectiveRole())
		c.Next()
	}
}

func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return am.RequireRoleMiddleware(models.RoleAdmin)
}

func (am *AuthMiddleware) RequireAdminOrInstructor() gin.HandlerFunc {
	return am.RequireRoleMiddleware(models.RoleAdmin, models.RoleInstructor)
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
