package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ospteam/osp-backend/internal/config"
	"github.com/ospteam/osp-backend/internal/model"
	"github.com/ospteam/osp-backend/internal/response"
)

// ContextKeyRole is the Gin context key for the caller role.
const ContextKeyRole = "role"

// RequireAPIKey validates the static admin API key from the x-api-key header
// and attaches the Admin role to the request context.
func RequireAPIKey(cfg *config.Config) gin.HandlerFunc {
	secret := []byte(cfg.AdminAPIKey)

	return func(c *gin.Context) {
		key := c.GetHeader("x-api-key")
		if key == "" || subtle.ConstantTimeCompare([]byte(key), secret) != 1 {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAPIKeyInvalid)
			return
		}

		c.Set(ContextKeyRole, model.RoleAdmin)
		c.Next()
	}
}

// RequireRole checks that an upstream middleware attached the given role.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		attached, ok := GetRole(c)
		if !ok {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrRoleMissing)
			return
		}

		if attached != role {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}

		c.Next()
	}
}

// GetRole extracts the caller role from the Gin context.
func GetRole(c *gin.Context) (model.Role, bool) {
	v, exists := c.Get(ContextKeyRole)
	if !exists {
		return "", false
	}
	role, ok := v.(model.Role)
	return role, ok
}
