package middlewares

import (
	"strings"

	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the bearer token through redis and loads
// the user's identity and property into the request context. Requests
// without a valid session get 401; the tenant guard then scopes every
// query to the resolved property.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")
		if token == "" {
			token = c.GetHeader("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing session token"})
			return
		}

		user, err := models.ResolveToken(c.Request.Context(), token)
		if err != nil {
			// Unattended callers authenticate with signed service tokens.
			user, err = models.ResolveServiceToken(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(401, gin.H{"error": "invalid session"})
				return
			}
		}

		ctx := c.Request.Context()
		ctx = utils.SetTokenInContext(ctx, token)
		ctx = utils.SetPropertyIdInContext(ctx, user.PropertyId)
		ctx = utils.SetUsernameInContext(ctx, user.Username)
		ctx = utils.SetUserIdInContext(ctx, user.ID)
		ctx = utils.SetUserNameInContext(ctx, user.FullName)
		if user.Role == models.UserRoleAdmin {
			ctx = utils.SetIsAdminInContext(ctx, true)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin guards admin-only routes. Must run after SessionMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, ok := utils.GetIsAdminFromContext(c.Request.Context())
		if !ok || !isAdmin {
			c.AbortWithStatusJSON(403, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}
