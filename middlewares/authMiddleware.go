package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/returnukhti/resi_backend/utils"
)

// AuthMiddleware requires a valid `Authorization: Bearer <jwt>` header and
// puts the token's user id + email into the request context. Every resi route
// hangs off this; handlers then pass the user id down explicitly.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			c.Abort()
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization format must be Bearer <token>"})
			c.Abort()
			return
		}

		validate, err := utils.JwtValidate(parts[1])
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := validate.Claims.(*utils.JwtCustomClaim)
		if !ok || claims.ID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), parts[1])
		ctx = utils.SetUserIdInContext(ctx, claims.ID)
		ctx = utils.SetEmailInContext(ctx, claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
