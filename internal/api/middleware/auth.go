package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/playscore/playscore-backend/internal/config"
	"github.com/playscore/playscore-backend/internal/moderation"
	"github.com/playscore/playscore-backend/internal/utils"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.SendUnauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.SendUnauthorized(c, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.SendUnauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := moderation.ParseRole(c.GetString("user_role"))
		if role != moderation.RoleAdmin {
			utils.SendForbidden(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func ModeratorOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := moderation.ParseRole(c.GetString("user_role"))
		if !role.CanModerate() {
			utils.SendForbidden(c, "Moderator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func DeveloperOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := moderation.ParseRole(c.GetString("user_role"))
		if role != moderation.RoleDeveloper && role != moderation.RoleAdmin {
			utils.SendForbidden(c, "Developer access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentActor builds the moderation actor from the authenticated
// request context.
func CurrentActor(c *gin.Context) moderation.Actor {
	return moderation.Actor{
		ID:   c.GetUint("user_id"),
		Role: moderation.ParseRole(c.GetString("user_role")),
	}
}
