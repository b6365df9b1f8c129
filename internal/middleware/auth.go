package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/pkg/auth"
)

// AuthMiddleware validates the bearer token and puts the caller's
// identity on the request context. Protected routes rely on it;
// handlers read the identity back via IdentityFromContext.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"message": apperrors.MsgAuthRequired,
				"code":    apperrors.ErrCodeAuthRequired,
			}})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"message": apperrors.MsgAuthRequired,
				"code":    apperrors.ErrCodeAuthRequired,
			}})
			c.Abort()
			return
		}

		claims, err := auth.ValidateJWT(parts[1], jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"message": apperrors.MsgAuthRequired,
				"code":    apperrors.ErrCodeAuthRequired,
			}})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("display_name", claims.DisplayName)
		c.Set("email", claims.Email)
		c.Set("photo_url", claims.PhotoURL)
		c.Next()
	}
}

// IdentityFromContext rebuilds the signed-in identity set by
// AuthMiddleware. It returns nil for unauthenticated requests.
func IdentityFromContext(c *gin.Context) *models.Identity {
	userID := c.GetString("user_id")
	if userID == "" {
		return nil
	}
	return &models.Identity{
		ID:          userID,
		DisplayName: c.GetString("display_name"),
		Email:       c.GetString("email"),
		PhotoURL:    c.GetString("photo_url"),
	}
}
