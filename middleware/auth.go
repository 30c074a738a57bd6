package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/fidelity-club/fidelity-be/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token de autorización requerido"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(*Claims); ok {
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)
		}

		c.Next()
	}
}

// RoleAllowed is the authorization policy: a role passes when it appears
// in the required set, and an empty set means any authenticated user.
func RoleAllowed(role models.UserRole, required ...models.UserRole) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// RequireRoles gates a route group to the given roles. It assumes
// AuthMiddleware already ran.
func RequireRoles(required ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists || !RoleAllowed(role.(models.UserRole), required...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos"})
			c.Abort()
			return
		}
		c.Next()
	}
}
