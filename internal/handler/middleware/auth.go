package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"bookswap/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxMemberIDKey   = "member_id"
	ctxMemberRoleKey = "member_role"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

// RequireAuth expects a Bearer token issued by the identity collaborator.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		memberID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxMemberIDKey, memberID)
		c.Set(ctxMemberRoleKey, role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetMemberID(c *gin.Context) (uuid.UUID, bool) {
	memberID, exists := c.Get(ctxMemberIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := memberID.(uuid.UUID)
	return id, ok
}

func GetMemberRole(c *gin.Context) (string, bool) {
	memberRole, exists := c.Get(ctxMemberRoleKey)
	if !exists {
		return "", false
	}

	role, ok := memberRole.(string)
	return role, ok
}
