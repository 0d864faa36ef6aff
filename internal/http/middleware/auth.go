package middleware

import (
	"context"
	"net/http"
	"strings"

	"campbook/internal/domain"
	"campbook/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
	claimsKey = "claims"
)

// TokenParser verifies a bearer token. services.AuthService implements it.
type TokenParser interface {
	ParseToken(ctx context.Context, raw string) (*services.Claims, error)
}

// AuthRequired rejects requests without a valid bearer token.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortError(c, http.StatusUnauthorized, domain.CodeUnauthorized, "missing bearer token")
			return
		}

		claims, err := parser.ParseToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if domain.IsUnauthorized(err) {
				abortError(c, http.StatusUnauthorized, domain.CodeUnauthorized, err.Error())
				return
			}
			abortError(c, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRoles must run after AuthRequired.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(roleKey)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abortError(c, http.StatusForbidden, domain.CodeForbidden, "insufficient role")
	}
}

// GetClaims returns the verified token claims or nil.
func GetClaims(c *gin.Context) *services.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*services.Claims); ok {
			return claims
		}
	}
	return nil
}

func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"error":      gin.H{"code": code, "message": message},
		"request_id": GetRequestID(c),
	})
}
