package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"martcore/internal/domain/identity"
	jwtpkg "martcore/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	jwtService *jwtpkg.Service
}

const (
	ctxAccountIDKey = "account_id"
	ctxStoreIDKey   = "store_id"
	ctxRoleKey      = "account_role"
)

func NewAuthMiddleware(jwtService *jwtpkg.Service) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		role, ok := identity.ParseRole(claims.Role)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ctxAccountIDKey, claims.AccountID)
		c.Set(ctxStoreIDKey, claims.StoreID)
		c.Set(ctxRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"account_id": claims.AccountID.String(),
			"role":       claims.Role,
		})
		c.Next()
	}
}

// RequireOperator gates store-configuration endpoints; customers cannot
// manage coupons, rates, or discount rules.
func (m *AuthMiddleware) RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			// Should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if !role.IsOperator() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not
// abort on failure. Guest checkout relies on this.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}
		role, ok := identity.ParseRole(claims.Role)
		if !ok {
			c.Next()
			return
		}

		c.Set(ctxAccountIDKey, claims.AccountID)
		c.Set(ctxStoreIDKey, claims.StoreID)
		c.Set(ctxRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"account_id": claims.AccountID.String(),
			"role":       claims.Role,
		})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxAccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetStoreID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxStoreIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetRole(c *gin.Context) (identity.Role, bool) {
	v, exists := c.Get(ctxRoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(identity.Role)
	return role, ok
}
