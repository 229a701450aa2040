package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/response"
	"ledger-chain.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDHeader carries the caller's id when a gateway already authenticated it
	UserIDHeader = "X-User-ID"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// IdentityMiddleware resolves the calling user. A bearer token wins; then
// the X-User-ID header; then the userId or fromUserId query parameter.
// Requests with no resolvable identity are rejected with 401.
func IdentityMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader(AuthorizationHeader); authHeader != "" && jwtService != nil {
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid authorization format. Use: Bearer <token>")
				return
			}
			claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, jwt.ErrExpiredToken) {
					msg = "Token has expired"
				}
				response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, msg)
				return
			}
			c.Set(UserIDKey, claims.UserID)
			c.Set(UserRoleKey, claims.Role)
			c.Next()
			return
		}

		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			raw = c.Query("userId")
		}
		if raw == "" {
			raw = c.Query("fromUserId")
		}
		if raw == "" {
			response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "user identity is required")
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "user identity is invalid")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}
