package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "ledger-chain.backend/internal/domain/errors"
	"ledger-chain.backend/internal/interfaces/http/response"
	"ledger-chain.backend/pkg/crypto"
	"ledger-chain.backend/pkg/jwt"
	"ledger-chain.backend/pkg/logger"
)

const (
	// ServiceKeyHeader carries the shared secret of trusted services
	ServiceKeyHeader = "X-Service-Key"
	// ServiceCallerKey is set when the request was admitted by service key
	ServiceCallerKey = "serviceCaller"
)

var checkSecret = crypto.CheckSecret

// ServiceAuthMiddleware admits callers presenting a key that matches the
// bcrypt keyHash. An empty hash disables the check (local development).
func ServiceAuthMiddleware(keyHash string) gin.HandlerFunc {
	if keyHash == "" {
		return func(c *gin.Context) {
			c.Set(ServiceCallerKey, true)
			c.Next()
		}
	}
	return func(c *gin.Context) {
		key := c.GetHeader(ServiceKeyHeader)
		if key == "" || !checkSecret(key, keyHash) {
			logger.Warn(c.Request.Context(), "Rejected service call")
			response.Abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "invalid service key")
			return
		}
		c.Set(ServiceCallerKey, true)
		c.Next()
	}
}

// ServiceOrIdentityMiddleware admits either a trusted service (when the
// service key header is present) or an identified user.
func ServiceOrIdentityMiddleware(keyHash string, jwtService *jwt.JWTService) gin.HandlerFunc {
	service := ServiceAuthMiddleware(keyHash)
	identity := IdentityMiddleware(jwtService)
	return func(c *gin.Context) {
		if c.GetHeader(ServiceKeyHeader) != "" {
			service(c)
			return
		}
		identity(c)
	}
}

// IsServiceCaller reports whether the request came from a trusted service
func IsServiceCaller(c *gin.Context) bool {
	return c.GetBool(ServiceCallerKey)
}
