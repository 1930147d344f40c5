package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/duccv/auth-service/internal/auth"
	"github.com/duccv/auth-service/internal/constant"
)

// The scheme match is exact: "Bearer" followed by a single space,
// case-sensitive.
const bearerPrefix = "Bearer "

// VerifyBearerToken gates protected routes. It extracts the bearer token from
// the Authorization header, verifies it, and attaches the decoded claims to
// the request context. Every failure kind (missing header, wrong scheme,
// expired, malformed or forged token) produces the same 401 body; the kind is
// only logged. The middleware keeps no state and is safe for concurrent
// requests.
func VerifyBearerToken(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			zap.L().Warn("Authorization header is missing",
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, constant.UNAUTHORIZED)
			return
		}

		if !strings.HasPrefix(header, bearerPrefix) {
			zap.L().Warn("Invalid authorization scheme",
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, constant.UNAUTHORIZED)
			return
		}

		claims, err := tokens.Verify(header[len(bearerPrefix):])
		if err != nil {
			// failure kind stays in the logs only
			zap.L().Warn("Token verification failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, constant.UNAUTHORIZED)
			return
		}

		c.Set(constant.IdentityKey, claims)
		c.Next()
	}
}

// IdentityFromContext returns the claims attached by VerifyBearerToken.
func IdentityFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(constant.IdentityKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
