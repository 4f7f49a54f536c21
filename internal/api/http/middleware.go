package http

import (
	"net/http"
	"strings"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

const contextIdentityKey = "identity"

// AuthMiddleware verifies the bearer token on every request and stores
// the resulting identity in the gin context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header format must be Bearer {token}"})
			return
		}

		identity, err := tokens.Verify(parts[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		ctx.Set(contextIdentityKey, identity)
		ctx.Next()
	}
}

func currentIdentity(ctx *gin.Context) (*auth.Identity, bool) {
	value, ok := ctx.Get(contextIdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*auth.Identity)
	return identity, ok
}

// bearerToken extracts the raw token from the Authorization header, for
// handlers that forward it to token-verifying services.
func bearerToken(ctx *gin.Context) string {
	parts := strings.SplitN(ctx.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
