package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jokebox/src/app/http/response"
	"jokebox/src/core/domain"
	"jokebox/src/core/usecase"
)

// userKey is the gin context key under which Auth stores the resolved user.
const userKey = "current_user"

// Auth enforces that the incoming request carries a valid session token.
//
// It reads the Authorization header, extracts the bearer token, validates
// signature and expiry, and resolves the subject to a live user. Any failure
// short-circuits with 401 before the handler (and any repository access)
// runs. On success the resolved user is stored in the context and retrieved
// with CurrentUser — handlers receive identity explicitly, never re-parse
// the token.
func Auth(auth *usecase.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header", requestID)
			c.Abort()
			return
		}

		tokenString, ok := bearerToken(header)
		if !ok {
			response.Unauthorized(c, "invalid authorization header", requestID)
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			c.Error(err)
			response.Unauthorized(c, "invalid or expired token", requestID)
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Auth.
// It is nil only on routes not guarded by the middleware.
func CurrentUser(c *gin.Context) *domain.User {
	if v, exists := c.Get(userKey); exists {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

// bearerToken extracts the credential from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
