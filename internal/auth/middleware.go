package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/garage-booking-backend/internal/logging"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/garage-booking-backend/internal/pkg/response"
)

// Authenticate attaches a Principal to the request when a valid
// "Authorization: Bearer <token>" header is present. It never rejects:
// whether a principal is required is decided by the Gate or RequirePrincipal.
func Authenticate(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") {
			c.Next()
			return
		}

		claims, err := jwtManager.ParseAndValidate(strings.TrimSpace(tokenStr))
		if err != nil {
			logging.FromContext(c.Request.Context()).Debug().Err(err).Msg("ignoring invalid bearer token")
			c.Next()
			return
		}

		p := Principal{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// RequirePrincipal rejects requests without a principal with 401.
func RequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			response.Error(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
