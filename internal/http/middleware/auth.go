package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/slotswapper-backend/internal/http/response"
	"github.com/yungbote/slotswapper-backend/internal/platform/ctxutil"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
	"github.com/yungbote/slotswapper-backend/internal/services"
)

type AuthMiddleware struct {
	log      *logger.Logger
	identity services.IdentityProvider
}

func NewAuthMiddleware(log *logger.Logger, identity services.IdentityProvider) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), identity: identity}
}

// RequireAuth accepts only an Authorization: Bearer header.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return am.require(false)
}

// RequireStreamAuth also accepts a token query parameter, since EventSource
// clients cannot set headers. The header wins when both are present.
func (am *AuthMiddleware) RequireStreamAuth() gin.HandlerFunc {
	return am.require(true)
}

func (am *AuthMiddleware) require(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, allowQuery)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthenticated", errors.New("missing or invalid token"))
			c.Abort()
			return
		}
		ctx, err := am.identity.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Authentication failed", "path", c.FullPath(), "error", err)
			response.RespondErr(c, err)
			c.Abort()
			return
		}
		if ctxutil.UserID(ctx) == 0 {
			response.RespondError(c, http.StatusUnauthorized, "unauthenticated", errors.New("missing or invalid token"))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context, allowQuery bool) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		if t := strings.TrimSpace(authHeader[7:]); t != "" {
			return t
		}
	}
	if allowQuery {
		return strings.TrimSpace(c.Query("token"))
	}
	return ""
}
