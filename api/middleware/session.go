package middleware

import (
	"net/http"

	"github.com/example/storefront/config"
	domainsession "github.com/example/storefront/domain/session"
	infrasession "github.com/example/storefront/infrastructure/session"
	"github.com/example/storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OwnerKey is the gin context key carrying the session.Context.
const OwnerKey = "owner_context"

// Session issues the session cookie on first contact and resolves the
// signed-in user, so every handler below sees a complete owner context.
func Session(cfg *config.SessionConfig, auth infrasession.AuthSessions) gin.HandlerFunc {
	maxAge := int(cfg.TTL.Seconds())

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sessionID, maxAge, "/", "", false, true)
		}

		userID, err := auth.UserID(c.Request.Context(), sessionID)
		if err != nil {
			// Session backend down: treat the request as anonymous rather
			// than failing every endpoint.
			logger.Warn("session lookup failed",
				zap.String("session_id", sessionID),
				zap.Error(err))
			userID = ""
		}

		c.Set(OwnerKey, domainsession.Context{SessionID: sessionID, UserID: userID})
		c.Next()
	}
}

// Owner returns the session.Context set by the Session middleware.
func Owner(c *gin.Context) domainsession.Context {
	if value, exists := c.Get(OwnerKey); exists {
		if owner, ok := value.(domainsession.Context); ok {
			return owner
		}
	}
	return domainsession.Context{}
}

// RequireAuth aborts with 401 when the request has no signed-in user.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Owner(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "UNAUTHORIZED",
				"message": "authentication required",
				"code":    http.StatusUnauthorized,
			})
			return
		}
		c.Next()
	}
}
