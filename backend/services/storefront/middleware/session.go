package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

const (
	SessionCookie = "session"
	sessionKey    = "session"
)

// SessionParser verifies a session token.
type SessionParser interface {
	Parse(token string) (*models.Session, error)
}

// Session decodes the session cookie on every request. A missing, forged or
// expired cookie leaves the request anonymous; it never fails the request.
func Session(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			if session, err := parser.Parse(token); err == nil {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}

// CurrentSession returns the decoded session, or nil for anonymous requests.
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	return nil
}

// AdminOnly sends anyone without an admin session back to the storefront.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).IsAdmin() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
