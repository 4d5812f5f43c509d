package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/middleware"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/services"
)

// SessionIssuer signs a session for a user.
type SessionIssuer interface {
	Issue(user *models.User) (string, time.Time, error)
}

type AuthController struct {
	authService  services.AuthService
	sessions     SessionIssuer
	secureCookie bool
}

func NewAuthController(authService services.AuthService, sessions SessionIssuer, secureCookie bool) *AuthController {
	return &AuthController{authService: authService, sessions: sessions, secureCookie: secureCookie}
}

// Register handles POST /auth/register.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login handles POST /auth/login and sets the session cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	token, _, err := ac.sessions.Issue(user)
	if err != nil {
		apperrors.Respond(c, apperrors.Internal("Login failed", err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(services.SessionTTL.Seconds()), "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"user": models.Session{ID: user.ID, Name: user.Name, Role: user.Role}})
}

// Logout handles POST /auth/logout.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ac.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me handles GET /auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": session})
}
