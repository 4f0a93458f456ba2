package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navidh0/librarian/internal/config"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	rateLimiter    *LoginLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, cfg config.Auth) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		rateLimiter:    NewLoginLimiter(cfg.MaxLoginAttempts, cfg.RateLimitWindow),
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.POST("/signup", ac.Signup)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.GET("/logout", ac.Logout) // Support GET for simple logout links
}

type signupForm struct {
	Username        string `form:"username" json:"username"`
	FullName        string `form:"full_name" json:"full_name"`
	Role            string `form:"role" json:"role"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm"`
}

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Signup creates a member account and logs it in.
// POST /signup
//
// A posted role value is accepted but ignored: every signup is a member.
// Roles are immutable by the user; admin accounts come from provisioning.
func (ac *AuthController) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := ac.service.Signup(form.Username, form.FullName, form.Password, form.PasswordConfirm)
	if err != nil {
		field, ok := signupFieldFor(err)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": gin.H{field: err.Error()},
		})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "signup successful", "user": user})
}

// signupFieldFor maps signup validation errors to the offending field.
func signupFieldFor(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrUsernameRequired),
		errors.Is(err, ErrUsernameInvalid),
		errors.Is(err, ErrUserExists):
		return "username", true
	case errors.Is(err, ErrPasswordRequired),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrPasswordTooLong):
		return "password", true
	case errors.Is(err, ErrPasswordMismatch):
		return "password_confirm", true
	}
	return "", false
}

// Login authenticates credentials and starts a session.
// POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	clientIP := c.ClientIP()
	if !ac.rateLimiter.Allow(clientIP, form.Username) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, please try again later"})
		return
	}

	user, err := ac.service.Authenticate(form.Username, form.Password)
	if err != nil {
		ac.rateLimiter.RecordFailure(clientIP, form.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	ac.rateLimiter.RecordSuccess(clientIP, form.Username)

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}

// Logout destroys the session.
// POST /logout (GET accepted for plain logout links)
func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.sessionManager.DestroySession(c.Request)

	if isAPIRequest(c) {
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
