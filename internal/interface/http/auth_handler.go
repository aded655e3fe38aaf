package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/geoexplorer/geoexplorer-api/internal/application"
	"github.com/geoexplorer/geoexplorer-api/internal/interface/middleware"
	"github.com/geoexplorer/geoexplorer-api/pkg/validation"
)

// Response bodies are flat JSON fixed by the SPA contract; messages must not
// change without a coordinated frontend release.

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("register payload rejected")
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	case err == application.ErrEmailInUse:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
	default:
		h.Logger.WithError(err).Error("register failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("login payload rejected")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	token, _, u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user":  userView{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone},
		})
	case err == application.ErrInvalidCredentials:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	default:
		h.Logger.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// Me handles GET /api/auth/me. It returns the stored record minus the
// password hash; a valid token for a since-deleted user yields 404.
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.Profile(c.Request.Context(), uid)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"phone":     u.Phone,
			"favorites": u.Favorites,
		})
	case err == application.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	default:
		h.Logger.WithError(err).Error("fetch profile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
