package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geoexplorer/geoexplorer-api/internal/container"
	handlers "github.com/geoexplorer/geoexplorer-api/internal/interface/http"
	"github.com/geoexplorer/geoexplorer-api/internal/interface/middleware"
	"github.com/geoexplorer/geoexplorer-api/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits; both are enumeration targets.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
	}
}
