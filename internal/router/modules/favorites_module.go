package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geoexplorer/geoexplorer-api/internal/container"
	handlers "github.com/geoexplorer/geoexplorer-api/internal/interface/http"
	"github.com/geoexplorer/geoexplorer-api/internal/interface/middleware"
	"github.com/geoexplorer/geoexplorer-api/pkg/helpers"
)

// FavoritesModule wires the favorites routes; every route sits behind the
// auth gate.
// GET    /api/favorites
// POST   /api/favorites/add
// DELETE /api/favorites/remove/:countryCode

type FavoritesModule struct {
	Handler *handlers.FavoritesHandler
	JWT     *helpers.JWTManager
}

func NewFavoritesModule(h *handlers.FavoritesHandler, jwt *helpers.JWTManager) *FavoritesModule {
	return &FavoritesModule{Handler: h, JWT: jwt}
}

func (m *FavoritesModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/favorites")
	auth.Use(middleware.Auth(m.JWT, container.GetLogger()))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("", m.Handler.List)
		auth.POST("/add", m.Handler.Add)
		auth.DELETE("/remove/:countryCode", m.Handler.Remove)
	}
}
