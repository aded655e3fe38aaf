package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geoexplorer/geoexplorer-api/internal/application"
	"github.com/geoexplorer/geoexplorer-api/internal/container"
	"github.com/geoexplorer/geoexplorer-api/internal/infrastructure/mongodb"
	handlers "github.com/geoexplorer/geoexplorer-api/internal/interface/http"
	"github.com/geoexplorer/geoexplorer-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup to wire everything up.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	repo := mongodb.NewUserRepository(container.GetMongo())

	authSvc := application.NewAuthService(
		repo,
		container.GetJWT(),
		logger,
		container.GetRabbitPub(),
		cfg.AppName,
		cfg.MailSendEnabled,
	)
	favSvc := application.NewFavoritesService(repo, logger)

	authHandler := handlers.NewAuthHandler(authSvc, logger)
	favHandler := handlers.NewFavoritesHandler(favSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewFavoritesModule(favHandler, container.GetJWT()))

	// Liveness probe used by the SPA during local development.
	r.API.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "Server is up and running!")
	})
}
