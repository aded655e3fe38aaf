package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/geoexplorer/geoexplorer-api/internal/application"
	"github.com/geoexplorer/geoexplorer-api/internal/interface/middleware"
)

type FavoritesHandler struct {
	Svc    *application.FavoritesService
	Logger *logrus.Logger
}

func NewFavoritesHandler(svc *application.FavoritesService, logger *logrus.Logger) *FavoritesHandler {
	return &FavoritesHandler{Svc: svc, Logger: logger}
}

type addFavoriteRequest struct {
	CountryCode string `json:"countryCode"`
}

// List handles GET /api/favorites
func (h *FavoritesHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	favorites, err := h.Svc.List(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// Add handles POST /api/favorites/add. Codes already present are accepted
// without error and without a second entry.
func (h *FavoritesHandler) Add(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CountryCode) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Country code is required"})
		return
	}
	favorites, err := h.Svc.Add(c.Request.Context(), uid, req.CountryCode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// Remove handles DELETE /api/favorites/remove/:countryCode. Removing a code
// that is not in the set is a 400, not a no-op.
func (h *FavoritesHandler) Remove(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	code := c.Param("countryCode")
	favorites, err := h.Svc.Remove(c.Request.Context(), uid, code)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *FavoritesHandler) fail(c *gin.Context, err error) {
	switch err {
	case application.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case application.ErrNotInFavorites:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Country not found in favorites"})
	default:
		h.Logger.WithError(err).Error("favorites operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
