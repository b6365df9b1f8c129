package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inmueblesv-catalog/internal/middleware"
	"inmueblesv-catalog/internal/services"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

type toggleFavoriteRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

// ToggleFavorite godoc
// @Summary Toggle a favorite
// @Description Flip membership of a property in the caller's favorite set
// @Tags Favorites
// @Accept json
// @Produce json
// @Param body body toggleFavoriteRequest true "Property to toggle"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /favorites [post]
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	var req toggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.IdentityFromContext(c)
	ids, added, err := h.favoriteService.Toggle(c.Request.Context(), identity, req.PropertyID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"favorites": ids,
		"added":     added,
	})
}

// GetFavorites godoc
// @Summary List favorites
// @Description Get the caller's favorite set, optionally resolved to full records
// @Tags Favorites
// @Produce json
// @Param resolve query bool false "Return full property records instead of IDs"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /favorites [get]
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)

	if c.Query("resolve") == "true" {
		properties, err := h.favoriteService.ListProperties(c.Request.Context(), identity)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorites": properties})
		return
	}

	ids, err := h.favoriteService.ListIDs(c.Request.Context(), identity)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}
