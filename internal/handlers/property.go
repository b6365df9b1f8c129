package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/services"
)

type PropertyHandler struct {
	catalogService  *services.CatalogService
	slideIntervalMS int
}

func NewPropertyHandler(catalogService *services.CatalogService, slideIntervalMS int) *PropertyHandler {
	return &PropertyHandler{
		catalogService:  catalogService,
		slideIntervalMS: slideIntervalMS,
	}
}

// GetProperties godoc
// @Summary List catalog properties
// @Description Get one page of the catalog, filtered by search term and category
// @Tags Properties
// @Accept json
// @Produce json
// @Param search query string false "Case-insensitive search over address and description"
// @Param category query string false "Category filter" default(all)
// @Param page query int false "1-indexed page, clamped to the valid range" default(1)
// @Success 200 {object} models.PaginatedPropertiesResponse
// @Failure 400 {object} map[string]string
// @Router /properties [get]
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	search := c.Query("search")
	category := c.DefaultQuery("category", "all")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	response, err := h.catalogService.ListProperties(c.Request.Context(), search, category, page)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetFeatured godoc
// @Summary List featured properties
// @Description Get the carousel slide set plus the auto-advance interval
// @Tags Properties
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /properties/featured [get]
func (h *PropertyHandler) GetFeatured(c *gin.Context) {
	featured, err := h.catalogService.FeaturedProperties(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":           featured,
		"slideIntervalMs": h.slideIntervalMS,
	})
}

// GetPropertyByID godoc
// @Summary Get property by ID
// @Description Get a single property by its ID
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} models.Property
// @Failure 404 {object} map[string]string
// @Router /properties/{id} [get]
func (h *PropertyHandler) GetPropertyByID(c *gin.Context) {
	property, err := h.catalogService.GetPropertyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// CreateProperty godoc
// @Summary Create a new property
// @Description Create a new property record
// @Tags Properties
// @Accept json
// @Produce json
// @Param property body models.Property true "Property data"
// @Security BearerAuth
// @Success 201 {object} models.Property
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.CreateProperty(c.Request.Context(), &property); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, property)
}
