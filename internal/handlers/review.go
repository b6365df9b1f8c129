package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inmueblesv-catalog/internal/middleware"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/services"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetReviews godoc
// @Summary List reviews
// @Description Get all reviews, newest first
// @Tags Reviews
// @Produce json
// @Success 200 {array} models.Review
// @Router /reviews [get]
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.ListReviews(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// SubmitReview godoc
// @Summary Submit a review
// @Description Create a review authored by the signed-in identity
// @Tags Reviews
// @Accept json
// @Produce json
// @Param body body models.ReviewInput true "Rating and text"
// @Security BearerAuth
// @Success 201 {object} models.Review
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity := middleware.IdentityFromContext(c)
	review, err := h.reviewService.SubmitReview(c.Request.Context(), identity, &input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview godoc
// @Summary Delete a review
// @Description Remove a review the caller authored
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if err := h.reviewService.DeleteReview(c.Request.Context(), identity, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
