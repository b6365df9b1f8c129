package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/services"
)

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// SubmitLead godoc
// @Summary Submit a seller-contact lead
// @Description Validate and relay a sell-your-property form to the form endpoint
// @Tags Leads
// @Accept json
// @Accept mpfd
// @Produce json
// @Param body body models.Lead true "Lead data"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /leads [post]
func (h *LeadHandler) SubmitLead(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBind(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.leadService.SubmitLead(c.Request.Context(), &lead); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "relayed"})
}
