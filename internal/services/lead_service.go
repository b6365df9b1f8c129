package services

import (
	"context"
	"net/http"

	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/validators"
	"inmueblesv-catalog/pkg/formrelay"
	"inmueblesv-catalog/pkg/logger"
)

// LeadService relays seller-contact submissions to the external form
// endpoint. Leads are never persisted locally.
type LeadService struct {
	relay     *formrelay.Client
	validator validators.LeadValidator
}

func NewLeadService(relay *formrelay.Client, validator validators.LeadValidator) *LeadService {
	return &LeadService{
		relay:     relay,
		validator: validator,
	}
}

// SubmitLead validates the form locally and forwards it. Validation
// failures never reach the relay endpoint.
func (s *LeadService) SubmitLead(ctx context.Context, lead *models.Lead) error {
	if err := s.validator.ValidateSubmit(lead); err != nil {
		return apperrors.NewAppError(err.Error(), err.Error(), apperrors.ErrCodeValidation, http.StatusBadRequest, err)
	}

	fields := map[string]string{
		"name":         lead.Name,
		"email":        lead.Email,
		"phone":        lead.Phone,
		"address":      lead.Address,
		"propertyType": lead.PropertyType,
		"description":  lead.Description,
		"price":        lead.Price,
	}
	repeated := map[string][]string{}
	if len(lead.ImageURLs) > 0 {
		repeated["imageUrls"] = lead.ImageURLs
	}

	if err := s.relay.Send(ctx, fields, repeated); err != nil {
		logger.GlobalLogger.Errorf("Lead relay failed for %s: %v", lead.Email, err)
		return err
	}
	logger.GlobalLogger.Printf("Lead relayed for %s", lead.Email)
	return nil
}
