package validators

import (
	"errors"
	"regexp"
	"strings"

	"inmueblesv-catalog/internal/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,15}$`)

type leadValidator struct{}

func NewLeadValidator() LeadValidator {
	return &leadValidator{}
}

func (v *leadValidator) ValidateSubmit(lead *models.Lead) error {
	if strings.TrimSpace(lead.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(lead.Email) == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(lead.Email) {
		return errors.New("invalid email format")
	}
	if strings.TrimSpace(lead.Phone) == "" {
		return errors.New("phone is required")
	}
	if !phonePattern.MatchString(lead.Phone) {
		return errors.New("invalid phone format")
	}
	if strings.TrimSpace(lead.Address) == "" {
		return errors.New("property address is required")
	}
	if strings.TrimSpace(lead.PropertyType) == "" {
		return errors.New("property type is required")
	}
	return nil
}
