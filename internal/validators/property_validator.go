package validators

import (
	"inmueblesv-catalog/internal/models"
)

type propertyValidator struct{}

func NewPropertyValidator() PropertyValidator {
	return &propertyValidator{}
}

func (v *propertyValidator) ValidateCreate(property *models.Property) error {
	return property.Validate()
}
