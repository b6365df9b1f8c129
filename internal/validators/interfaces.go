package validators

import (
	"inmueblesv-catalog/internal/models"
)

// ReviewValidator rejects malformed submissions locally, before any
// store write is attempted.
type ReviewValidator interface {
	ValidateSubmit(input *models.ReviewInput) error
}

// LeadValidator checks the seller-contact form before it is relayed.
type LeadValidator interface {
	ValidateSubmit(lead *models.Lead) error
}

type PropertyValidator interface {
	ValidateCreate(property *models.Property) error
}

type UserValidator interface {
	ValidateRegister(user *models.User) error
	ValidateLogin(email, password string) error
}
