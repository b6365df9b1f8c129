package validators

import (
	"errors"

	"inmueblesv-catalog/internal/models"
)

type userValidator struct{}

func NewUserValidator() UserValidator {
	return &userValidator{}
}

func (v *userValidator) ValidateRegister(user *models.User) error {
	if user.DisplayName == "" || user.Email == "" || user.Password == "" {
		return errors.New("display name, email, and password are required")
	}

	if len(user.DisplayName) < 2 || len(user.DisplayName) > 100 {
		return errors.New("display name must be between 2 and 100 characters")
	}

	if len(user.Password) < 6 || len(user.Password) > 100 {
		return errors.New("password must be between 6 and 100 characters")
	}

	if user.Phone != "" && len(user.Phone) > 15 {
		return errors.New("phone number exceeds maximum length of 15 characters")
	}

	if !emailPattern.MatchString(user.Email) {
		return errors.New("invalid email format")
	}

	if user.Phone != "" && !phonePattern.MatchString(user.Phone) {
		return errors.New("invalid phone format")
	}

	return nil
}

func (v *userValidator) ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}

	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}

	return nil
}
