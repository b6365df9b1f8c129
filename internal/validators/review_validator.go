package validators

import (
	"errors"
	"strings"

	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
)

type reviewValidator struct{}

func NewReviewValidator() ReviewValidator {
	return &reviewValidator{}
}

func (v *reviewValidator) ValidateSubmit(input *models.ReviewInput) error {
	if input.Rating == 0 {
		return errors.New(apperrors.MsgRatingRequired)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if strings.TrimSpace(input.Text) == "" {
		return errors.New(apperrors.MsgReviewTextRequired)
	}
	return nil
}
