package transformers

import (
	"fmt"

	"inmueblesv-catalog/internal/models"
)

type reviewTransformer struct{}

func NewReviewTransformer() ReviewTransformer {
	return &reviewTransformer{}
}

func (t *reviewTransformer) TransformDocument(doc map[string]interface{}) (*models.Review, error) {
	review := &models.Review{}

	id := getString(doc, "_id")
	if id == "" {
		id = getString(doc, "id")
	}
	if id == "" {
		return nil, fmt.Errorf("document has no id")
	}
	review.ID = id

	rating := int(getFloat64(doc, "rating"))
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating %d out of range in document %s", rating, id)
	}
	review.Rating = rating

	review.Author = getString(doc, "author")
	review.AvatarURL = getString(doc, "avatarUrl")
	review.Text = getString(doc, "text")
	review.UserID = getString(doc, "userId")

	if ts, err := getTime(doc, "date"); err == nil {
		review.Date = ts
	}

	return review, nil
}
