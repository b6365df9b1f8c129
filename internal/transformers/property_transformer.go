package transformers

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"inmueblesv-catalog/internal/models"
)

type propertyTransformer struct{}

func NewPropertyTransformer() PropertyTransformer {
	return &propertyTransformer{}
}

func (t *propertyTransformer) TransformDocument(doc map[string]interface{}) (*models.Property, error) {
	property := &models.Property{}

	id := getString(doc, "_id")
	if id == "" {
		id = getString(doc, "id")
	}
	if id == "" {
		return nil, fmt.Errorf("document has no id")
	}
	property.ID = id

	property.Address = getString(doc, "address")
	property.Description = getString(doc, "description")
	property.Price = int64(getFloat64(doc, "price"))
	property.Area = getFloat64(doc, "sqft")
	property.Frontage = getFloat64(doc, "frontage")
	property.Depth = getFloat64(doc, "depth")

	category := models.Category(getString(doc, "category"))
	if !models.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q in document %s", category, id)
	}
	property.Category = category

	listingType := models.ListingType(getString(doc, "listingType"))
	if !models.ValidListingType(listingType) {
		return nil, fmt.Errorf("unknown listing type %q in document %s", listingType, id)
	}
	property.ListingType = listingType

	// Several snapshots omit the status field entirely; absence means
	// the listing is still available.
	status := models.Status(getString(doc, "status"))
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q in document %s", status, id)
	}
	property.Status = status

	property.Images = getStringSlice(doc, "images")
	property.Services = getStringSlice(doc, "services")
	property.IsFeatured = getBool(doc, "isFeatured")
	property.Rooms = int(getFloat64(doc, "rooms"))
	property.Bathrooms = int(getFloat64(doc, "bathrooms"))

	features := getStringSlice(doc, "mainFeatures")
	for i := 0; i < len(features) && i < 3; i++ {
		property.MainFeatures[i] = features[i]
	}

	if ts, err := getTime(doc, "publicationDate"); err == nil {
		property.PublicationDate = ts
	}

	return property, nil
}

func getString(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func getBool(doc map[string]interface{}, key string) bool {
	if v, ok := doc[key].(bool); ok {
		return v
	}
	return false
}

// getFloat64 tolerates the numeric shapes the driver produces for
// untyped documents.
func getFloat64(doc map[string]interface{}, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// getStringSlice tolerates both JSON-decoder arrays and the driver's
// primitive.A shape for untyped documents.
func getStringSlice(doc map[string]interface{}, key string) []string {
	var raw []interface{}
	switch v := doc[key].(type) {
	case []interface{}:
		raw = v
	case primitive.A:
		raw = v
	case []string:
		return v
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func getTime(doc map[string]interface{}, key string) (time.Time, error) {
	switch v := doc[key].(type) {
	case time.Time:
		return v, nil
	case primitive.DateTime:
		return v.Time().UTC(), nil
	case string:
		return time.Parse(time.RFC3339, v)
	default:
		return time.Time{}, fmt.Errorf("field %q is not a timestamp", key)
	}
}
