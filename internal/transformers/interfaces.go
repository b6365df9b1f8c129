package transformers

import (
	"inmueblesv-catalog/internal/models"
)

// PropertyTransformer coerces a raw store document into a typed record
// once at the boundary, so loosely-typed data never reaches the catalog
// logic.
type PropertyTransformer interface {
	TransformDocument(doc map[string]interface{}) (*models.Property, error)
}

// ReviewTransformer coerces a raw review document into a typed record.
type ReviewTransformer interface {
	TransformDocument(doc map[string]interface{}) (*models.Review, error)
}
