package repositories

import (
	"context"
	"fmt"
	"time"

	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/pkg/database"
	"inmueblesv-catalog/pkg/metrics"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type propertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository() PropertyRepository {
	return &propertyRepository{
		collection: database.DB.Collection(database.PropertiesCollection),
	}
}

// FindAll returns the full record sequence sorted by publication date
// descending, the order every catalog view derives from.
func (r *propertyRepository) FindAll(ctx context.Context) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publicationDate", Value: -1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	metrics.MongoOperationDuration.WithLabelValues("find", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", database.PropertiesCollection).Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	start = time.Now()
	err = cursor.All(ctx, &properties)
	metrics.MongoOperationDuration.WithLabelValues("cursor_all", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", database.PropertiesCollection).Inc()
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	start := time.Now()
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	metrics.MongoOperationDuration.WithLabelValues("find_one", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("property not found")
		}
		metrics.MongoErrorsTotal.WithLabelValues("find_one", database.PropertiesCollection).Inc()
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.NewString()
	}
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, property)
	metrics.MongoOperationDuration.WithLabelValues("insert", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("insert", database.PropertiesCollection).Inc()
		return err
	}
	return nil
}
