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

type reviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{
		collection: database.DB.Collection(database.ReviewsCollection),
	}
}

// FindAll returns reviews newest first.
func (r *reviewRepository) FindAll(ctx context.Context) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	metrics.MongoOperationDuration.WithLabelValues("find", database.ReviewsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", database.ReviewsCollection).Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	start = time.Now()
	err = cursor.All(ctx, &reviews)
	metrics.MongoOperationDuration.WithLabelValues("cursor_all", database.ReviewsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("cursor_all", database.ReviewsCollection).Inc()
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	start := time.Now()
	var review models.Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	metrics.MongoOperationDuration.WithLabelValues("find_one", database.ReviewsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("review not found")
		}
		metrics.MongoErrorsTotal.WithLabelValues("find_one", database.ReviewsCollection).Inc()
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, review)
	metrics.MongoOperationDuration.WithLabelValues("insert", database.ReviewsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("insert", database.ReviewsCollection).Inc()
		return err
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	metrics.MongoOperationDuration.WithLabelValues("delete_one", database.ReviewsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("delete_one", database.ReviewsCollection).Inc()
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("review not found")
	}
	return nil
}
