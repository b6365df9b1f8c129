package repositories

import (
	"context"
	"time"

	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/pkg/database"
	"inmueblesv-catalog/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository() UserRepository {
	return &userRepository{
		collection: database.DB.Collection(database.UsersCollection),
	}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	metrics.MongoOperationDuration.WithLabelValues("find_one", database.UsersCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		if err != mongo.ErrNoDocuments {
			metrics.MongoErrorsTotal.WithLabelValues("find_one", database.UsersCollection).Inc()
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	metrics.MongoOperationDuration.WithLabelValues("insert", database.UsersCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("insert", database.UsersCollection).Inc()
		return err
	}
	return nil
}
