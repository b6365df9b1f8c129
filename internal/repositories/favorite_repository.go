package repositories

import (
	"context"
	"time"

	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/pkg/database"
	"inmueblesv-catalog/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type favoriteRepository struct {
	collection *mongo.Collection
}

func NewFavoriteRepository() FavoriteRepository {
	return &favoriteRepository{
		collection: database.DB.Collection(database.FavoritesCollection),
	}
}

// Load returns the persisted favorite ids for a user. A user with no
// favorites document has an empty set.
func (r *favoriteRepository) Load(ctx context.Context, userID string) ([]string, error) {
	start := time.Now()
	var doc models.FavoriteSet
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	metrics.MongoOperationDuration.WithLabelValues("find_one", database.FavoritesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		metrics.MongoErrorsTotal.WithLabelValues("find_one", database.FavoritesCollection).Inc()
		return nil, err
	}
	return doc.PropertyIDs, nil
}

// Save upserts the whole favorite set. Mutation is replace-whole-value;
// the set is small and user-click ordered, so partial updates buy
// nothing.
func (r *favoriteRepository) Save(ctx context.Context, userID string, propertyIDs []string) error {
	if propertyIDs == nil {
		propertyIDs = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"propertyIds": propertyIDs,
			"updatedAt":   time.Now().UTC(),
		},
	}
	start := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update, options.Update().SetUpsert(true))
	metrics.MongoOperationDuration.WithLabelValues("upsert", database.FavoritesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("upsert", database.FavoritesCollection).Inc()
		return err
	}
	return nil
}
