package store

import (
	"context"
	"time"

	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/transformers"
	"inmueblesv-catalog/pkg/database"
	"inmueblesv-catalog/pkg/logger"
	"inmueblesv-catalog/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore watches collections through change streams and re-queries
// on every event, delivering full ordered snapshots. Documents are
// coerced through the transformer layer once, at this boundary.
type MongoStore struct {
	db        *mongo.Database
	propTrans transformers.PropertyTransformer
	revTrans  transformers.ReviewTransformer
}

func NewMongoStore(db *mongo.Database, propTrans transformers.PropertyTransformer, revTrans transformers.ReviewTransformer) *MongoStore {
	return &MongoStore{
		db:        db,
		propTrans: propTrans,
		revTrans:  revTrans,
	}
}

type mongoSubscription struct {
	cancel context.CancelFunc
}

func (s *mongoSubscription) Unsubscribe() {
	s.cancel()
}

func (m *MongoStore) SubscribeProperties(ctx context.Context, fn func(PropertySnapshot)) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	go m.watch(subCtx, database.PropertiesCollection, func() error {
		records, err := m.loadProperties(subCtx)
		if err != nil {
			fn(PropertySnapshot{Err: err})
			return err
		}
		metrics.SubscriptionPushesTotal.WithLabelValues(database.PropertiesCollection).Inc()
		fn(PropertySnapshot{Records: records})
		return nil
	})

	return &mongoSubscription{cancel: cancel}, nil
}

func (m *MongoStore) SubscribeReviews(ctx context.Context, fn func(ReviewSnapshot)) (Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)

	go m.watch(subCtx, database.ReviewsCollection, func() error {
		reviews, err := m.loadReviews(subCtx)
		if err != nil {
			fn(ReviewSnapshot{Err: err})
			return err
		}
		metrics.SubscriptionPushesTotal.WithLabelValues(database.ReviewsCollection).Inc()
		fn(ReviewSnapshot{Reviews: reviews})
		return nil
	})

	return &mongoSubscription{cancel: cancel}, nil
}

// watch delivers an initial snapshot, then re-delivers on every change
// event. A broken stream is re-established with linear backoff; the
// subscriber sees the failure through the snapshot error and keeps its
// last known good data.
func (m *MongoStore) watch(ctx context.Context, collection string, deliver func() error) {
	if err := deliver(); err != nil {
		logger.GlobalLogger.Errorf("Initial snapshot failed: collection=%s, error=%v", collection, err)
	}

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		stream, err := m.db.Collection(collection).Watch(ctx, mongo.Pipeline{},
			options.ChangeStream().SetFullDocument(options.UpdateLookup))
		if err != nil {
			logger.GlobalLogger.Errorf("Change stream open failed: collection=%s, error=%v", collection, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff += time.Second
			}
			continue
		}
		backoff = time.Second

		for stream.Next(ctx) {
			if err := deliver(); err != nil {
				logger.GlobalLogger.Errorf("Snapshot delivery failed: collection=%s, error=%v", collection, err)
			}
		}
		stream.Close(context.Background())

		if ctx.Err() != nil {
			return
		}
		logger.GlobalLogger.Errorf("Change stream ended: collection=%s, error=%v", collection, stream.Err())
	}
}

func (m *MongoStore) loadProperties(ctx context.Context) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publicationDate", Value: -1}})

	start := time.Now()
	cursor, err := m.db.Collection(database.PropertiesCollection).Find(ctx, bson.M{}, opts)
	metrics.MongoOperationDuration.WithLabelValues("find", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", database.PropertiesCollection).Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Property
	for cursor.Next(ctx) {
		var doc map[string]interface{}
		if err := cursor.Decode(&doc); err != nil {
			metrics.MongoErrorsTotal.WithLabelValues("decode", database.PropertiesCollection).Inc()
			continue
		}
		record, err := m.propTrans.TransformDocument(doc)
		if err != nil {
			// Malformed documents are skipped, not fatal.
			logger.GlobalLogger.Errorf("Skipping malformed property document: %v", err)
			continue
		}
		records = append(records, *record)
	}
	return records, cursor.Err()
}

func (m *MongoStore) loadReviews(ctx context.Context) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	start := time.Now()
	cursor, err := m.db.Collection(database.ReviewsCollection).Find(ctx, bson.M{}, opts)
	metrics.MongoOperationDuration.WithLabelValues("find", database.ReviewsCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("find", database.ReviewsCollection).Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var doc map[string]interface{}
		if err := cursor.Decode(&doc); err != nil {
			metrics.MongoErrorsTotal.WithLabelValues("decode", database.ReviewsCollection).Inc()
			continue
		}
		review, err := m.revTrans.TransformDocument(doc)
		if err != nil {
			logger.GlobalLogger.Errorf("Skipping malformed review document: %v", err)
			continue
		}
		reviews = append(reviews, *review)
	}
	return reviews, cursor.Err()
}
