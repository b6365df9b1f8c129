package repositories

import (
	"context"
	"encoding/json"
	"time"

	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/pkg/cache"
	"inmueblesv-catalog/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

type catalogCache struct {
	client *redis.Client
}

func NewCatalogCache() CatalogCache {
	return &catalogCache{
		client: cache.RedisClient,
	}
}

func (c *catalogCache) GetProperties(ctx context.Context) ([]models.Property, error) {
	start := time.Now()
	data, err := c.client.Get(ctx, cache.PropertyListKey()).Result()
	metrics.RedisOperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("get").Inc()
		return nil, err
	}
	var records []models.Property
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *catalogCache) SetProperties(ctx context.Context, records []models.Property, expiration time.Duration) error {
	if records == nil {
		records = []models.Property{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	start := time.Now()
	err = c.client.Set(ctx, cache.PropertyListKey(), data, expiration).Err()
	metrics.RedisOperationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set").Inc()
		return err
	}
	return nil
}

func (c *catalogCache) InvalidateProperties(ctx context.Context) error {
	start := time.Now()
	err := c.client.Del(ctx, cache.PropertyListKey()).Err()
	metrics.RedisOperationDuration.WithLabelValues("del").Observe(time.Since(start).Seconds())
	if err != nil && err != redis.Nil {
		metrics.RedisErrorsTotal.WithLabelValues("del").Inc()
		return err
	}
	return nil
}

func (c *catalogCache) GetReviews(ctx context.Context) ([]models.Review, error) {
	start := time.Now()
	data, err := c.client.Get(ctx, cache.ReviewListKey()).Result()
	metrics.RedisOperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("get").Inc()
		return nil, err
	}
	var reviews []models.Review
	if err := json.Unmarshal([]byte(data), &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *catalogCache) SetReviews(ctx context.Context, reviews []models.Review, expiration time.Duration) error {
	if reviews == nil {
		reviews = []models.Review{}
	}
	data, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	start := time.Now()
	err = c.client.Set(ctx, cache.ReviewListKey(), data, expiration).Err()
	metrics.RedisOperationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set").Inc()
		return err
	}
	return nil
}

func (c *catalogCache) InvalidateReviews(ctx context.Context) error {
	start := time.Now()
	err := c.client.Del(ctx, cache.ReviewListKey()).Err()
	metrics.RedisOperationDuration.WithLabelValues("del").Observe(time.Since(start).Seconds())
	if err != nil && err != redis.Nil {
		metrics.RedisErrorsTotal.WithLabelValues("del").Inc()
		return err
	}
	return nil
}

// GetFavorites returns the cached favorite ids and whether the cache
// held an entry; an absent entry is distinct from an empty set.
func (c *catalogCache) GetFavorites(ctx context.Context, userID string) ([]string, bool, error) {
	start := time.Now()
	data, err := c.client.Get(ctx, cache.FavoritesKey(userID)).Result()
	metrics.RedisOperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("get").Inc()
		return nil, false, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

func (c *catalogCache) SetFavorites(ctx context.Context, userID string, propertyIDs []string, expiration time.Duration) error {
	if propertyIDs == nil {
		propertyIDs = []string{}
	}
	data, err := json.Marshal(propertyIDs)
	if err != nil {
		return err
	}
	start := time.Now()
	err = c.client.Set(ctx, cache.FavoritesKey(userID), data, expiration).Err()
	metrics.RedisOperationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RedisErrorsTotal.WithLabelValues("set").Inc()
		return err
	}
	return nil
}
