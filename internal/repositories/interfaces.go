package repositories

import (
	"context"
	"time"

	"inmueblesv-catalog/internal/models"
)

type PropertyRepository interface {
	FindAll(ctx context.Context) ([]models.Property, error)
	FindByID(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, property *models.Property) error
}

type ReviewRepository interface {
	FindAll(ctx context.Context) ([]models.Review, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
}

type FavoriteRepository interface {
	Load(ctx context.Context, userID string) ([]string, error)
	Save(ctx context.Context, userID string, propertyIDs []string) error
}

// CatalogCache holds the full record and review sequences and per-user
// favorite sets in Redis, in front of the Mongo collections.
type CatalogCache interface {
	GetProperties(ctx context.Context) ([]models.Property, error)
	SetProperties(ctx context.Context, records []models.Property, expiration time.Duration) error
	InvalidateProperties(ctx context.Context) error
	GetReviews(ctx context.Context) ([]models.Review, error)
	SetReviews(ctx context.Context, reviews []models.Review, expiration time.Duration) error
	InvalidateReviews(ctx context.Context) error
	GetFavorites(ctx context.Context, userID string) ([]string, bool, error)
	SetFavorites(ctx context.Context, userID string, propertyIDs []string, expiration time.Duration) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}
