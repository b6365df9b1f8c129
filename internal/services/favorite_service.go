package services

import (
	"context"
	"time"

	"inmueblesv-catalog/internal/catalog"
	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/repositories"
	"inmueblesv-catalog/pkg/logger"
	"inmueblesv-catalog/pkg/metrics"
)

const favoritesTTL = 10 * time.Minute

// FavoriteService persists per-user favorite sets. Every mutation
// requires an authenticated identity; unauthenticated callers get the
// auth-required signal before any store access happens.
type FavoriteService struct {
	repo   repositories.FavoriteRepository
	cache  repositories.CatalogCache
	catSvc *CatalogService
}

func NewFavoriteService(repo repositories.FavoriteRepository, cache repositories.CatalogCache, catSvc *CatalogService) *FavoriteService {
	return &FavoriteService{
		repo:   repo,
		cache:  cache,
		catSvc: catSvc,
	}
}

// Toggle flips membership of propertyID in the caller's favorite set
// and returns the resulting set. Toggling twice restores the original
// set.
func (s *FavoriteService) Toggle(ctx context.Context, identity *models.Identity, propertyID string) ([]string, bool, error) {
	if identity == nil || identity.ID == "" {
		metrics.FavoriteTogglesTotal.WithLabelValues("auth_required").Inc()
		return nil, false, apperrors.ErrAuthRequired
	}

	favorites, err := s.load(ctx, identity.ID)
	if err != nil {
		metrics.FavoriteTogglesTotal.WithLabelValues("error").Inc()
		return nil, false, err
	}

	favorites = favorites.Toggle(propertyID)
	added := favorites.Contains(propertyID)

	if err := s.repo.Save(ctx, identity.ID, favorites.IDs()); err != nil {
		metrics.FavoriteTogglesTotal.WithLabelValues("error").Inc()
		return nil, false, err
	}
	if err := s.cache.SetFavorites(ctx, identity.ID, favorites.IDs(), favoritesTTL); err != nil {
		logger.GlobalLogger.Errorf("Favorites cache write failed for user %s: %v", identity.ID, err)
	}

	if added {
		metrics.FavoriteTogglesTotal.WithLabelValues("added").Inc()
	} else {
		metrics.FavoriteTogglesTotal.WithLabelValues("removed").Inc()
	}
	return favorites.IDs(), added, nil
}

// ListIDs returns the caller's favorite set in insertion order.
func (s *FavoriteService) ListIDs(ctx context.Context, identity *models.Identity) ([]string, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.ErrAuthRequired
	}
	favorites, err := s.load(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	return favorites.IDs(), nil
}

// ListProperties resolves the caller's favorite set against the record
// store. Identifiers that no longer resolve are skipped.
func (s *FavoriteService) ListProperties(ctx context.Context, identity *models.Identity) ([]models.Property, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.ErrAuthRequired
	}
	favorites, err := s.load(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	records, err := s.catSvc.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return favorites.Select(records), nil
}

func (s *FavoriteService) load(ctx context.Context, userID string) (catalog.Favorites, error) {
	if ids, found, err := s.cache.GetFavorites(ctx, userID); err == nil && found {
		metrics.CacheHitsTotal.Inc()
		return catalog.NewFavorites(ids), nil
	} else if err != nil {
		logger.GlobalLogger.Errorf("Favorites cache read failed for user %s: %v", userID, err)
	}
	metrics.CacheMissesTotal.Inc()

	ids, err := s.repo.Load(ctx, userID)
	if err != nil {
		return catalog.Favorites{}, err
	}
	return catalog.NewFavorites(ids), nil
}
