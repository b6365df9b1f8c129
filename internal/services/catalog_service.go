package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"inmueblesv-catalog/internal/catalog"
	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/repositories"
	"inmueblesv-catalog/internal/validators"
	"inmueblesv-catalog/pkg/logger"
	"inmueblesv-catalog/pkg/metrics"
)

const propertyListTTL = 5 * time.Minute

// CatalogService evaluates catalog queries over the record store and
// handles seller submissions.
type CatalogService struct {
	repo      repositories.PropertyRepository
	cache     repositories.CatalogCache
	validator validators.PropertyValidator
	pageSize  int
}

func NewCatalogService(repo repositories.PropertyRepository, cache repositories.CatalogCache, validator validators.PropertyValidator, pageSize int) *CatalogService {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &CatalogService{
		repo:      repo,
		cache:     cache,
		validator: validator,
		pageSize:  pageSize,
	}
}

// ListProperties evaluates the query for one catalog page. The page
// number is clamped, never rejected.
func (s *CatalogService) ListProperties(ctx context.Context, term, category string, page int) (*models.PaginatedPropertiesResponse, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}

	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	q := catalog.Query{Search: term, Category: cat, Page: 1, PageSize: s.pageSize}
	filtered := catalog.Filter(records, q.Search, q.Category)
	q = q.WithPage(page, len(filtered))
	result := catalog.Evaluate(records, q)

	metrics.CatalogQueriesTotal.WithLabelValues(string(cat)).Inc()

	return &models.PaginatedPropertiesResponse{
		Data: result.Items,
		Meta: models.PaginationMeta{
			Total:      result.Total,
			Page:       q.Page,
			PageSize:   s.pageSize,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// FeaturedProperties returns the carousel slide set.
func (s *CatalogService) FeaturedProperties(ctx context.Context) ([]models.Property, error) {
	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Featured(records), nil
}

func (s *CatalogService) GetPropertyByID(ctx context.Context, id string) (*models.Property, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProperty handles the seller submission flow. The publication
// timestamp is set once here and never mutated.
func (s *CatalogService) CreateProperty(ctx context.Context, property *models.Property) error {
	property.PublicationDate = time.Now().UTC()
	if err := s.validator.ValidateCreate(property); err != nil {
		return apperrors.NewAppError(err.Error(), err.Error(), apperrors.ErrCodeValidation, http.StatusBadRequest, err)
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return err
	}
	// Cache failures only delay visibility until the TTL expires.
	if err := s.cache.InvalidateProperties(ctx); err != nil {
		logger.GlobalLogger.Errorf("Failed to invalidate property cache: %v", err)
	}
	return nil
}

func (s *CatalogService) loadAll(ctx context.Context) ([]models.Property, error) {
	if cached, err := s.cache.GetProperties(ctx); err == nil && cached != nil {
		metrics.CacheHitsTotal.Inc()
		return cached, nil
	} else if err != nil {
		logger.GlobalLogger.Errorf("Property cache read failed: %v", err)
	}
	metrics.CacheMissesTotal.Inc()

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProperties(ctx, records, propertyListTTL); err != nil {
		logger.GlobalLogger.Errorf("Property cache write failed: %v", err)
	}
	return records, nil
}

func parseCategory(category string) (models.Category, error) {
	if category == "" || category == string(models.CategoryAll) {
		return models.CategoryAll, nil
	}
	cat := models.Category(category)
	if !models.ValidCategory(cat) {
		err := fmt.Errorf("unknown category %q", category)
		return "", apperrors.NewAppError(err.Error(), apperrors.MsgInvalidParameters, apperrors.ErrCodeValidation, http.StatusBadRequest, err)
	}
	return cat, nil
}
