package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/repositories"
	"inmueblesv-catalog/internal/validators"
	"inmueblesv-catalog/pkg/logger"
	"inmueblesv-catalog/pkg/metrics"
)

const fallbackAvatarURL = "https://i.pravatar.cc/150"

const reviewListTTL = 5 * time.Minute

// ReviewService manages the public review board. Submissions carry the
// authenticated author's identity; deletion is restricted to the
// author.
type ReviewService struct {
	repo      repositories.ReviewRepository
	cache     repositories.CatalogCache
	validator validators.ReviewValidator
}

func NewReviewService(repo repositories.ReviewRepository, cache repositories.CatalogCache, validator validators.ReviewValidator) *ReviewService {
	return &ReviewService{
		repo:      repo,
		cache:     cache,
		validator: validator,
	}
}

// ListReviews serves the cached review sequence kept warm by the store
// feed, falling back to the repository on a miss.
func (s *ReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	if cached, err := s.cache.GetReviews(ctx); err == nil && cached != nil {
		metrics.CacheHitsTotal.Inc()
		return cached, nil
	} else if err != nil {
		logger.GlobalLogger.Errorf("Review cache read failed: %v", err)
	}
	metrics.CacheMissesTotal.Inc()

	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetReviews(ctx, reviews, reviewListTTL); err != nil {
		logger.GlobalLogger.Errorf("Review cache write failed: %v", err)
	}
	return reviews, nil
}

// SubmitReview validates the input before anything reaches the store.
// Author fields come from the authenticated identity, never from the
// request body.
func (s *ReviewService) SubmitReview(ctx context.Context, identity *models.Identity, input *models.ReviewInput) (*models.Review, error) {
	if identity == nil || identity.ID == "" {
		return nil, apperrors.ErrAuthRequired
	}
	if err := s.validator.ValidateSubmit(input); err != nil {
		return nil, apperrors.NewAppError(err.Error(), err.Error(), apperrors.ErrCodeValidation, http.StatusBadRequest, err)
	}

	avatar := identity.PhotoURL
	if avatar == "" {
		avatar = fallbackAvatarURL
	}
	review := &models.Review{
		ID:        uuid.NewString(),
		Author:    identity.DisplayName,
		AvatarURL: avatar,
		Rating:    input.Rating,
		Text:      input.Text,
		UserID:    identity.ID,
		Date:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	// The store feed re-populates the cache; invalidation only closes
	// the window until its next push.
	if err := s.cache.InvalidateReviews(ctx); err != nil {
		logger.GlobalLogger.Errorf("Failed to invalidate review cache: %v", err)
	}
	return review, nil
}

// DeleteReview removes a review the caller authored. Any other caller
// is rejected with no side effect.
func (s *ReviewService) DeleteReview(ctx context.Context, identity *models.Identity, reviewID string) error {
	if identity == nil || identity.ID == "" {
		return apperrors.ErrAuthRequired
	}
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != identity.ID {
		return apperrors.ErrNotReviewOwner
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}
	if err := s.cache.InvalidateReviews(ctx); err != nil {
		logger.GlobalLogger.Errorf("Failed to invalidate review cache: %v", err)
	}
	return nil
}
