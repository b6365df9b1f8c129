package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"inmueblesv-catalog/internal/middleware"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/services"
	"inmueblesv-catalog/internal/validators"
	"inmueblesv-catalog/pkg/auth"
	"inmueblesv-catalog/pkg/logger"
)

const testSecret = "handler-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger(io.Discard, "error")
	os.Exit(m.Run())
}

type fakePropertyRepo struct {
	records []models.Property
}

func (r *fakePropertyRepo) FindAll(ctx context.Context) ([]models.Property, error) {
	out := make([]models.Property, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *fakePropertyRepo) FindByID(ctx context.Context, id string) (*models.Property, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			p := r.records[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("property not found: %s", id)
}

func (r *fakePropertyRepo) Create(ctx context.Context, property *models.Property) error {
	r.records = append(r.records, *property)
	return nil
}

type fakeReviewRepo struct {
	reviews []models.Review
}

func (r *fakeReviewRepo) FindAll(ctx context.Context) ([]models.Review, error) {
	out := make([]models.Review, len(r.reviews))
	copy(out, r.reviews)
	return out, nil
}

func (r *fakeReviewRepo) FindByID(ctx context.Context, id string) (*models.Review, error) {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			rv := r.reviews[i]
			return &rv, nil
		}
	}
	return nil, fmt.Errorf("review not found: %s", id)
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("review not found: %s", id)
}

type fakeFavoriteRepo struct {
	sets map[string][]string
}

func (r *fakeFavoriteRepo) Load(ctx context.Context, userID string) ([]string, error) {
	return r.sets[userID], nil
}

func (r *fakeFavoriteRepo) Save(ctx context.Context, userID string, propertyIDs []string) error {
	r.sets[userID] = propertyIDs
	return nil
}

type missCache struct{}

func (missCache) GetProperties(ctx context.Context) ([]models.Property, error) { return nil, nil }
func (missCache) SetProperties(ctx context.Context, records []models.Property, expiration time.Duration) error {
	return nil
}
func (missCache) InvalidateProperties(ctx context.Context) error { return nil }
func (missCache) GetReviews(ctx context.Context) ([]models.Review, error) { return nil, nil }
func (missCache) SetReviews(ctx context.Context, reviews []models.Review, expiration time.Duration) error {
	return nil
}
func (missCache) InvalidateReviews(ctx context.Context) error { return nil }
func (missCache) GetFavorites(ctx context.Context, userID string) ([]string, bool, error) {
	return nil, false, nil
}
func (missCache) SetFavorites(ctx context.Context, userID string, propertyIDs []string, expiration time.Duration) error {
	return nil
}

func sampleRecords() []models.Property {
	records := make([]models.Property, 0, 7)
	for i := 0; i < 7; i++ {
		records = append(records, models.Property{
			ID:              fmt.Sprintf("prop-%d", i),
			Address:         fmt.Sprintf("Calle %d, Guadalajara", i),
			Price:           1500000,
			Category:        models.CategoryHouse,
			ListingType:     models.ListingSale,
			Images:          []string{"https://example.com/img.jpg"},
			PublicationDate: time.Date(2024, 5, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	return records
}

type testEnv struct {
	router     *gin.Engine
	reviewRepo *fakeReviewRepo
}

func newTestEnv(records []models.Property, reviews []models.Review) *testEnv {
	propRepo := &fakePropertyRepo{records: records}
	reviewRepo := &fakeReviewRepo{reviews: reviews}
	favRepo := &fakeFavoriteRepo{sets: map[string][]string{}}

	catalogSvc := services.NewCatalogService(propRepo, missCache{}, validators.NewPropertyValidator(), 6)
	favoriteSvc := services.NewFavoriteService(favRepo, missCache{}, catalogSvc)
	reviewSvc := services.NewReviewService(reviewRepo, missCache{}, validators.NewReviewValidator())

	propHandler := NewPropertyHandler(catalogSvc, 3000)
	favHandler := NewFavoriteHandler(favoriteSvc)
	reviewHandler := NewReviewHandler(reviewSvc)

	router := gin.New()
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api")
	api.GET("/properties", propHandler.GetProperties)
	api.GET("/properties/featured", propHandler.GetFeatured)
	api.GET("/properties/:id", propHandler.GetPropertyByID)
	api.GET("/reviews", reviewHandler.GetReviews)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(testSecret))
	protected.GET("/favorites", favHandler.GetFavorites)
	protected.POST("/favorites", favHandler.ToggleFavorite)
	protected.POST("/reviews", reviewHandler.SubmitReview)
	protected.DELETE("/reviews/:id", reviewHandler.DeleteReview)

	return &testEnv{router: router, reviewRepo: reviewRepo}
}

func bearerFor(t *testing.T, userID, displayName string) string {
	t.Helper()
	token, err := auth.GenerateJWT(userID, displayName, userID+"@example.com", "", testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return "Bearer " + token.Token
}

func TestGetPropertiesPage(t *testing.T) {
	env := newTestEnv(sampleRecords(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/properties?page=2", nil)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp models.PaginatedPropertiesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Meta.Total != 7 || resp.Meta.TotalPages != 2 || resp.Meta.Page != 2 {
		t.Fatalf("unexpected meta: %+v", resp.Meta)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 item on page 2, got %d", len(resp.Data))
	}
}

func TestGetFeaturedIncludesSlideInterval(t *testing.T) {
	records := sampleRecords()
	records[2].IsFeatured = true
	env := newTestEnv(records, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/properties/featured", nil)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Items           []models.Property `json:"items"`
		SlideIntervalMs int               `json:"slideIntervalMs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "prop-2" {
		t.Fatalf("unexpected slide set: %+v", resp.Items)
	}
	if resp.SlideIntervalMs != 3000 {
		t.Fatalf("expected interval 3000, got %d", resp.SlideIntervalMs)
	}
}

func TestGetPropertiesUnknownCategory(t *testing.T) {
	env := newTestEnv(sampleRecords(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/properties?category=Palacio", nil)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetPropertyByIDNotFound(t *testing.T) {
	env := newTestEnv(sampleRecords(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/properties/absent", nil)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d, body %s", w.Code, w.Body.String())
	}
}

func TestToggleFavoriteWithoutToken(t *testing.T) {
	env := newTestEnv(sampleRecords(), nil)

	body := bytes.NewBufferString(`{"propertyId":"prop-1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/favorites", body)
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	env := newTestEnv(sampleRecords(), nil)
	token := bearerFor(t, "user-1", "Ana")

	toggle := func() map[string]interface{} {
		body := bytes.NewBufferString(`{"propertyId":"prop-1"}`)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/favorites", body)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", token)
		env.router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("toggle status %d, body %s", w.Code, w.Body.String())
		}
		var resp map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode toggle response: %v", err)
		}
		return resp
	}

	first := toggle()
	if added, _ := first["added"].(bool); !added {
		t.Fatalf("first toggle should add: %+v", first)
	}
	second := toggle()
	if added, _ := second["added"].(bool); added {
		t.Fatalf("second toggle should remove: %+v", second)
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	env := newTestEnv(nil, nil)
	token := bearerFor(t, "user-1", "Ana")

	body := bytes.NewBufferString(`{"rating":0,"text":"Muy bien"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reviews", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing rating, got %d", w.Code)
	}
	if len(env.reviewRepo.reviews) != 0 {
		t.Fatal("invalid review reached the store")
	}
}

func TestDeleteReviewForbiddenForNonAuthor(t *testing.T) {
	env := newTestEnv(nil, []models.Review{
		{ID: "rev-1", Author: "Ana", UserID: "user-1", Rating: 5, Text: "Excelente"},
	})
	token := bearerFor(t, "user-2", "Luis")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/rev-1", nil)
	req.Header.Set("Authorization", token)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d, body %s", w.Code, w.Body.String())
	}
	if len(env.reviewRepo.reviews) != 1 {
		t.Fatal("review deleted by a non-author")
	}
}

func TestDeleteReviewByAuthor(t *testing.T) {
	env := newTestEnv(nil, []models.Review{
		{ID: "rev-1", Author: "Ana", UserID: "user-1", Rating: 5, Text: "Excelente"},
	})
	token := bearerFor(t, "user-1", "Ana")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/rev-1", nil)
	req.Header.Set("Authorization", token)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d, body %s", w.Code, w.Body.String())
	}
	if len(env.reviewRepo.reviews) != 0 {
		t.Fatal("review not removed")
	}
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	env := newTestEnv(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
