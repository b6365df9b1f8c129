package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	apperrors "inmueblesv-catalog/internal/errors"
	"inmueblesv-catalog/internal/models"
	"inmueblesv-catalog/internal/validators"
	"inmueblesv-catalog/pkg/formrelay"
	"inmueblesv-catalog/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger(io.Discard, "error")
	os.Exit(m.Run())
}

type fakePropertyRepo struct {
	records []models.Property
	created []*models.Property
	err     error
}

func (r *fakePropertyRepo) FindAll(ctx context.Context) ([]models.Property, error) {
	if r.err != nil {
		return nil, r.err
	}
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
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, property)
	r.records = append(r.records, *property)
	return nil
}

type fakeReviewRepo struct {
	reviews []models.Review
	deleted []string
	creates int
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
	r.creates++
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) Delete(ctx context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	for i := range r.reviews {
		if r.reviews[i].ID == id {
			r.reviews = append(r.reviews[:i], r.reviews[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("review not found: %s", id)
}

type fakeFavoriteRepo struct {
	sets  map[string][]string
	loads int
	saves int
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{sets: map[string][]string{}}
}

func (r *fakeFavoriteRepo) Load(ctx context.Context, userID string) ([]string, error) {
	r.loads++
	return r.sets[userID], nil
}

func (r *fakeFavoriteRepo) Save(ctx context.Context, userID string, propertyIDs []string) error {
	r.saves++
	r.sets[userID] = propertyIDs
	return nil
}

// missCache never holds anything, so every read falls through to the
// repository.
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

// reviewCache records review reads and writes on top of the always-miss
// cache.
type reviewCache struct {
	missCache
	reviews       []models.Review
	sets          int
	invalidations int
}

func (c *reviewCache) GetReviews(ctx context.Context) ([]models.Review, error) {
	if c.reviews == nil {
		return nil, nil
	}
	out := make([]models.Review, len(c.reviews))
	copy(out, c.reviews)
	return out, nil
}

func (c *reviewCache) SetReviews(ctx context.Context, reviews []models.Review, expiration time.Duration) error {
	c.sets++
	c.reviews = reviews
	return nil
}

func (c *reviewCache) InvalidateReviews(ctx context.Context) error {
	c.invalidations++
	c.reviews = nil
	return nil
}
func (missCache) SetFavorites(ctx context.Context, userID string, propertyIDs []string, expiration time.Duration) error {
	return nil
}

func sampleRecords() []models.Property {
	records := make([]models.Property, 0, 8)
	for i := 0; i < 8; i++ {
		cat := models.CategoryHouse
		if i%2 == 0 {
			cat = models.CategoryLand
		}
		records = append(records, models.Property{
			ID:              fmt.Sprintf("prop-%d", i),
			Address:         fmt.Sprintf("Calle %d, Colonia Centro", i),
			Price:           1000000,
			Category:        cat,
			ListingType:     models.ListingSale,
			Images:          []string{"https://example.com/img.jpg"},
			PublicationDate: time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC),
			IsFeatured:      i == 0,
		})
	}
	return records
}

func newCatalogService(repo *fakePropertyRepo) *CatalogService {
	return NewCatalogService(repo, missCache{}, validators.NewPropertyValidator(), 6)
}

func TestListPropertiesPagination(t *testing.T) {
	repo := &fakePropertyRepo{records: sampleRecords()}
	svc := newCatalogService(repo)

	resp, err := svc.ListProperties(context.Background(), "", "all", 2)
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if resp.Meta.Total != 8 || resp.Meta.TotalPages != 2 || resp.Meta.Page != 2 {
		t.Fatalf("unexpected meta: %+v", resp.Meta)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 items on the last page, got %d", len(resp.Data))
	}
}

func TestListPropertiesClampsPage(t *testing.T) {
	repo := &fakePropertyRepo{records: sampleRecords()}
	svc := newCatalogService(repo)

	resp, err := svc.ListProperties(context.Background(), "", "", 99)
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if resp.Meta.Page != 2 {
		t.Fatalf("expected page clamped to 2, got %d", resp.Meta.Page)
	}
	if len(resp.Data) == 0 {
		t.Fatal("clamped page should not be empty")
	}
}

func TestListPropertiesCategoryFilter(t *testing.T) {
	repo := &fakePropertyRepo{records: sampleRecords()}
	svc := newCatalogService(repo)

	resp, err := svc.ListProperties(context.Background(), "", string(models.CategoryLand), 1)
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if resp.Meta.Total != 4 {
		t.Fatalf("expected 4 land records, got %d", resp.Meta.Total)
	}
	for _, p := range resp.Data {
		if p.Category != models.CategoryLand {
			t.Fatalf("record %s has category %s", p.ID, p.Category)
		}
	}
}

func TestListPropertiesRejectsUnknownCategory(t *testing.T) {
	svc := newCatalogService(&fakePropertyRepo{records: sampleRecords()})

	_, err := svc.ListProperties(context.Background(), "", "Castillo", 1)
	if err == nil {
		t.Fatal("expected an error for an unknown category")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreatePropertyValidationFailureDoesNotWrite(t *testing.T) {
	repo := &fakePropertyRepo{}
	svc := newCatalogService(repo)

	err := svc.CreateProperty(context.Background(), &models.Property{Address: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(repo.created) != 0 {
		t.Fatalf("store written despite validation failure: %d creates", len(repo.created))
	}
}

func TestFeaturedProperties(t *testing.T) {
	svc := newCatalogService(&fakePropertyRepo{records: sampleRecords()})

	featured, err := svc.FeaturedProperties(context.Background())
	if err != nil {
		t.Fatalf("FeaturedProperties: %v", err)
	}
	if len(featured) != 1 || featured[0].ID != "prop-0" {
		t.Fatalf("unexpected featured set: %+v", featured)
	}
}

func TestFavoriteToggleRequiresAuth(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo, missCache{}, newCatalogService(&fakePropertyRepo{}))

	_, _, err := svc.Toggle(context.Background(), nil, "prop-1")
	if err != apperrors.ErrAuthRequired {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if repo.loads != 0 || repo.saves != 0 {
		t.Fatal("store touched for an unauthenticated toggle")
	}
}

func TestFavoriteToggleInvolution(t *testing.T) {
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo, missCache{}, newCatalogService(&fakePropertyRepo{records: sampleRecords()}))
	identity := &models.Identity{ID: "user-1"}

	ids, added, err := svc.Toggle(context.Background(), identity, "prop-3")
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !added || len(ids) != 1 || ids[0] != "prop-3" {
		t.Fatalf("unexpected set after add: %v added=%v", ids, added)
	}

	ids, added, err = svc.Toggle(context.Background(), identity, "prop-3")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if added || len(ids) != 0 {
		t.Fatalf("double toggle did not restore the set: %v added=%v", ids, added)
	}
	if repo.saves != 2 {
		t.Fatalf("expected 2 saves, got %d", repo.saves)
	}
}

func TestFavoriteListSkipsStaleIDs(t *testing.T) {
	favRepo := newFakeFavoriteRepo()
	favRepo.sets["user-1"] = []string{"prop-1", "gone", "prop-2"}
	svc := NewFavoriteService(favRepo, missCache{}, newCatalogService(&fakePropertyRepo{records: sampleRecords()}))

	props, err := svc.ListProperties(context.Background(), &models.Identity{ID: "user-1"})
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("expected 2 resolved favorites, got %d", len(props))
	}
	if props[0].ID != "prop-1" || props[1].ID != "prop-2" {
		t.Fatalf("unexpected order: %s, %s", props[0].ID, props[1].ID)
	}
}

func TestListReviewsServedFromCache(t *testing.T) {
	repo := &fakeReviewRepo{reviews: []models.Review{
		{ID: "rev-db", Author: "Ana", UserID: "user-1", Rating: 5, Text: "Excelente"},
	}}
	cache := &reviewCache{reviews: []models.Review{
		{ID: "rev-cached", Author: "Luis", UserID: "user-2", Rating: 4, Text: "Muy bien"},
	}}
	svc := NewReviewService(repo, cache, validators.NewReviewValidator())

	reviews, err := svc.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].ID != "rev-cached" {
		t.Fatalf("expected the cached sequence, got %+v", reviews)
	}
}

func TestListReviewsCacheMissFallsBackAndPopulates(t *testing.T) {
	repo := &fakeReviewRepo{reviews: []models.Review{
		{ID: "rev-db", Author: "Ana", UserID: "user-1", Rating: 5, Text: "Excelente"},
	}}
	cache := &reviewCache{}
	svc := NewReviewService(repo, cache, validators.NewReviewValidator())

	reviews, err := svc.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if len(reviews) != 1 || reviews[0].ID != "rev-db" {
		t.Fatalf("expected the stored sequence, got %+v", reviews)
	}
	if cache.sets != 1 {
		t.Fatalf("miss should populate the cache, got %d sets", cache.sets)
	}
}

func TestReviewWritesInvalidateCache(t *testing.T) {
	repo := &fakeReviewRepo{}
	cache := &reviewCache{reviews: []models.Review{}}
	svc := NewReviewService(repo, cache, validators.NewReviewValidator())
	identity := &models.Identity{ID: "user-1", DisplayName: "Ana"}

	review, err := svc.SubmitReview(context.Background(), identity, &models.ReviewInput{Rating: 5, Text: "Excelente atención"})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("submit should invalidate the cache, got %d invalidations", cache.invalidations)
	}

	if err := svc.DeleteReview(context.Background(), identity, review.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if cache.invalidations != 2 {
		t.Fatalf("delete should invalidate the cache, got %d invalidations", cache.invalidations)
	}
}

func TestSubmitReviewRequiresAuth(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, missCache{}, validators.NewReviewValidator())

	_, err := svc.SubmitReview(context.Background(), nil, &models.ReviewInput{Rating: 5, Text: "Excelente servicio"})
	if err != apperrors.ErrAuthRequired {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatal("store written for an unauthenticated submission")
	}
}

func TestSubmitReviewValidationFailureDoesNotWrite(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, missCache{}, validators.NewReviewValidator())
	identity := &models.Identity{ID: "user-1", DisplayName: "Ana"}

	if _, err := svc.SubmitReview(context.Background(), identity, &models.ReviewInput{Rating: 0, Text: "Muy bien"}); err == nil {
		t.Fatal("expected rating validation error")
	}
	if _, err := svc.SubmitReview(context.Background(), identity, &models.ReviewInput{Rating: 4, Text: "   "}); err == nil {
		t.Fatal("expected text validation error")
	}
	if repo.creates != 0 {
		t.Fatalf("store written despite validation failures: %d creates", repo.creates)
	}
}

func TestSubmitReviewStampsAuthorIdentity(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewReviewService(repo, missCache{}, validators.NewReviewValidator())
	identity := &models.Identity{ID: "user-1", DisplayName: "Ana", PhotoURL: "https://example.com/ana.jpg"}

	review, err := svc.SubmitReview(context.Background(), identity, &models.ReviewInput{Rating: 5, Text: "Excelente atención"})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if review.Author != "Ana" || review.UserID != "user-1" || review.AvatarURL != "https://example.com/ana.jpg" {
		t.Fatalf("author fields not taken from identity: %+v", review)
	}
	if review.Date.IsZero() {
		t.Fatal("date not stamped server-side")
	}
}

func TestDeleteReviewAuthorOnly(t *testing.T) {
	repo := &fakeReviewRepo{reviews: []models.Review{
		{ID: "rev-1", Author: "Ana", UserID: "user-1", Rating: 5, Text: "Excelente"},
	}}
	svc := NewReviewService(repo, missCache{}, validators.NewReviewValidator())

	err := svc.DeleteReview(context.Background(), &models.Identity{ID: "user-2"}, "rev-1")
	if err != apperrors.ErrNotReviewOwner {
		t.Fatalf("expected ErrNotReviewOwner, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("delete reached the store for a non-author caller")
	}

	if err := svc.DeleteReview(context.Background(), &models.Identity{ID: "user-1"}, "rev-1"); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if len(repo.reviews) != 0 {
		t.Fatal("review not removed for the author")
	}
}

func TestDeleteReviewMissing(t *testing.T) {
	svc := NewReviewService(&fakeReviewRepo{}, missCache{}, validators.NewReviewValidator())

	err := svc.DeleteReview(context.Background(), &models.Identity{ID: "user-1"}, "absent")
	if err == nil {
		t.Fatal("expected an error for a missing review")
	}
}

func validLead() *models.Lead {
	return &models.Lead{
		Name:         "Carlos Pérez",
		Email:        "carlos@example.com",
		Phone:        "5512345678",
		Address:      "Av. Reforma 123",
		PropertyType: "Casa",
		Description:  "Casa de dos plantas",
		Price:        "2500000",
		ImageURLs:    []string{"https://example.com/1.jpg"},
	}
}

func TestSubmitLeadValidationFailureSkipsRelay(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	svc := NewLeadService(formrelay.NewClient(server.URL, time.Second), validators.NewLeadValidator())

	lead := validLead()
	lead.Email = "not-an-email"
	if err := svc.SubmitLead(context.Background(), lead); err == nil {
		t.Fatal("expected validation error")
	}
	if calls != 0 {
		t.Fatalf("relay reached despite validation failure: %d calls", calls)
	}
}

func TestSubmitLeadRelays(t *testing.T) {
	var gotName, gotPrice string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotName = r.FormValue("name")
		gotPrice = r.FormValue("price")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewLeadService(formrelay.NewClient(server.URL, time.Second), validators.NewLeadValidator())

	if err := svc.SubmitLead(context.Background(), validLead()); err != nil {
		t.Fatalf("SubmitLead: %v", err)
	}
	if gotName != "Carlos Pérez" || gotPrice != "2500000" {
		t.Fatalf("relayed fields wrong: name=%q price=%q", gotName, gotPrice)
	}
}
