// Package catalog holds the list-view state logic of the property
// catalog: filtering, pagination, the per-user favorite set and the
// featured carousel. Everything here is pure; persistence and
// authentication live in the service layer.
package catalog

import (
	"strings"

	"inmueblesv-catalog/internal/models"
)

// DefaultPageSize matches the catalog grid of the storefront.
const DefaultPageSize = 6

// Query is the transient search/filter/page state over the record
// store. The zero value is not valid; use NewQuery.
type Query struct {
	Search   string
	Category models.Category
	Page     int
	PageSize int
}

// NewQuery returns a query showing the first page of all records.
func NewQuery() Query {
	return Query{
		Category: models.CategoryAll,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// WithSearch returns q with a new search term. Changing the term
// resets the page to 1.
func (q Query) WithSearch(term string) Query {
	q.Search = term
	q.Page = 1
	return q
}

// WithCategory returns q with a new category filter. Changing the
// filter resets the page to 1.
func (q Query) WithCategory(c models.Category) Query {
	q.Category = c
	q.Page = 1
	return q
}

// WithPage returns q on the requested page, clamped to
// [1, max(1, totalPages)] for the given filtered count.
func (q Query) WithPage(page, filteredCount int) Query {
	last := TotalPages(filteredCount, q.PageSize)
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	q.Page = page
	return q
}

// Page is one derived view over the record store.
type Page struct {
	Items      []models.Property
	Total      int
	TotalPages int
	NoResults  bool
}

// Filter returns the records matching the category filter (or all when
// the filter is CategoryAll or empty) whose address or description
// contains term as a case-insensitive substring. The empty term matches
// every record. Input order is preserved; the upstream store already
// sorts by publication date descending.
func Filter(records []models.Property, term string, category models.Category) []models.Property {
	needle := strings.ToLower(term)
	out := make([]models.Property, 0, len(records))
	for _, r := range records {
		if category != "" && category != models.CategoryAll && r.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Address), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Paginate slices the page-sized window for a 1-indexed page. An
// out-of-range page yields an empty slice rather than an error;
// callers clamp via Query.WithPage.
func Paginate(records []models.Property, page, pageSize int) []models.Property {
	if pageSize <= 0 || page < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return nil
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// TotalPages is ceil(count/pageSize), never less than 1 so that an
// empty result still has a current page to sit on.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Evaluate derives the page for q over the full record sequence.
// Pure function of its inputs.
func Evaluate(records []models.Property, q Query) Page {
	filtered := Filter(records, q.Search, q.Category)
	return Page{
		Items:      Paginate(filtered, q.Page, q.PageSize),
		Total:      len(filtered),
		TotalPages: TotalPages(len(filtered), q.PageSize),
		NoResults:  len(filtered) == 0,
	}
}

// Featured returns the records flagged for the carousel, preserving
// store order.
func Featured(records []models.Property) []models.Property {
	out := make([]models.Property, 0)
	for _, r := range records {
		if r.IsFeatured {
			out = append(out, r)
		}
	}
	return out
}
