package models

import (
	"fmt"
	"time"
)

// Category is the closed set of property categories used by the catalog.
type Category string

const (
	CategoryHouse         Category = "Casa"
	CategoryApartment     Category = "Departamento"
	CategoryLand          Category = "Terreno"
	CategoryRanch         Category = "Rancho"
	CategoryCondoHouse    Category = "Casa en condominio"
	CategoryHouseWithLand Category = "Casa con terreno"
	CategoryCommercial    Category = "Comercial"
	CategoryMixed         Category = "Mixto"
)

// CategoryAll is the sentinel used by the catalog filter to disable
// category filtering. It is never stored on a record.
const CategoryAll Category = "all"

// Categories lists every valid stored category, in display order.
var Categories = []Category{
	CategoryHouse,
	CategoryApartment,
	CategoryLand,
	CategoryRanch,
	CategoryCondoHouse,
	CategoryHouseWithLand,
	CategoryCommercial,
	CategoryMixed,
}

// ListingType distinguishes sale listings from rentals.
type ListingType string

const (
	ListingSale ListingType = "Venta"
	ListingRent ListingType = "Renta"
)

// Status is the availability state of a listing. A document without a
// status field is treated as available.
type Status string

const (
	StatusAvailable Status = "Disponible"
	StatusSold      Status = "Vendida"
	StatusRented    Status = "Rentada"
)

// Property represents one listing. Records are created by the seller
// submission flow and are read-only from the catalog's perspective.
type Property struct {
	ID              string      `json:"id" bson:"_id"`
	Address         string      `json:"address" bson:"address"`
	Price           int64       `json:"price" bson:"price"`
	Area            float64     `json:"sqft" bson:"sqft"`
	Frontage        float64     `json:"frontage" bson:"frontage"`
	Depth           float64     `json:"depth" bson:"depth"`
	Category        Category    `json:"category" bson:"category"`
	ListingType     ListingType `json:"listingType" bson:"listingType"`
	Images          []string    `json:"images" bson:"images"`
	Description     string      `json:"description" bson:"description"`
	Services        []string    `json:"services" bson:"services"`
	PublicationDate time.Time   `json:"publicationDate" bson:"publicationDate"`
	Status          Status      `json:"status" bson:"status,omitempty"`
	IsFeatured      bool        `json:"isFeatured,omitempty" bson:"isFeatured,omitempty"`
	Rooms           int         `json:"rooms,omitempty" bson:"rooms,omitempty"`
	Bathrooms       int         `json:"bathrooms,omitempty" bson:"bathrooms,omitempty"`
	MainFeatures    [3]string   `json:"mainFeatures" bson:"mainFeatures"`
}

// ValidCategory reports whether c is one of the stored categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidListingType reports whether t is a known listing type.
func ValidListingType(t ListingType) bool {
	return t == ListingSale || t == ListingRent
}

// ValidStatus reports whether s is a known availability status.
// The empty string is valid and means available.
func ValidStatus(s Status) bool {
	return s == "" || s == StatusAvailable || s == StatusSold || s == StatusRented
}

// EffectiveStatus resolves the status default: absent means available.
func (p *Property) EffectiveStatus() Status {
	if p.Status == "" {
		return StatusAvailable
	}
	return p.Status
}

// Validate checks the invariants a property must satisfy to publish.
func (p *Property) Validate() error {
	if p.Address == "" {
		return fmt.Errorf("address is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	if p.Area < 0 || p.Frontage < 0 || p.Depth < 0 {
		return fmt.Errorf("dimensions must be non-negative")
	}
	if !ValidCategory(p.Category) {
		return fmt.Errorf("unknown category %q", p.Category)
	}
	if !ValidListingType(p.ListingType) {
		return fmt.Errorf("unknown listing type %q", p.ListingType)
	}
	if !ValidStatus(p.Status) {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("at least one image is required to publish")
	}
	return nil
}

// PaginatedPropertiesResponse is the catalog list endpoint payload.
type PaginatedPropertiesResponse struct {
	Data []Property     `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// PaginationMeta describes the page window of a catalog response.
type PaginationMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
