package models

// Lead is a seller-contact form submission. It is relayed to the
// configured form endpoint and never persisted locally.
type Lead struct {
	Name         string   `json:"name" form:"name"`
	Email        string   `json:"email" form:"email"`
	Phone        string   `json:"phone" form:"phone"`
	Address      string   `json:"address" form:"address"`
	PropertyType string   `json:"propertyType" form:"propertyType"`
	Description  string   `json:"description" form:"description"`
	Price        string   `json:"price" form:"price"`
	ImageURLs    []string `json:"imageUrls" form:"imageUrls"`
}
