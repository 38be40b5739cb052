package models

// ListingRequest is the payload for creating or updating a listing
type ListingRequest struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description" binding:"max=5000"`
	PropertyType string   `json:"propertyType" binding:"required,propertytype"`
	Price        float64  `json:"price" binding:"gte=0"`
	Size         float64  `json:"size" binding:"gte=0"`
	Bedrooms     int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int      `json:"bathrooms" binding:"gte=0"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images" binding:"dive,required,max=500"`
}

// Attributes extracts the pricing attributes of the request
func (r *ListingRequest) Attributes() ListingAttributes {
	return ListingAttributes{
		PropertyType: r.PropertyType,
		Size:         r.Size,
		Bedrooms:     r.Bedrooms,
		Amenities:    r.Amenities,
		Images:       r.Images,
	}
}

// ListingPage is one page of listings
type ListingPage struct {
	Listings   []*Listing `json:"listings"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int64      `json:"total"`
	TotalPages int64      `json:"totalPages"`
}
