package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingStatusPublished marks a listing visible to buyers
const ListingStatusPublished = "published"

// Listing represents a property published by a user or agent
type Listing struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID      primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	PropertyType string             `bson:"propertyType" json:"propertyType"`
	Price        float64            `bson:"price" json:"price"`
	Size         float64            `bson:"size" json:"size"` // square metres
	Bedrooms     int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms" json:"bathrooms"`
	Address      string             `bson:"address" json:"address"`
	City         string             `bson:"city" json:"city"`
	Amenities    []string           `bson:"amenities" json:"amenities"`
	Images       []string           `bson:"images" json:"images"`
	PointsCost   int                `bson:"pointsCost" json:"pointsCost"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ListingAttributes are the listing fields that determine its points cost
type ListingAttributes struct {
	PropertyType string   `json:"propertyType"`
	Size         float64  `json:"size"`
	Bedrooms     int      `json:"bedrooms"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
}

// Attributes extracts the pricing attributes of the listing
func (l *Listing) Attributes() ListingAttributes {
	return ListingAttributes{
		PropertyType: l.PropertyType,
		Size:         l.Size,
		Bedrooms:     l.Bedrooms,
		Amenities:    l.Amenities,
		Images:       l.Images,
	}
}

// ListingFilter narrows listing queries
type ListingFilter struct {
	OwnerID      *primitive.ObjectID
	PropertyType string
	City         string
}
