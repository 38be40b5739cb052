package services_test

import (
	"testing"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/stretchr/testify/assert"
)

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "item"
	}
	return out
}

func TestCalculateListingCost_Examples(t *testing.T) {
	t.Run("plain apartment", func(t *testing.T) {
		cost := services.CalculateListingCost(models.ListingAttributes{
			PropertyType: "apartment",
			Size:         120,
			Bedrooms:     3,
			Amenities:    []string{"parking"},
			Images:       []string{"i1"},
		})
		assert.Equal(t, 50, cost.TotalCost)
		assert.Equal(t, models.CostBreakdown{
			BaseCost:        50,
			TypeMultiplier:  1.0,
			SizeFactor:      1.0,
			BedroomFactor:   1.0,
			AmenitiesFactor: 1.0,
			ImagesFactor:    1.0,
		}, cost.Breakdown)
	})

	t.Run("large villa", func(t *testing.T) {
		cost := services.CalculateListingCost(models.ListingAttributes{
			PropertyType: "villa",
			Size:         800,
			Bedrooms:     6,
			Amenities:    items(7),
			Images:       items(11),
		})
		assert.Equal(t, 228, cost.TotalCost)
		assert.InDelta(t, 1.5, cost.Breakdown.TypeMultiplier, 1e-9)
		assert.InDelta(t, 1.5, cost.Breakdown.SizeFactor, 1e-9)
		assert.InDelta(t, 1.3, cost.Breakdown.BedroomFactor, 1e-9)
		assert.InDelta(t, 1.2, cost.Breakdown.AmenitiesFactor, 1e-9)
		assert.InDelta(t, 1.3, cost.Breakdown.ImagesFactor, 1e-9)
	})
}

func TestCalculateListingCost_TypeMultipliers(t *testing.T) {
	tests := []struct {
		propertyType string
		want         int
	}{
		{"apartment", 50},
		{"house", 60},
		{"villa", 75},
		{"commercial", 100},
		{"land", 40},
		{"castle", 50},
		{"", 50},
		{"Villa", 75},
		{" HOUSE ", 60},
	}
	for _, tt := range tests {
		t.Run(tt.propertyType, func(t *testing.T) {
			cost := services.CalculateListingCost(models.ListingAttributes{PropertyType: tt.propertyType})
			assert.Equal(t, tt.want, cost.TotalCost)
		})
	}
}

func TestCalculateListingCost_ThresholdsAreStrictAndCumulative(t *testing.T) {
	tests := []struct {
		name  string
		attrs models.ListingAttributes
		field func(models.CostBreakdown) float64
		want  float64
	}{
		{"size at 200", models.ListingAttributes{Size: 200}, sizeFactor, 1.0},
		{"size above 200", models.ListingAttributes{Size: 201}, sizeFactor, 1.2},
		{"size above 500", models.ListingAttributes{Size: 501}, sizeFactor, 1.5},
		{"size above 1000", models.ListingAttributes{Size: 1001}, sizeFactor, 2.0},
		{"3 bedrooms", models.ListingAttributes{Bedrooms: 3}, bedroomFactor, 1.0},
		{"4 bedrooms", models.ListingAttributes{Bedrooms: 4}, bedroomFactor, 1.1},
		{"6 bedrooms", models.ListingAttributes{Bedrooms: 6}, bedroomFactor, 1.3},
		{"5 amenities", models.ListingAttributes{Amenities: items(5)}, amenitiesFactor, 1.0},
		{"6 amenities", models.ListingAttributes{Amenities: items(6)}, amenitiesFactor, 1.2},
		{"11 amenities", models.ListingAttributes{Amenities: items(11)}, amenitiesFactor, 1.5},
		{"5 images", models.ListingAttributes{Images: items(5)}, imagesFactor, 1.0},
		{"6 images", models.ListingAttributes{Images: items(6)}, imagesFactor, 1.1},
		{"11 images", models.ListingAttributes{Images: items(11)}, imagesFactor, 1.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := services.CalculateListingCost(tt.attrs)
			assert.InDelta(t, tt.want, tt.field(cost.Breakdown), 1e-9)
		})
	}
}

func sizeFactor(b models.CostBreakdown) float64      { return b.SizeFactor }
func bedroomFactor(b models.CostBreakdown) float64   { return b.BedroomFactor }
func amenitiesFactor(b models.CostBreakdown) float64 { return b.AmenitiesFactor }
func imagesFactor(b models.CostBreakdown) float64    { return b.ImagesFactor }

func TestCalculateListingCost_AbsentDataCostsBase(t *testing.T) {
	cost := services.CalculateListingCost(models.ListingAttributes{PropertyType: "apartment"})
	assert.Equal(t, services.BaseListingCost, cost.TotalCost)
}

func TestCalculateListingCost_Deterministic(t *testing.T) {
	a := models.ListingAttributes{PropertyType: "house", Size: 650, Bedrooms: 4, Amenities: items(8), Images: items(3)}
	b := models.ListingAttributes{PropertyType: "house", Size: 650, Bedrooms: 4, Amenities: []string{"a", "b", "c", "d", "e", "f", "g", "h"}, Images: []string{"x", "y", "z"}}
	assert.Equal(t, services.CalculateListingCost(a), services.CalculateListingCost(b))
}

func TestCalculateListingCost_Monotonic(t *testing.T) {
	base := models.ListingAttributes{PropertyType: "commercial"}

	prev := 0
	for size := 0.0; size <= 1500; size += 50 {
		attrs := base
		attrs.Size = size
		got := services.CalculateListingCost(attrs).TotalCost
		assert.GreaterOrEqual(t, got, prev, "size %v", size)
		prev = got
	}

	prev = 0
	for n := 0; n <= 15; n++ {
		attrs := base
		attrs.Bedrooms = n
		got := services.CalculateListingCost(attrs).TotalCost
		assert.GreaterOrEqual(t, got, prev, "bedrooms %d", n)
		prev = got
	}

	prev = 0
	for n := 0; n <= 15; n++ {
		attrs := base
		attrs.Amenities = items(n)
		got := services.CalculateListingCost(attrs).TotalCost
		assert.GreaterOrEqual(t, got, prev, "amenities %d", n)
		prev = got
	}

	prev = 0
	for n := 0; n <= 15; n++ {
		attrs := base
		attrs.Images = items(n)
		got := services.CalculateListingCost(attrs).TotalCost
		assert.GreaterOrEqual(t, got, prev, "images %d", n)
		prev = got
	}
}
