package services

import (
	"math"
	"strings"

	"github.com/ArowuTest/estatehub-backend/internal/models"
)

// BaseListingCost is the cost of a plain apartment listing
const BaseListingCost = 50

var propertyTypeMultipliers = map[string]float64{
	"apartment":  1.0,
	"house":      1.2,
	"villa":      1.5,
	"commercial": 2.0,
	"land":       0.8,
}

// threshold adds bonus to a factor when a value is strictly above above
type threshold struct {
	above float64
	bonus float64
}

var (
	sizeThresholds      = []threshold{{200, 0.2}, {500, 0.3}, {1000, 0.5}}
	bedroomThresholds   = []threshold{{3, 0.1}, {5, 0.2}}
	amenitiesThresholds = []threshold{{5, 0.2}, {10, 0.3}}
	imagesThresholds    = []threshold{{5, 0.1}, {10, 0.2}}
)

// IsKnownPropertyType reports whether t has its own multiplier
func IsKnownPropertyType(t string) bool {
	_, ok := propertyTypeMultipliers[strings.ToLower(strings.TrimSpace(t))]
	return ok
}

// PropertyTypeMultiplier returns the multiplier for t, 1.0 when unknown
func PropertyTypeMultiplier(t string) float64 {
	if m, ok := propertyTypeMultipliers[strings.ToLower(strings.TrimSpace(t))]; ok {
		return m
	}
	return 1.0
}

// factor sums every bonus whose threshold value exceeds. Thresholds are cumulative.
func factor(value float64, thresholds []threshold) float64 {
	f := 1.0
	for _, t := range thresholds {
		if value > t.above {
			f += t.bonus
		}
	}
	return f
}

// CalculateListingCost prices a listing from its attributes. It is the only cost
// formula in the service; the gate, the settlement and the quote endpoint all use it.
func CalculateListingCost(attrs models.ListingAttributes) models.CostResponse {
	breakdown := models.CostBreakdown{
		BaseCost:        BaseListingCost,
		TypeMultiplier:  PropertyTypeMultiplier(attrs.PropertyType),
		SizeFactor:      factor(attrs.Size, sizeThresholds),
		BedroomFactor:   factor(float64(attrs.Bedrooms), bedroomThresholds),
		AmenitiesFactor: factor(float64(len(attrs.Amenities)), amenitiesThresholds),
		ImagesFactor:    factor(float64(len(attrs.Images)), imagesThresholds),
	}

	total := float64(breakdown.BaseCost) *
		breakdown.TypeMultiplier *
		breakdown.SizeFactor *
		breakdown.BedroomFactor *
		breakdown.AmenitiesFactor *
		breakdown.ImagesFactor

	return models.CostResponse{
		TotalCost: int(math.Round(total)),
		Breakdown: breakdown,
	}
}
