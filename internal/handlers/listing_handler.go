package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/ArowuTest/estatehub-backend/internal/middleware"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingHandler handles listing HTTP requests
type ListingHandler struct {
	listingService services.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingService services.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

// CreateListing handles POST /listings. It runs behind PointsGate, which has
// already bound the body and priced the listing.
func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ListingRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondBindError(c, err)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	if quoted, ok := c.Get(middleware.ContextListingCost); ok && listing.PointsCost != 0 && quoted != listing.PointsCost {
		logger.Warn("Listing charged differently from its quote", "listingId", listing.ID, "quoted", quoted, "charged", listing.PointsCost)
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"data":          listing,
		"pointsCharged": listing.PointsCost,
	})
}

// GetListing handles GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	listing, err := h.listingService.GetListing(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, listing)
}

// ListListings handles GET /listings?page=&limit=&propertyType=&city=&owner=
func (h *ListingHandler) ListListings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := models.ListingFilter{
		PropertyType: strings.ToLower(strings.TrimSpace(c.Query("propertyType"))),
		City:         c.Query("city"),
	}
	if owner := c.Query("owner"); owner != "" {
		ownerID, err := primitive.ObjectIDFromHex(owner)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "Invalid owner ID format")
			return
		}
		filter.OwnerID = &ownerID
	}

	result, err := h.listingService.ListListings(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result)
}

// UpdateListing handles PUT /listings/:id
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, listing)
}

// DeleteListing handles DELETE /listings/:id and refunds the listing fee
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	refund, err := h.listingService.DeleteListing(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	refunded := 0
	if refund != nil {
		refunded = refund.Amount
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Listing deleted",
		"pointsRefunded": refunded,
		"refund":         refund,
	})
}
