package middleware

import (
	"errors"
	"net/http"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ContextListingCost holds the cost PointsGate quoted for the listing
const ContextListingCost = "listingCost"

// PointsGate prices the listing in the request body and stops the request when
// the user cannot pay for it. The body is cached so the handler can bind it again.
// The check is advisory; the deduction itself is conditional on the balance.
func PointsGate(ledger services.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		var req models.ListingRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
			abort(c, http.StatusBadRequest, "Invalid listing: "+err.Error())
			return
		}

		quote, err := ledger.Quote(c.Request.Context(), userID, req.Attributes())
		var insufficient *services.InsufficientPointsError
		switch {
		case errors.As(err, &insufficient):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success":        false,
				"message":        "Insufficient points to publish this listing",
				"requiredPoints": insufficient.Required,
				"currentBalance": insufficient.Current,
				"shortfall":      insufficient.Shortfall(),
			})
			return
		case errors.Is(err, services.ErrUserNotFound):
			abort(c, http.StatusNotFound, err.Error())
			return
		case err != nil:
			logger.Error("Points gate failed", "error", err, "userId", userID)
			abort(c, http.StatusInternalServerError, "Failed to check points balance")
			return
		}

		c.Set(ContextListingCost, quote.Cost)
		c.Next()
	}
}
