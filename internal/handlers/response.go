package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/ArowuTest/estatehub-backend/internal/middleware"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": status < http.StatusBadRequest, "message": message})
}

// respondError writes the error body for err. Insufficient points also carries
// the shortfall so clients can prompt for a top-up.
func respondError(c *gin.Context, err error) {
	var insufficient *services.InsufficientPointsError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":        false,
			"message":        "Insufficient points",
			"requiredPoints": insufficient.Required,
			"currentBalance": insufficient.Current,
			"shortfall":      insufficient.Shortfall(),
		})
		return
	}

	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Error("Request error", "error", err, "path", c.FullPath(), "requestId", c.GetString(middleware.ContextRequestID))
		message = "Internal server error"
	}
	respondMessage(c, status, message)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrListingNotFound),
		errors.Is(err, services.ErrDeductionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotListingOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrListingStillPublished),
		errors.Is(err, services.ErrDuplicatePayment):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrMissingListingID),
		errors.Is(err, services.ErrInvalidListingID),
		errors.Is(err, services.ErrMissingPaymentMethod),
		errors.Is(err, services.ErrRefundExceedsAmount),
		errors.Is(err, services.ErrInvalidTransactionType),
		errors.Is(err, services.ErrInvalidOTP):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondBindError answers a request whose body failed to bind or validate
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	respondMessage(c, http.StatusBadRequest, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "propertytype":
		return fmt.Sprintf("%s must be one of: apartment house villa commercial land", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// currentUser returns the authenticated user's ID, answering 401 when absent
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "Authentication required")
	}
	return id, ok
}

func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}
