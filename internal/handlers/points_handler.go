package handlers

import (
	"net/http"
	"strconv"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// PointsHandler handles the points ledger endpoints
type PointsHandler struct {
	ledger services.LedgerService
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(ledger services.LedgerService) *PointsHandler {
	return &PointsHandler{ledger: ledger}
}

// CalculateCost handles POST /points/calculateCost
func (h *PointsHandler) CalculateCost(c *gin.Context) {
	var attrs models.ListingAttributes
	if err := c.ShouldBindJSON(&attrs); err != nil {
		respondBindError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, services.CalculateListingCost(attrs))
}

// Charge handles POST /points/charge
func (h *PointsHandler) Charge(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledger.Charge(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result)
}

// Deduct handles POST /points/deduct
func (h *PointsHandler) Deduct(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.DeductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledger.Deduct(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result)
}

// Refund handles POST /points/refund
func (h *PointsHandler) Refund(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.ledger.Refund(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result)
}

// Balance handles GET /points/balance
func (h *PointsHandler) Balance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	balance, err := h.ledger.Balance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, balance)
}

// Transactions handles GET /points/transactions?page=&limit=&type=
func (h *PointsHandler) Transactions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	txType := models.TransactionType(c.Query("type"))

	result, err := h.ledger.Transactions(c.Request.Context(), userID, txType, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, result)
}
