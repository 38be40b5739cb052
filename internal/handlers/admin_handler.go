package handlers

import (
	"context"
	"net/http"

	"github.com/ArowuTest/estatehub-backend/internal/jobs"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// Reconciler runs a ledger reconciliation pass on demand
type Reconciler interface {
	Run(ctx context.Context) (*jobs.ReconcileReport, error)
}

// AdminHandler handles admin user and ledger requests
type AdminHandler struct {
	userService services.UserService
	reconciler  Reconciler
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userService services.UserService, reconciler Reconciler) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		reconciler:  reconciler,
	}
}

// GetUser handles GET /admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// SetPointFlags handles PUT /admin/users/:id/points-flags
func (h *AdminHandler) SetPointFlags(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdatePointFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.IsTrial == nil && req.HasUnlimitedPoints == nil {
		respondMessage(c, http.StatusBadRequest, "isTrial or hasUnlimitedPoints is required")
		return
	}

	user, err := h.userService.SetPointFlags(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User deleted")
}

// ReconcileLedger handles POST /admin/ledger/reconcile
func (h *AdminHandler) ReconcileLedger(c *gin.Context) {
	report, err := h.reconciler.Run(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, report)
}
