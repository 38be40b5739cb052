package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/config"
	"github.com/ArowuTest/estatehub-backend/internal/handlers"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestRouter wires handlers without services; only routes that answer before
// reaching a service may be exercised.
func newTestRouter(t *testing.T) (*gin.Engine, *jwt.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := jwt.NewTokenService("test-secret", time.Hour)
	cfg := &config.Config{
		Server: config.ServerConfig{AllowedHosts: []string{"http://localhost:3000"}},
		JWT:    config.JWTConfig{CookieName: "token"},
	}
	router := SetupRouter(cfg, Dependencies{
		Tokens:         tokens,
		AuthHandler:    handlers.NewAuthHandler(nil, nil, "token", false),
		PointsHandler:  handlers.NewPointsHandler(nil),
		ListingHandler: handlers.NewListingHandler(nil),
		AdminHandler:   handlers.NewAdminHandler(nil, nil),
		HealthHandler:  handlers.NewHealthHandler(map[string]handlers.Pinger{}),
	})
	return router, tokens
}

func serve(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupRouter_PublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/health", "", "").Code)

	w := serve(r, http.MethodPost, "/api/points/calculateCost", "", `{"propertyType":"apartment"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalCost":50`)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetupRouter_ProtectedRoutes(t *testing.T) {
	r, tokens := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/points/balance"},
		{http.MethodPost, "/api/points/deduct"},
		{http.MethodPost, "/api/listings"},
		{http.MethodDelete, "/api/listings/" + primitive.NewObjectID().Hex()},
		{http.MethodGet, "/api/auth/me"},
	} {
		assert.Equal(t, http.StatusUnauthorized, serve(r, route.method, route.path, "", "").Code, route.path)
	}

	agent, _, err := tokens.Issue(primitive.NewObjectID().Hex(), "agent@example.com", models.RoleAgent)
	require.NoError(t, err)
	w := serve(r, http.MethodPost, "/api/admin/ledger/reconcile", agent, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetupRouter_OTPRoutesNeedLimiter(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, http.MethodPost, "/api/auth/otp/send", "", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
