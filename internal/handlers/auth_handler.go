package handlers

import (
	"net/http"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication related HTTP requests
type AuthHandler struct {
	authService  services.AuthService
	otpService   services.OTPService
	cookieName   string
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. otpService may be nil when codes cannot be stored.
func NewAuthHandler(authService services.AuthService, otpService services.OTPService, cookieName string, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		otpService:   otpService,
		cookieName:   cookieName,
		secureCookie: secureCookie,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setAuthCookie(c, resp)
	respondSuccess(c, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setAuthCookie(c, resp)
	respondSuccess(c, http.StatusOK, resp)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.cookieName != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	}
	respondMessage(c, http.StatusOK, "Logged out")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, user)
}

// SendOTP handles POST /auth/otp/send
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.OTPSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.otpService.Send(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Verification code sent")
}

// VerifyOTP handles POST /auth/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.otpService.Verify(c.Request.Context(), req.Email, req.Code); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Email verified")
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, resp *models.AuthResponse) {
	if h.cookieName == "" {
		return
	}
	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, resp.Token, maxAge, "/", "", h.secureCookie, true)
}
