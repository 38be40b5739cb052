package models

import "time"

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the structure for registration requests
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user agent"`
}

// AuthResponse is returned on successful login or registration
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// OTPSendRequest asks for a verification code to be mailed
type OTPSendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// OTPVerifyRequest submits a verification code
type OTPVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,numeric"`
}

// UpdatePointFlagsRequest toggles a user's points-economy bypass flags
type UpdatePointFlagsRequest struct {
	IsTrial            *bool `json:"isTrial"`
	HasUnlimitedPoints *bool `json:"hasUnlimitedPoints"`
}
