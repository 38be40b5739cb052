package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/ArowuTest/estatehub-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// TokenValidator validates access tokens
type TokenValidator interface {
	Validate(tokenString string) (*jwt.Claims, error)
}

// JWTAuthMiddleware authenticates the request from a Bearer token or, failing
// that, the auth cookie.
func JWTAuthMiddleware(tokens TokenValidator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" && cookieName != "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			logger.Debug("Token validation failed", "error", err, "path", c.FullPath())
			if errors.Is(err, jwt.ErrExpiredToken) {
				abort(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abort(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	const bearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerSchema) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(bearerSchema):])
}

// RequireRole rejects authenticated users whose role is not one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}

// UserID returns the authenticated user's ID
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
