package routes

import (
	"github.com/ArowuTest/estatehub-backend/internal/config"
	"github.com/ArowuTest/estatehub-backend/internal/handlers"
	"github.com/ArowuTest/estatehub-backend/internal/middleware"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// Dependencies holds everything the router wires into routes
type Dependencies struct {
	Tokens         middleware.TokenValidator
	Ledger         services.LedgerService
	OTPRateLimiter *middleware.RateLimiter // nil disables OTP routes

	AuthHandler    *handlers.AuthHandler
	PointsHandler  *handlers.PointsHandler
	ListingHandler *handlers.ListingHandler
	AdminHandler   *handlers.AdminHandler
	HealthHandler  *handlers.HealthHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	handlers.RegisterValidators()

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedHosts))

	auth := middleware.JWTAuthMiddleware(deps.Tokens, cfg.JWT.CookieName)

	api := router.Group("/api")
	api.GET("/health", deps.HealthHandler.Health)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", deps.AuthHandler.Register)
		authRoutes.POST("/login", deps.AuthHandler.Login)
		authRoutes.POST("/logout", deps.AuthHandler.Logout)
		authRoutes.GET("/me", auth, deps.AuthHandler.Me)

		if deps.OTPRateLimiter != nil {
			authRoutes.POST("/otp/send", deps.OTPRateLimiter.Handler(), deps.AuthHandler.SendOTP)
			authRoutes.POST("/otp/verify", deps.OTPRateLimiter.Handler(), deps.AuthHandler.VerifyOTP)
		}
	}

	points := api.Group("/points")
	{
		points.POST("/calculateCost", deps.PointsHandler.CalculateCost)
		points.POST("/charge", auth, deps.PointsHandler.Charge)
		points.POST("/deduct", auth, deps.PointsHandler.Deduct)
		points.POST("/refund", auth, deps.PointsHandler.Refund)
		points.GET("/balance", auth, deps.PointsHandler.Balance)
		points.GET("/transactions", auth, deps.PointsHandler.Transactions)
	}

	listings := api.Group("/listings")
	{
		listings.GET("", deps.ListingHandler.ListListings)
		listings.GET("/:id", deps.ListingHandler.GetListing)
		listings.POST("", auth, middleware.PointsGate(deps.Ledger), deps.ListingHandler.CreateListing)
		listings.PUT("/:id", auth, deps.ListingHandler.UpdateListing)
		listings.DELETE("/:id", auth, deps.ListingHandler.DeleteListing)
	}

	admin := api.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users/:id", deps.AdminHandler.GetUser)
		admin.PUT("/users/:id/points-flags", deps.AdminHandler.SetPointFlags)
		admin.DELETE("/users/:id", deps.AdminHandler.DeleteUser)
		admin.POST("/ledger/reconcile", deps.AdminHandler.ReconcileLedger)
	}

	return router
}
