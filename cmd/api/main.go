package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/estatehub-backend/api/routes"
	"github.com/ArowuTest/estatehub-backend/internal/config"
	"github.com/ArowuTest/estatehub-backend/internal/handlers"
	"github.com/ArowuTest/estatehub-backend/internal/jobs"
	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/ArowuTest/estatehub-backend/internal/middleware"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	mongorepo "github.com/ArowuTest/estatehub-backend/internal/repositories/mongodb"
	redisrepo "github.com/ArowuTest/estatehub-backend/internal/repositories/redis"
	"github.com/ArowuTest/estatehub-backend/internal/scheduler"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/ArowuTest/estatehub-backend/pkg/jwt"
	"github.com/ArowuTest/estatehub-backend/pkg/mailer"
	"github.com/ArowuTest/estatehub-backend/pkg/mongodb"
	"github.com/ArowuTest/estatehub-backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()

	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)

	userRepo := mongorepo.NewUserRepository(db)
	pointRepo := mongorepo.NewPointRepository(db)
	txRepo := mongorepo.NewPointTransactionRepository(db)
	listingRepo := mongorepo.NewListingRepository(db)

	indexCtx, cancel := context.WithTimeout(ctx, cfg.MongoDB.Timeout)
	for _, idx := range []repositories.Indexer{userRepo, pointRepo, txRepo, listingRepo} {
		if err := idx.EnsureIndexes(indexCtx); err != nil {
			cancel()
			logger.Error("Failed to create indexes", "error", err)
			os.Exit(1)
		}
	}
	cancel()

	healthChecks := map[string]handlers.Pinger{"mongodb": mongoClient}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Error("Redis unavailable, OTP routes disabled", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			healthChecks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			})
		}
	}

	tokens := jwt.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	ledgerService := services.NewLedgerService(userRepo, pointRepo, txRepo, listingRepo)
	listingService := services.NewListingService(listingRepo, ledgerService)
	authService := services.NewAuthService(userRepo, pointRepo, tokens)
	userService := services.NewUserService(userRepo, pointRepo, txRepo, listingRepo)
	reconciler := jobs.NewLedgerReconciler(userRepo, pointRepo, txRepo, 10*time.Minute)

	var otpService services.OTPService
	var otpLimiter *middleware.RateLimiter
	if redisClient != nil {
		var m mailer.Mailer = mailer.NewMockMailer()
		if !cfg.Mail.Mock {
			m = mailer.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
		}
		otpService = services.NewOTPService(redisrepo.NewOTPStore(redisClient.Client), userRepo, m, cfg.OTP.TTL, cfg.OTP.Length)
		otpLimiter = middleware.NewRateLimiter(redisClient.Client, middleware.PerMinute(cfg.RateLimit.OTPPerMinute), middleware.KeyByIP)
	}

	router := routes.SetupRouter(cfg, routes.Dependencies{
		Tokens:         tokens,
		Ledger:         ledgerService,
		OTPRateLimiter: otpLimiter,
		AuthHandler:    handlers.NewAuthHandler(authService, otpService, cfg.JWT.CookieName, cfg.Server.Mode == gin.ReleaseMode),
		PointsHandler:  handlers.NewPointsHandler(ledgerService),
		ListingHandler: handlers.NewListingHandler(listingService),
		AdminHandler:   handlers.NewAdminHandler(userService, reconciler),
		HealthHandler:  handlers.NewHealthHandler(healthChecks),
	})

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.NewScheduler(cfg.Scheduler.ReconcileSpec, reconciler)
		if err != nil {
			logger.Error("Failed to create scheduler", "error", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Server.Port, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server exiting")
}
