package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/config"
	"github.com/ArowuTest/estatehub-backend/internal/logger"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	mongorepo "github.com/ArowuTest/estatehub-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/ArowuTest/estatehub-backend/internal/utils"
	"github.com/ArowuTest/estatehub-backend/pkg/jwt"
	"github.com/ArowuTest/estatehub-backend/pkg/mongodb"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// seed imports users from a CSV file (username,email,password,points) and
// credits each opening balance as a purchase with payment method "seed".
func main() {
	file := flag.String("file", "", "path to the users CSV file")
	flag.Parse()
	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -file users.csv")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using environment variables")
	}

	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if err := run(context.Background(), cfg, *file); err != nil {
		logger.Error("Seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	users, rowErrs, err := utils.ReadSeedUsers(f)
	if err != nil {
		return err
	}
	for _, rowErr := range rowErrs {
		logger.Warn("Skipping row", "error", rowErr)
	}

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDB.Database)

	userRepo := mongorepo.NewUserRepository(db)
	pointRepo := mongorepo.NewPointRepository(db)
	txRepo := mongorepo.NewPointTransactionRepository(db)
	listingRepo := mongorepo.NewListingRepository(db)

	tokens := jwt.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)
	authService := services.NewAuthService(userRepo, pointRepo, tokens)
	ledgerService := services.NewLedgerService(userRepo, pointRepo, txRepo, listingRepo)

	created, skipped, credited := 0, 0, 0
	for _, u := range users {
		resp, err := authService.Register(ctx, &models.RegisterRequest{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
		})
		if errors.Is(err, services.ErrUserExists) {
			logger.Info("User exists, skipping", "line", u.Line, "email", u.Email)
			skipped++
			continue
		}
		if err != nil {
			logger.Error("Failed to create user", "line", u.Line, "email", u.Email, "error", err)
			continue
		}
		created++

		if u.Points == 0 {
			continue
		}
		_, err = ledgerService.Charge(ctx, resp.User.ID, &models.ChargeRequest{
			Amount:           u.Points,
			PaymentMethod:    "seed",
			PaymentReference: uuid.NewString(),
			Description:      "Opening balance",
		})
		if err != nil {
			logger.Error("Failed to credit opening balance", "line", u.Line, "email", u.Email, "error", err)
			continue
		}
		credited++
	}

	logger.Info("Seed complete", "rows", len(users), "created", created, "skipped", skipped, "credited", credited, "rejected", len(rowErrs))
	return nil
}
