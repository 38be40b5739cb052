package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	Issue(userID, email, role string) (string, time.Time, error)
}

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl registers and authenticates users
type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	pointRepo repositories.PointRepository
	tokens    TokenIssuer
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(userRepo repositories.UserRepository, pointRepo repositories.PointRepository, tokens TokenIssuer) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		pointRepo: pointRepo,
		tokens:    tokens,
	}
}

// Register creates the user with an empty points ledger and signs them in
func (s *AuthServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if err := s.ensureAvailable(ctx, email, username); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.pointRepo.FindOrCreate(ctx, user.ID); err != nil {
		// The ledger is created lazily on first use as well, so registration still succeeds.
		slog.Warn("Failed to create point record", "error", err, "userId", user.ID)
	}

	slog.Info("User registered", "userId", user.ID, "role", user.Role)
	return s.respond(user)
}

func (s *AuthServiceImpl) ensureAvailable(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

// Login checks the credentials and returns a signed token
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.respond(user)
}

// Me returns the authenticated user
func (s *AuthServiceImpl) Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *AuthServiceImpl) respond(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
