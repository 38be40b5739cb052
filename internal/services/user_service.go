package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// UserServiceImpl handles admin user operations
type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	pointRepo   repositories.PointRepository
	txRepo      repositories.PointTransactionRepository
	listingRepo repositories.ListingRepository
}

// NewUserService creates a new UserServiceImpl
func NewUserService(
	userRepo repositories.UserRepository,
	pointRepo repositories.PointRepository,
	txRepo repositories.PointTransactionRepository,
	listingRepo repositories.ListingRepository,
) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo:    userRepo,
		pointRepo:   pointRepo,
		txRepo:      txRepo,
		listingRepo: listingRepo,
	}
}

// GetUser retrieves a user by ID
func (s *UserServiceImpl) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// SetPointFlags switches the trial and unlimited flags that are present in req
func (s *UserServiceImpl) SetPointFlags(ctx context.Context, id primitive.ObjectID, req *models.UpdatePointFlagsRequest) (*models.User, error) {
	user, err := s.userRepo.SetPointFlags(ctx, id, req.IsTrial, req.HasUnlimitedPoints)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update point flags: %w", err)
	}
	slog.Info("User point flags updated", "userId", id, "isTrial", user.IsTrial, "hasUnlimitedPoints", user.HasUnlimitedPoints)
	return user, nil
}

// DeleteUser removes the user together with their listings, Point record and
// transactions. Listing fees are not refunded since the ledger goes with the user.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	removed, err := s.listingRepo.DeleteByOwnerID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete listings: %w", err)
	}
	if err := s.pointRepo.DeleteByUserID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete point record: %w", err)
	}
	if err := s.txRepo.DeleteByUserID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete point transactions: %w", err)
	}
	slog.Info("User deleted", "userId", id, "listingsRemoved", removed)
	return nil
}
