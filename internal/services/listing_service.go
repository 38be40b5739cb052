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
	"github.com/ArowuTest/estatehub-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Compile-time check to ensure ListingServiceImpl implements ListingService
var _ ListingService = (*ListingServiceImpl)(nil)

// ListingServiceImpl publishes listings and settles their cost with the ledger
type ListingServiceImpl struct {
	listingRepo repositories.ListingRepository
	ledger      LedgerService
}

// NewListingService creates a new ListingServiceImpl
func NewListingService(listingRepo repositories.ListingRepository, ledger LedgerService) *ListingServiceImpl {
	return &ListingServiceImpl{
		listingRepo: listingRepo,
		ledger:      ledger,
	}
}

// CreateListing charges the owner for the listing and then stores it. The ID is
// allocated up front so the deduction can reference it; if the insert fails the
// deduction is refunded.
func (s *ListingServiceImpl) CreateListing(ctx context.Context, ownerID primitive.ObjectID, req *models.ListingRequest) (*models.Listing, error) {
	now := time.Now()
	listing := &models.Listing{
		ID:        primitive.NewObjectID(),
		OwnerID:   ownerID,
		Status:    models.ListingStatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyListingRequest(listing, req)

	cost := CalculateListingCost(listing.Attributes()).TotalCost
	result, err := s.ledger.Deduct(ctx, ownerID, &models.DeductRequest{
		Amount:      cost,
		ListingID:   listing.ID.Hex(),
		Description: fmt.Sprintf("Listing fee: %s", listing.Title),
	})
	if err != nil {
		return nil, err
	}
	if result.Charged {
		listing.PointsCost = cost
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		slog.Error("Failed to store listing", "error", err, "listingId", listing.ID, "ownerId", ownerID)
		if result.Charged {
			if _, rerr := s.ledger.RefundForListing(ctx, ownerID, listing.ID); rerr != nil {
				slog.Error("Failed to refund listing fee after insert failure", "error", rerr, "listingId", listing.ID, "ownerId", ownerID)
			}
		}
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	slog.Info("Listing published", "listingId", listing.ID, "ownerId", ownerID, "pointsCost", listing.PointsCost)
	return listing, nil
}

// GetListing retrieves a listing by ID
func (s *ListingServiceImpl) GetListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrListingNotFound
	}
	return listing, err
}

// ListListings returns one page of listings matching filter
func (s *ListingServiceImpl) ListListings(ctx context.Context, filter models.ListingFilter, page, limit int) (*models.ListingPage, error) {
	page, limit = utils.NormalizePagination(page, limit)
	listings, total, err := s.listingRepo.FindAll(ctx, filter, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	return &models.ListingPage{
		Listings:   listings,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: utils.TotalPages(total, limit),
	}, nil
}

// UpdateListing replaces the owner's listing fields. The points cost charged at
// creation is kept; updates are not re-priced.
func (s *ListingServiceImpl) UpdateListing(ctx context.Context, ownerID, id primitive.ObjectID, req *models.ListingRequest) (*models.Listing, error) {
	listing, err := s.ownedListing(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	applyListingRequest(listing, req)
	listing.UpdatedAt = time.Now()
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	return listing, nil
}

// DeleteListing removes the owner's listing and refunds its deduction. The
// returned refund is nil when nothing had been deducted.
func (s *ListingServiceImpl) DeleteListing(ctx context.Context, ownerID, id primitive.ObjectID) (*models.PointTransaction, error) {
	listing, err := s.ownedListing(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Delete(ctx, listing.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}

	refund, err := s.ledger.RefundForListing(ctx, listing.OwnerID, listing.ID)
	if err != nil {
		slog.Error("Listing deleted but refund failed", "error", err, "listingId", listing.ID, "ownerId", listing.OwnerID)
		return nil, fmt.Errorf("listing deleted but refund failed: %w", err)
	}
	slog.Info("Listing deleted", "listingId", listing.ID, "ownerId", listing.OwnerID, "refunded", refund != nil)
	return refund, nil
}

func (s *ListingServiceImpl) ownedListing(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Listing, error) {
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, ErrNotListingOwner
	}
	return listing, nil
}

func applyListingRequest(listing *models.Listing, req *models.ListingRequest) {
	listing.Title = strings.TrimSpace(req.Title)
	listing.Description = req.Description
	listing.PropertyType = strings.ToLower(strings.TrimSpace(req.PropertyType))
	listing.Price = req.Price
	listing.Size = req.Size
	listing.Bedrooms = req.Bedrooms
	listing.Bathrooms = req.Bathrooms
	listing.Address = req.Address
	listing.City = req.City
	listing.Amenities = req.Amenities
	listing.Images = req.Images
	if listing.Amenities == nil {
		listing.Amenities = []string{}
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}
}
