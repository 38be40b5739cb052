package services

import (
	"context"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService defines the points ledger operations
type LedgerService interface {
	// Quote reports what a listing with the given attributes would cost the user
	// and whether the user can pay for it. Returns *InsufficientPointsError when not.
	Quote(ctx context.Context, userID primitive.ObjectID, attrs models.ListingAttributes) (*models.CostQuote, error)

	// Charge credits purchased points to the user
	Charge(ctx context.Context, userID primitive.ObjectID, req *models.ChargeRequest) (*models.DeductionResult, error)

	// Deduct debits points for a listing. Trial and unlimited users are not charged.
	Deduct(ctx context.Context, userID primitive.ObjectID, req *models.DeductRequest) (*models.DeductionResult, error)

	// Refund reverses a deduction made for a listing. A deduction is refunded at most once.
	Refund(ctx context.Context, userID primitive.ObjectID, req *models.RefundRequest) (*models.DeductionResult, error)

	// RefundForListing reverses the listing's deduction if there is one, otherwise does nothing
	RefundForListing(ctx context.Context, userID, listingID primitive.ObjectID) (*models.PointTransaction, error)

	// Balance returns the user's ledger summary with the most recent transactions
	Balance(ctx context.Context, userID primitive.ObjectID) (*models.BalanceResponse, error)

	// Transactions returns one page of the user's transaction history
	Transactions(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, page, limit int) (*models.TransactionPage, error)
}

// ListingService defines listing operations, including settlement against the ledger
type ListingService interface {
	CreateListing(ctx context.Context, ownerID primitive.ObjectID, req *models.ListingRequest) (*models.Listing, error)
	GetListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error)
	ListListings(ctx context.Context, filter models.ListingFilter, page, limit int) (*models.ListingPage, error)
	UpdateListing(ctx context.Context, ownerID, id primitive.ObjectID, req *models.ListingRequest) (*models.Listing, error)
	DeleteListing(ctx context.Context, ownerID, id primitive.ObjectID) (*models.PointTransaction, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
}

// OTPService issues and checks email verification codes
type OTPService interface {
	Send(ctx context.Context, email string) error
	Verify(ctx context.Context, email, code string) error
}

// UserService defines admin operations on users
type UserService interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	SetPointFlags(ctx context.Context, id primitive.ObjectID, req *models.UpdatePointFlagsRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}
