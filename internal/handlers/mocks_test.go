package handlers

import (
	"context"

	"github.com/ArowuTest/estatehub-backend/internal/jobs"
	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Quote(ctx context.Context, userID primitive.ObjectID, attrs models.ListingAttributes) (*models.CostQuote, error) {
	args := m.Called(ctx, userID, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CostQuote), args.Error(1)
}
func (m *MockLedgerService) Charge(ctx context.Context, userID primitive.ObjectID, req *models.ChargeRequest) (*models.DeductionResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeductionResult), args.Error(1)
}
func (m *MockLedgerService) Deduct(ctx context.Context, userID primitive.ObjectID, req *models.DeductRequest) (*models.DeductionResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeductionResult), args.Error(1)
}
func (m *MockLedgerService) Refund(ctx context.Context, userID primitive.ObjectID, req *models.RefundRequest) (*models.DeductionResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeductionResult), args.Error(1)
}
func (m *MockLedgerService) RefundForListing(ctx context.Context, userID, listingID primitive.ObjectID) (*models.PointTransaction, error) {
	args := m.Called(ctx, userID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointTransaction), args.Error(1)
}
func (m *MockLedgerService) Balance(ctx context.Context, userID primitive.ObjectID) (*models.BalanceResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BalanceResponse), args.Error(1)
}
func (m *MockLedgerService) Transactions(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, page, limit int) (*models.TransactionPage, error) {
	args := m.Called(ctx, userID, txType, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionPage), args.Error(1)
}

// MockListingService
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) CreateListing(ctx context.Context, ownerID primitive.ObjectID, req *models.ListingRequest) (*models.Listing, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}
func (m *MockListingService) GetListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}
func (m *MockListingService) ListListings(ctx context.Context, filter models.ListingFilter, page, limit int) (*models.ListingPage, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingPage), args.Error(1)
}
func (m *MockListingService) UpdateListing(ctx context.Context, ownerID, id primitive.ObjectID, req *models.ListingRequest) (*models.Listing, error) {
	args := m.Called(ctx, ownerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}
func (m *MockListingService) DeleteListing(ctx context.Context, ownerID, id primitive.ObjectID) (*models.PointTransaction, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PointTransaction), args.Error(1)
}

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}
func (m *MockAuthService) Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) SetPointFlags(ctx context.Context, id primitive.ObjectID, req *models.UpdatePointFlagsRequest) (*models.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Run(ctx context.Context) (*jobs.ReconcileReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobs.ReconcileReport), args.Error(1)
}
