package middleware_test

import (
	"context"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/services"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockLedgerService
type MockLedgerService struct {
	mock.Mock
}

var _ services.LedgerService = (*MockLedgerService)(nil)

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
