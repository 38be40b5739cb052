package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"github.com/ArowuTest/estatehub-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecentTransactionsLimit is the number of transactions returned with a balance
const RecentTransactionsLimit = 10

// Compile-time check to ensure LedgerServiceImpl implements LedgerService
var _ LedgerService = (*LedgerServiceImpl)(nil)

// LedgerServiceImpl keeps the Point balance and the transaction log in step.
// Every balance change is one conditional update on the Point document; the
// transaction is appended afterwards with the balance that update returned.
type LedgerServiceImpl struct {
	userRepo    repositories.UserRepository
	pointRepo   repositories.PointRepository
	txRepo      repositories.PointTransactionRepository
	listingRepo repositories.ListingRepository
}

// NewLedgerService creates a new LedgerServiceImpl
func NewLedgerService(
	userRepo repositories.UserRepository,
	pointRepo repositories.PointRepository,
	txRepo repositories.PointTransactionRepository,
	listingRepo repositories.ListingRepository,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		userRepo:    userRepo,
		pointRepo:   pointRepo,
		txRepo:      txRepo,
		listingRepo: listingRepo,
	}
}

func (s *LedgerServiceImpl) findUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// Quote prices the listing and checks it against the user's balance
func (s *LedgerServiceImpl) Quote(ctx context.Context, userID primitive.ObjectID, attrs models.ListingAttributes) (*models.CostQuote, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	point, err := s.pointRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := &models.CostQuote{
		Cost:           CalculateListingCost(attrs).TotalCost,
		CurrentBalance: point.Balance,
		Bypass:         user.BypassesPoints(),
	}
	if !quote.Bypass && point.Balance < quote.Cost {
		return quote, &InsufficientPointsError{Required: quote.Cost, Current: point.Balance}
	}
	return quote, nil
}

// Charge credits purchased points. A payment reference is credited at most once.
func (s *LedgerServiceImpl) Charge(ctx context.Context, userID primitive.ObjectID, req *models.ChargeRequest) (*models.DeductionResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(req.PaymentMethod) == "" || strings.TrimSpace(req.PaymentReference) == "" {
		return nil, ErrMissingPaymentMethod
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	_, err := s.txRepo.FindByPaymentReference(ctx, req.PaymentReference)
	if err == nil {
		return nil, ErrDuplicatePayment
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check payment reference: %w", err)
	}

	point, err := s.pointRepo.Credit(ctx, userID, req.Amount, models.TransactionTypePurchase)
	if err != nil {
		return nil, fmt.Errorf("failed to credit points: %w", err)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Purchased %d points", req.Amount)
	}
	tx := &models.PointTransaction{
		UserID:           userID,
		Type:             models.TransactionTypePurchase,
		Amount:           req.Amount,
		Description:      description,
		BalanceAfter:     point.Balance,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		if _, rerr := s.pointRepo.ReversePurchase(ctx, userID, req.Amount); rerr != nil {
			// The credit stands; reconciliation reports the missing entry as drift.
			slog.Error("Failed to reverse purchase after ledger write failure", "error", rerr, "userId", userID, "amount", req.Amount)
		}
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicatePayment
		}
		slog.Error("Failed to record purchase transaction", "error", err, "userId", userID, "amount", req.Amount)
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	s.mirrorBalance(ctx, userID, point)
	slog.Info("Points purchased", "userId", userID, "amount", req.Amount, "balance", point.Balance)
	return &models.DeductionResult{Charged: true, Balance: point.Balance, Transaction: tx}, nil
}

// Deduct debits points for a listing unless the user bypasses the points economy
func (s *LedgerServiceImpl) Deduct(ctx context.Context, userID primitive.ObjectID, req *models.DeductRequest) (*models.DeductionResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	listingID, err := parseListingID(req.ListingID)
	if err != nil {
		return nil, err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	point, err := s.pointRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.BypassesPoints() {
		slog.Info("Deduction bypassed", "userId", userID, "listingId", listingID, "isTrial", user.IsTrial, "hasUnlimitedPoints", user.HasUnlimitedPoints)
		return &models.DeductionResult{Charged: false, Balance: point.Balance}, nil
	}

	point, err = s.pointRepo.Debit(ctx, userID, req.Amount)
	if errors.Is(err, repositories.ErrInsufficientBalance) {
		current, ferr := s.pointRepo.FindOrCreate(ctx, userID)
		if ferr != nil {
			return nil, ferr
		}
		return nil, &InsufficientPointsError{Required: req.Amount, Current: current.Balance}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to debit points: %w", err)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Listing fee for %s", listingID.Hex())
	}
	tx := &models.PointTransaction{
		UserID:       userID,
		Type:         models.TransactionTypeDeduction,
		Amount:       req.Amount,
		Description:  description,
		ListingID:    &listingID,
		BalanceAfter: point.Balance,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		if _, rerr := s.pointRepo.ReverseDebit(ctx, userID, req.Amount); rerr != nil {
			slog.Error("Failed to reverse debit after ledger write failure", "error", rerr, "userId", userID, "amount", req.Amount)
		}
		return nil, fmt.Errorf("failed to record deduction: %w", err)
	}

	s.mirrorBalance(ctx, userID, point)
	slog.Info("Points deducted", "userId", userID, "listingId", listingID, "amount", req.Amount, "balance", point.Balance)
	return &models.DeductionResult{Charged: true, Balance: point.Balance, Transaction: tx}, nil
}

// Refund reverses the latest unrefunded deduction for the listing. A listing that
// is still published keeps its fee; deleting it refunds the fee instead.
func (s *LedgerServiceImpl) Refund(ctx context.Context, userID primitive.ObjectID, req *models.RefundRequest) (*models.DeductionResult, error) {
	if req.Amount < 0 {
		return nil, ErrInvalidAmount
	}
	listingID, err := parseListingID(req.ListingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	_, err = s.listingRepo.FindByID(ctx, listingID)
	if err == nil {
		return nil, ErrListingStillPublished
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check listing: %w", err)
	}

	deduction, err := s.txRepo.FindRefundableDeduction(ctx, userID, listingID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrDeductionNotFound
	}
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount == 0 {
		amount = deduction.Amount
	}
	if amount > deduction.Amount {
		return nil, ErrRefundExceedsAmount
	}

	tx, err := s.reverse(ctx, deduction, amount, req.Description)
	if errors.Is(err, repositories.ErrAlreadyRefunded) {
		return nil, ErrDeductionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.DeductionResult{Charged: true, Balance: tx.BalanceAfter, Transaction: tx}, nil
}

// RefundForListing refunds the listing's deduction in full. It returns nil when
// nothing was deducted for the listing or the deduction was already refunded.
func (s *LedgerServiceImpl) RefundForListing(ctx context.Context, userID, listingID primitive.ObjectID) (*models.PointTransaction, error) {
	deduction, err := s.txRepo.FindRefundableDeduction(ctx, userID, listingID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tx, err := s.reverse(ctx, deduction, deduction.Amount, "")
	if errors.Is(err, repositories.ErrAlreadyRefunded) {
		return nil, nil
	}
	return tx, err
}

// reverse claims the deduction for a new refund, credits the amount and appends
// the refund entry linked to the deduction.
func (s *LedgerServiceImpl) reverse(ctx context.Context, deduction *models.PointTransaction, amount int, description string) (*models.PointTransaction, error) {
	refundID := primitive.NewObjectID()
	if err := s.txRepo.MarkRefunded(ctx, deduction.ID, refundID); err != nil {
		return nil, err
	}

	point, err := s.pointRepo.Credit(ctx, deduction.UserID, amount, models.TransactionTypeRefund)
	if err != nil {
		if uerr := s.txRepo.UnmarkRefunded(ctx, deduction.ID, refundID); uerr != nil {
			slog.Error("Failed to release refund claim", "error", uerr, "deductionId", deduction.ID)
		}
		return nil, fmt.Errorf("failed to credit refund: %w", err)
	}

	if description == "" {
		description = "Refund for listing"
		if deduction.ListingID != nil {
			description = fmt.Sprintf("Refund for listing %s", deduction.ListingID.Hex())
		}
	}
	deductionID := deduction.ID
	tx := &models.PointTransaction{
		ID:                    refundID,
		UserID:                deduction.UserID,
		Type:                  models.TransactionTypeRefund,
		Amount:                amount,
		Description:           description,
		ListingID:             deduction.ListingID,
		BalanceAfter:          point.Balance,
		ReversesTransactionID: &deductionID,
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		slog.Error("Failed to record refund transaction", "error", err, "userId", deduction.UserID, "deductionId", deduction.ID)
		return nil, fmt.Errorf("failed to record refund: %w", err)
	}

	s.mirrorBalance(ctx, deduction.UserID, point)
	slog.Info("Points refunded", "userId", deduction.UserID, "deductionId", deduction.ID, "amount", amount, "balance", point.Balance)
	return tx, nil
}

// Balance returns the ledger summary and the most recent transactions
func (s *LedgerServiceImpl) Balance(ctx context.Context, userID primitive.ObjectID) (*models.BalanceResponse, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	point, err := s.pointRepo.FindOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.txRepo.FindRecent(ctx, userID, RecentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	return &models.BalanceResponse{
		Balance:            point.Balance,
		TotalPurchased:     point.TotalPurchased,
		TotalUsed:          point.TotalUsed,
		TotalRefunded:      point.TotalRefunded,
		IsTrial:            user.IsTrial,
		HasUnlimitedPoints: user.HasUnlimitedPoints,
		RecentTransactions: recent,
	}, nil
}

// Transactions returns a page of the user's history, optionally of a single type
func (s *LedgerServiceImpl) Transactions(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, page, limit int) (*models.TransactionPage, error) {
	if txType != "" && !txType.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidTransactionType, txType)
	}
	page, limit = utils.NormalizePagination(page, limit)

	transactions, total, err := s.txRepo.FindByUserID(ctx, userID, txType, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return &models.TransactionPage{
		Transactions: transactions,
		Page:         page,
		Limit:        limit,
		Total:        total,
		TotalPages:   utils.TotalPages(total, limit),
	}, nil
}

// mirrorBalance copies the Point balance onto the user document. The write is
// versioned so a slower operation cannot overwrite a newer balance. The Point
// document stays authoritative; reconciliation repairs a failed mirror.
func (s *LedgerServiceImpl) mirrorBalance(ctx context.Context, userID primitive.ObjectID, point *models.Point) {
	if err := s.userRepo.SetPointsBalance(ctx, userID, point.Balance, point.Version); err != nil {
		slog.Warn("Failed to mirror points balance", "error", err, "userId", userID, "balance", point.Balance)
	}
}

func parseListingID(raw string) (primitive.ObjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return primitive.NilObjectID, ErrMissingListingID
	}
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidListingID
	}
	return id, nil
}
