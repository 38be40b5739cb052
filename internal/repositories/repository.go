package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup matches no document
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique index rejects a write
	ErrDuplicate = errors.New("duplicate record")
	// ErrInsufficientBalance is returned when a conditional debit matches no point record
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAlreadyRefunded is returned when a deduction has already been reversed
	ErrAlreadyRefunded = errors.New("transaction already refunded")
)

// Indexer is implemented by repositories that own collection indexes
type Indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// SetPointsBalance mirrors a Point balance at the given Point version. A write
	// older than the version already mirrored is dropped.
	SetPointsBalance(ctx context.Context, id primitive.ObjectID, balance int, version int64) error
	SetPointFlags(ctx context.Context, id primitive.ObjectID, isTrial, hasUnlimitedPoints *bool) (*models.User, error)
	MarkVerified(ctx context.Context, email string) error
}

// PointRepository defines the ledger-head operations. Balance mutations are single
// atomic document updates; none of them read the balance first.
type PointRepository interface {
	FindOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Point, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Point, error)
	// Debit subtracts amount only when balance >= amount, else ErrInsufficientBalance.
	Debit(ctx context.Context, userID primitive.ObjectID, amount int) (*models.Point, error)
	// ReverseDebit undoes a Debit whose ledger entry could not be written.
	ReverseDebit(ctx context.Context, userID primitive.ObjectID, amount int) (*models.Point, error)
	// Credit adds amount, counting it as purchased or refunded according to kind.
	Credit(ctx context.Context, userID primitive.ObjectID, amount int, kind models.TransactionType) (*models.Point, error)
	// ReversePurchase undoes a purchase Credit when the balance still covers it, else ErrInsufficientBalance.
	ReversePurchase(ctx context.Context, userID primitive.ObjectID, amount int) (*models.Point, error)
	FindAll(ctx context.Context) ([]*models.Point, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// PointTransactionRepository defines the interface for point transaction operations
type PointTransactionRepository interface {
	// Create returns ErrDuplicate when the payment reference was already recorded.
	Create(ctx context.Context, transaction *models.PointTransaction) error
	FindByPaymentReference(ctx context.Context, reference string) (*models.PointTransaction, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, page, limit int) ([]*models.PointTransaction, int64, error)
	FindRecent(ctx context.Context, userID primitive.ObjectID, n int) ([]*models.PointTransaction, error)
	// FindRefundableDeduction returns the latest unrefunded deduction for a listing, else ErrNotFound.
	FindRefundableDeduction(ctx context.Context, userID, listingID primitive.ObjectID) (*models.PointTransaction, error)
	// MarkRefunded claims a deduction for refundID, else ErrAlreadyRefunded.
	MarkRefunded(ctx context.Context, deductionID, refundID primitive.ObjectID) error
	UnmarkRefunded(ctx context.Context, deductionID, refundID primitive.ObjectID) error
	Totals(ctx context.Context, userID primitive.ObjectID) (*models.TransactionTotals, error)
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// ListingRepository defines the interface for listing data operations
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error)
	FindAll(ctx context.Context, filter models.ListingFilter, page, limit int) ([]*models.Listing, int64, error)
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByOwnerID(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}

// OTPStore keeps short-lived verification codes
type OTPStore interface {
	Save(ctx context.Context, key, code string, ttl time.Duration) error
	// Get returns ErrNotFound once the code has expired or been deleted.
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
