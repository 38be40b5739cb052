package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionTypePurchase  TransactionType = "purchase"
	TransactionTypeDeduction TransactionType = "deduction"
	TransactionTypeRefund    TransactionType = "refund"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypePurchase, TransactionTypeDeduction, TransactionTypeRefund:
		return true
	}
	return false
}

// PointTransaction is an append-only ledger entry. BalanceAfter is a snapshot taken
// from the atomic balance update that produced the entry.
type PointTransaction struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           primitive.ObjectID  `bson:"userId" json:"userId"`
	Type             TransactionType     `bson:"type" json:"type"`
	Amount           int                 `bson:"amount" json:"amount"`
	Description      string              `bson:"description" json:"description"`
	ListingID        *primitive.ObjectID `bson:"listingId,omitempty" json:"listingId,omitempty"`
	BalanceAfter     int                 `bson:"balanceAfter" json:"balanceAfter"`
	PaymentMethod    string              `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentReference string              `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`
	// Set on refunds: the deduction being reversed.
	ReversesTransactionID *primitive.ObjectID `bson:"reversesTransactionId,omitempty" json:"reversesTransactionId,omitempty"`
	// Set on deductions once refunded; a deduction is refundable at most once.
	RefundedByTransactionID *primitive.ObjectID `bson:"refundedByTransactionId,omitempty" json:"refundedByTransactionId,omitempty"`
	CreatedAt               time.Time           `bson:"createdAt" json:"createdAt"`
}

// TransactionTotals aggregates a user's ledger entries by type
type TransactionTotals struct {
	Purchased int
	Used      int
	Refunded  int
}
