package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrListingNotFound        = errors.New("listing not found")
	ErrNotListingOwner        = errors.New("not authorized to modify this listing")
	ErrInvalidAmount          = errors.New("amount must be a positive integer")
	ErrMissingListingID       = errors.New("listingId is required")
	ErrInvalidListingID       = errors.New("listingId is invalid")
	ErrMissingPaymentMethod   = errors.New("paymentMethod and paymentReference are required")
	ErrDeductionNotFound      = errors.New("no refundable deduction found for this listing")
	ErrRefundExceedsAmount    = errors.New("refund amount exceeds the deducted amount")
	ErrListingStillPublished  = errors.New("listing is still published; delete it to refund its fee")
	ErrDuplicatePayment       = errors.New("payment reference has already been credited")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserExists             = errors.New("user with this email or username already exists")
	ErrInvalidOTP             = errors.New("invalid or expired verification code")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// InsufficientPointsError is returned when a balance cannot cover a cost
type InsufficientPointsError struct {
	Required int
	Current  int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: %d required, %d available", e.Required, e.Current)
}

// Shortfall is the number of points missing
func (e *InsufficientPointsError) Shortfall() int {
	return e.Required - e.Current
}
