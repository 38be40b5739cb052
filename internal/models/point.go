package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Point is the per-user ledger head. Exactly one exists per user (unique index on userId).
type Point struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Balance        int                `bson:"balance" json:"balance"`
	TotalPurchased int                `bson:"totalPurchased" json:"totalPurchased"`
	TotalUsed      int                `bson:"totalUsed" json:"totalUsed"`
	TotalRefunded  int                `bson:"totalRefunded" json:"totalRefunded"`
	Version        int64              `bson:"version" json:"-"` // incremented by every balance change
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ExpectedBalance is the balance implied by the running totals
func (p *Point) ExpectedBalance() int {
	return p.TotalPurchased - p.TotalUsed + p.TotalRefunded
}
