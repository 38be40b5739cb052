package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleUser  = "user"
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// User represents an account that can publish listings
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username           string             `bson:"username" json:"username"`
	Email              string             `bson:"email" json:"email"`
	PasswordHash       string             `bson:"passwordHash" json:"-"`
	Role               string             `bson:"role" json:"role"`
	PointsBalance      int                `bson:"pointsBalance" json:"pointsBalance"` // mirror of Point.Balance
	PointsVersion      int64              `bson:"pointsVersion" json:"-"`             // Point.Version of the mirrored balance
	IsTrial            bool               `bson:"isTrial" json:"isTrial"`
	HasUnlimitedPoints bool               `bson:"hasUnlimitedPoints" json:"hasUnlimitedPoints"`
	IsVerified         bool               `bson:"isVerified" json:"isVerified"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BypassesPoints reports whether the user is exempt from the points economy
func (u *User) BypassesPoints() bool {
	return u.IsTrial || u.HasUnlimitedPoints
}
