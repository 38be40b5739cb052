package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PointRepository implements the interface
var _ repositories.PointRepository = (*PointRepository)(nil)

// PointRepository handles MongoDB operations for the per-user Point document
type PointRepository struct {
	collection *mongo.Collection
}

// NewPointRepository creates a new PointRepository
func NewPointRepository(db *mongo.Database) *PointRepository {
	return &PointRepository{
		collection: db.Collection("points"),
	}
}

// EnsureIndexes enforces one Point document per user
func (r *PointRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

// FindOrCreate returns the user's Point document, inserting a zero balance if absent.
// The upsert runs against the unique userId index, so concurrent callers converge on one document.
func (r *PointRepository) FindOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Point, error) {
	now := time.Now()
	update := bson.M{"$setOnInsert": bson.M{
		"userId":         userID,
		"balance":        0,
		"totalPurchased": 0,
		"totalUsed":      0,
		"totalRefunded":  0,
		"version":        0,
		"createdAt":      now,
		"updatedAt":      now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var point models.Point
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&point)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the insert race; the winner's document is there now.
		err = r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&point)
	}
	if err != nil {
		return nil, fmt.Errorf("find or create point record: %w", translate(err))
	}
	return &point, nil
}

// FindByUserID returns the user's Point document without creating one
func (r *PointRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Point, error) {
	var point models.Point
	if err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&point); err != nil {
		return nil, translate(err)
	}
	return &point, nil
}

// Debit atomically decrements the balance when it covers amount
func (r *PointRepository) Debit(ctx context.Context, userID primitive.ObjectID, amount int) (*models.Point, error) {
	filter := bson.M{"userId": userID, "balance": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"balance": -amount, "totalUsed": amount, "version": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var point models.Point
	err := r.collection.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&point)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrInsufficientBalance
	}
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// ReverseDebit restores an amount taken by Debit
func (r *PointRepository) ReverseDebit(ctx context.Context, userID primitive.ObjectID, amount int) (*models.Point, error) {
	update := bson.M{
		"$inc": bson.M{"balance": amount, "totalUsed": -amount, "version": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var point models.Point
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, returnAfter).Decode(&point); err != nil {
		return nil, translate(err)
	}
	return &point, nil
}

// Credit atomically increments the balance and the matching running total
func (r *PointRepository) Credit(ctx context.Context, userID primitive.ObjectID, amount int, kind models.TransactionType) (*models.Point, error) {
	var totalField string
	setOnInsert := bson.M{"userId": userID, "totalUsed": 0, "createdAt": time.Now()}
	switch kind {
	case models.TransactionTypePurchase:
		totalField = "totalPurchased"
		setOnInsert["totalRefunded"] = 0
	case models.TransactionTypeRefund:
		totalField = "totalRefunded"
		setOnInsert["totalPurchased"] = 0
	default:
		return nil, fmt.Errorf("cannot credit points as %q", kind)
	}

	update := bson.M{
		"$inc":         bson.M{"balance": amount, totalField: amount, "version": 1},
		"$set":         bson.M{"updatedAt": time.Now()},
		"$setOnInsert": setOnInsert,
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var point models.Point
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).Decode(&point); err != nil {
		return nil, translate(err)
	}
	return &point, nil
}

// ReversePurchase takes back a purchase credit, provided the balance still covers it
func (r *PointRepository) ReversePurchase(ctx context.Context, userID primitive.ObjectID, amount int) (*models.Point, error) {
	filter := bson.M{"userId": userID, "balance": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"balance": -amount, "totalPurchased": -amount, "version": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	var point models.Point
	err := r.collection.FindOneAndUpdate(ctx, filter, update, returnAfter).Decode(&point)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrInsufficientBalance
	}
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// FindAll retrieves every Point document
func (r *PointRepository) FindAll(ctx context.Context) ([]*models.Point, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var points []*models.Point
	if err = cursor.All(ctx, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []*models.Point{}
	}
	return points, nil
}

// DeleteByUserID removes the user's Point document
func (r *PointRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
