package mongodb

import (
	"context"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure PointTransactionRepository implements the interface
var _ repositories.PointTransactionRepository = (*PointTransactionRepository)(nil)

// PointTransactionRepository handles MongoDB operations for PointTransaction
type PointTransactionRepository struct {
	collection *mongo.Collection
}

// NewPointTransactionRepository creates a new PointTransactionRepository
func NewPointTransactionRepository(db *mongo.Database) *PointTransactionRepository {
	return &PointTransactionRepository{
		collection: db.Collection("point_transactions"),
	}
}

// EnsureIndexes creates the history and refund lookup indexes. A payment
// reference can be recorded by one purchase only.
func (r *PointTransactionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "listingId", Value: 1}, {Key: "type", Value: 1}}},
		{
			Keys: bson.D{{Key: "paymentReference", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"paymentReference": bson.M{"$exists": true}}),
		},
	})
	return err
}

// Create inserts a new point transaction record. A preassigned ID is kept.
func (r *PointTransactionRepository) Create(ctx context.Context, transaction *models.PointTransaction) error {
	if transaction.ID.IsZero() {
		transaction.ID = primitive.NewObjectID()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, transaction)
	return translate(err)
}

// FindByPaymentReference finds the purchase that recorded reference
func (r *PointTransactionRepository) FindByPaymentReference(ctx context.Context, reference string) (*models.PointTransaction, error) {
	var transaction models.PointTransaction
	if err := r.collection.FindOne(ctx, bson.M{"paymentReference": reference}).Decode(&transaction); err != nil {
		return nil, translate(err)
	}
	return &transaction, nil
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// FindByUserID returns one page of a user's transactions, newest first, and the total count
func (r *PointTransactionRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, txType models.TransactionType, page, limit int) ([]*models.PointTransaction, int64, error) {
	filter := bson.M{"userId": userID}
	if txType != "" {
		filter["type"] = txType
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(pageSkip(page, limit)).
		SetLimit(int64(limit)).
		SetSort(newestFirst)

	transactions, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// FindRecent returns the user's n most recent transactions
func (r *PointTransactionRepository) FindRecent(ctx context.Context, userID primitive.ObjectID, n int) ([]*models.PointTransaction, error) {
	opts := options.Find().SetLimit(int64(n)).SetSort(newestFirst)
	return r.find(ctx, bson.M{"userId": userID}, opts)
}

func (r *PointTransactionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.PointTransaction, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*models.PointTransaction
	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil if no documents found
	if transactions == nil {
		transactions = []*models.PointTransaction{}
	}
	return transactions, nil
}

// FindRefundableDeduction finds the latest deduction for the listing that has not been refunded
func (r *PointTransactionRepository) FindRefundableDeduction(ctx context.Context, userID, listingID primitive.ObjectID) (*models.PointTransaction, error) {
	filter := bson.M{
		"userId":                  userID,
		"listingId":               listingID,
		"type":                    models.TransactionTypeDeduction,
		"refundedByTransactionId": bson.M{"$exists": false},
	}
	opts := options.FindOne().SetSort(newestFirst)

	var transaction models.PointTransaction
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&transaction); err != nil {
		return nil, translate(err)
	}
	return &transaction, nil
}

// MarkRefunded links a deduction to the refund reversing it. Only one refund can claim a deduction.
func (r *PointTransactionRepository) MarkRefunded(ctx context.Context, deductionID, refundID primitive.ObjectID) error {
	filter := bson.M{
		"_id":                     deductionID,
		"type":                    models.TransactionTypeDeduction,
		"refundedByTransactionId": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{"refundedByTransactionId": refundID}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrAlreadyRefunded
	}
	return nil
}

// UnmarkRefunded releases a claim made by MarkRefunded for refundID
func (r *PointTransactionRepository) UnmarkRefunded(ctx context.Context, deductionID, refundID primitive.ObjectID) error {
	filter := bson.M{"_id": deductionID, "refundedByTransactionId": refundID}
	update := bson.M{"$unset": bson.M{"refundedByTransactionId": ""}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Totals sums the user's transaction amounts per type
func (r *PointTransactionRepository) Totals(ctx context.Context, userID primitive.ObjectID) (*models.TransactionTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$type", "total": bson.M{"$sum": "$amount"}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type  models.TransactionType `bson:"_id"`
		Total int                    `bson:"total"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	totals := &models.TransactionTotals{}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypePurchase:
			totals.Purchased = row.Total
		case models.TransactionTypeDeduction:
			totals.Used = row.Total
		case models.TransactionTypeRefund:
			totals.Refunded = row.Total
		}
	}
	return totals, nil
}

// DeleteByUserID removes every transaction owned by the user
func (r *PointTransactionRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}
