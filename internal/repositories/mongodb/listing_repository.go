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

// Compile-time check to ensure ListingRepository implements the interface
var _ repositories.ListingRepository = (*ListingRepository)(nil)

// ListingRepository implements the repositories.ListingRepository interface
type ListingRepository struct {
	collection *mongo.Collection
}

// NewListingRepository creates a new ListingRepository
func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
	}
}

// EnsureIndexes creates the owner and browse indexes
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "propertyType", Value: 1}, {Key: "city", Value: 1}}},
	})
	return err
}

// Create inserts a listing. A preassigned ID is kept so ledger entries can reference it before insert.
func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	_, err := r.collection.InsertOne(ctx, listing)
	return err
}

// FindByID finds a listing by ID
func (r *ListingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	var listing models.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing); err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

// FindAll finds listings matching filter with pagination, newest first
func (r *ListingRepository) FindAll(ctx context.Context, filter models.ListingFilter, page, limit int) ([]*models.Listing, int64, error) {
	query := bson.M{}
	if filter.OwnerID != nil {
		query["ownerId"] = *filter.OwnerID
	}
	if filter.PropertyType != "" {
		query["propertyType"] = filter.PropertyType
	}
	if filter.City != "" {
		query["city"] = filter.City
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(pageSkip(page, limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var listings []*models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, err
	}
	if listings == nil {
		listings = []*models.Listing{}
	}
	return listings, total, nil
}

// Update replaces a listing
func (r *ListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	listing.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": listing.ID}, listing)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a listing
func (r *ListingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// DeleteByOwnerID removes every listing owned by ownerID and reports how many were removed
func (r *ListingRepository) DeleteByOwnerID(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
