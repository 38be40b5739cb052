package mongodb

import (
	"context"
	"strings"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/models"
	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure UserRepository implements the interface
var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository handles MongoDB operations for User
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique email and username indexes
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return repositories.ErrDuplicate
	}
	return err
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

// FindByUsername finds a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Delete deletes a user by ID
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetPointsBalance writes the denormalized balance mirror unless a newer Point
// version is already mirrored. Users without a mirrored version accept any write.
func (r *UserRepository) SetPointsBalance(ctx context.Context, id primitive.ObjectID, balance int, version int64) error {
	filter := bson.M{
		"_id":           id,
		"pointsVersion": bson.M{"$not": bson.M{"$gte": version}},
	}
	update := bson.M{"$set": bson.M{
		"pointsBalance": balance,
		"pointsVersion": version,
		"updatedAt":     time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// SetPointFlags updates the trial/unlimited flags that were provided and returns the user
func (r *UserRepository) SetPointFlags(ctx context.Context, id primitive.ObjectID, isTrial, hasUnlimitedPoints *bool) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if isTrial != nil {
		set["isTrial"] = *isTrial
	}
	if hasUnlimitedPoints != nil {
		set["hasUnlimitedPoints"] = *hasUnlimitedPoints
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// MarkVerified flags the user with the given email as verified
func (r *UserRepository) MarkVerified(ctx context.Context, email string) error {
	update := bson.M{"$set": bson.M{"isVerified": true, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"email": strings.ToLower(email)}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
