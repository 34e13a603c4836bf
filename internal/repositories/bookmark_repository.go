package repositories

import (
	"context"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookmarkRepository defines the interface for bookmark edge operations
type BookmarkRepository interface {
	Add(ctx context.Context, userID, bookmarkedUserID string) error
	Remove(ctx context.Context, userID, bookmarkedUserID string) error
	ListBookmarkedUserIDs(ctx context.Context, userID string) ([]string, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// MongoBookmarkRepository implements BookmarkRepository for MongoDB
type MongoBookmarkRepository struct {
	collection *mongo.Collection
}

// NewMongoBookmarkRepository creates a new MongoBookmarkRepository
func NewMongoBookmarkRepository(db *mongo.Database) *MongoBookmarkRepository {
	return &MongoBookmarkRepository{collection: db.Collection("bookmarks")}
}

// EnsureIndexes creates the unique compound index over the ordered pair.
// Add is then a single conditional insert; a concurrent duplicate request
// loses with a duplicate key error rather than creating a second edge.
func (r *MongoBookmarkRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "bookmarked_user_id", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("idx_bookmarks_pair"),
	})
	return err
}

// Add inserts the bookmark edge. Returns errs.ErrDuplicate when the profile
// is already bookmarked.
func (r *MongoBookmarkRepository) Add(ctx context.Context, userID, bookmarkedUserID string) error {
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}
	targetObjID, err := primitive.ObjectIDFromHex(bookmarkedUserID)
	if err != nil {
		return errs.ErrNotFound
	}

	_, err = r.collection.InsertOne(ctx, models.Bookmark{
		ID:               primitive.NewObjectID(),
		UserID:           userObjID,
		BookmarkedUserID: targetObjID,
	})
	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrDuplicate
	}
	return err
}

// Remove deletes the bookmark edge. Returns errs.ErrNotFound when it does
// not exist.
func (r *MongoBookmarkRepository) Remove(ctx context.Context, userID, bookmarkedUserID string) error {
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}
	targetObjID, err := primitive.ObjectIDFromHex(bookmarkedUserID)
	if err != nil {
		return errs.ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{
		"user_id":            userObjID,
		"bookmarked_user_id": targetObjID,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListBookmarkedUserIDs returns the IDs of every profile the user bookmarked
func (r *MongoBookmarkRepository) ListBookmarkedUserIDs(ctx context.Context, userID string) ([]string, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": objID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookmarks []models.Bookmark
	if err = cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.BookmarkedUserID.Hex())
	}
	return ids, nil
}

// DeleteByUser removes bookmark edges in both directions for a user
func (r *MongoBookmarkRepository) DeleteByUser(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}

	if _, err := r.collection.DeleteMany(ctx, bson.M{"user_id": objID}); err != nil {
		return err
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"bookmarked_user_id": objID})
	return err
}
