package repositories

import (
	"context"
	"time"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for message data operations.
// Messages are append-only: no update or single delete exists, only the bulk
// delete used by the account deletion cascade.
type MessageRepository interface {
	Create(ctx context.Context, senderID, recipientID, content string) (*models.Message, error)
	DistinctPeerIDs(ctx context.Context, userID string) ([]string, error)
	LatestBetween(ctx context.Context, userID, peerID string) (*models.Message, error)
	ListBetween(ctx context.Context, userID, peerID string) ([]models.Message, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// Create appends an immutable message and returns it with the assigned ID
// and timestamp.
func (r *MongoMessageRepository) Create(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	senderObjID, err := primitive.ObjectIDFromHex(senderID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	recipientObjID, err := primitive.ObjectIDFromHex(recipientID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	msg := &models.Message{
		ID:          primitive.NewObjectID(),
		SenderID:    senderObjID,
		RecipientID: recipientObjID,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// DistinctPeerIDs returns every user the given user has exchanged messages
// with: the union of distinct recipients of sent messages and distinct
// senders of received ones, de-duplicated.
func (r *MongoMessageRepository) DistinctPeerIDs(ctx context.Context, userID string) ([]string, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	sentTo, err := r.collection.Distinct(ctx, "recipient_id", bson.M{"sender_id": objID})
	if err != nil {
		return nil, err
	}
	receivedFrom, err := r.collection.Distinct(ctx, "sender_id", bson.M{"recipient_id": objID})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var peers []string
	for _, raw := range append(sentTo, receivedFrom...) {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			continue
		}
		hex := id.Hex()
		if !seen[hex] {
			seen[hex] = true
			peers = append(peers, hex)
		}
	}
	return peers, nil
}

// LatestBetween returns the most recent message between two users, looking at
// both directions. Returns errs.ErrNotFound when no message exists.
func (r *MongoMessageRepository) LatestBetween(ctx context.Context, userID, peerID string) (*models.Message, error) {
	filter, err := bothDirections(userID, peerID)
	if err != nil {
		return nil, err
	}

	var msg models.Message
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err = r.collection.FindOne(ctx, filter, opts).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// ListBetween returns the full thread between two users ordered oldest first
func (r *MongoMessageRepository) ListBetween(ctx context.Context, userID, peerID string) ([]models.Message, error) {
	filter, err := bothDirections(userID, peerID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// DeleteByUser removes every message the user sent or received. Two bulk
// deletes, not atomic together; the cascade tolerates a crash in between.
func (r *MongoMessageRepository) DeleteByUser(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}

	if _, err := r.collection.DeleteMany(ctx, bson.M{"sender_id": objID}); err != nil {
		return err
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"recipient_id": objID})
	return err
}

// bothDirections builds the $or filter matching messages between two users
// regardless of who sent them.
func bothDirections(userID, peerID string) (bson.M, error) {
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	peerObjID, err := primitive.ObjectIDFromHex(peerID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	return bson.M{
		"$or": bson.A{
			bson.M{"sender_id": userObjID, "recipient_id": peerObjID},
			bson.M{"sender_id": peerObjID, "recipient_id": userObjID},
		},
	}, nil
}
