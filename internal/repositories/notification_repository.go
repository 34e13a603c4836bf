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

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(ctx context.Context, userID, notifType, content, relatedID string) (*models.Notification, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// Create inserts a new unread notification for a user
func (r *MongoNotificationRepository) Create(ctx context.Context, userID, notifType, content, relatedID string) (*models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	notification := &models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    objID,
		Type:      notifType,
		Content:   content,
		RelatedID: relatedID,
		Read:      false,
		CreatedAt: time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// GetByUserID retrieves all notifications for a user, newest first
func (r *MongoNotificationRepository) GetByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": objID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAsRead flags a single notification as read. The user filter keeps one
// user from touching another user's notifications.
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, notificationID, userID string) error {
	notifObjID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return errs.ErrInvalidInput
	}
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": notifObjID, "user_id": userObjID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// MarkAllAsRead flags every unread notification of a user as read
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}
	_, err = r.collection.UpdateMany(ctx,
		bson.M{"user_id": objID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

// DeleteByUserID removes all notifications owned by a user
func (r *MongoNotificationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"user_id": objID})
	return err
}
