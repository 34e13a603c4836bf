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

// PreferenceRepository defines the interface for travel preference operations
type PreferenceRepository interface {
	Upsert(ctx context.Context, userID string, req *models.UpsertPreferenceRequest) (*models.Preference, error)
	GetByUserID(ctx context.Context, userID string) (*models.Preference, error)
	GetAllExcept(ctx context.Context, userID string) ([]models.Preference, error)
	FindByCriteria(ctx context.Context, criteria models.SearchCriteria) ([]models.Preference, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

// MongoPreferenceRepository implements PreferenceRepository for MongoDB
type MongoPreferenceRepository struct {
	collection *mongo.Collection
}

// NewMongoPreferenceRepository creates a new MongoPreferenceRepository
func NewMongoPreferenceRepository(db *mongo.Database) *MongoPreferenceRepository {
	return &MongoPreferenceRepository{collection: db.Collection("preferences")}
}

// EnsureIndexes creates the unique user_id index keeping preferences 1:1
// with users.
func (r *MongoPreferenceRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_preferences_user"),
	})
	return err
}

// Upsert replaces the user's preference document wholesale and returns the
// stored record.
func (r *MongoPreferenceRepository) Upsert(ctx context.Context, userID string, req *models.UpsertPreferenceRequest) (*models.Preference, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	food := req.FoodPreferences
	if food == nil {
		food = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"destination":        req.Destination,
			"budget":             req.Budget,
			"travel_style":       req.TravelStyle,
			"food_preferences":   food,
			"accommodation_type": req.AccommodationType,
			"arrival_time":       req.ArrivalTime,
			"updated_at":         time.Now(),
		},
	}

	var pref models.Preference
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"user_id": objID}, update, opts).Decode(&pref)
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// GetByUserID retrieves the preference record owned by a user. Returns
// errs.ErrNotFound when the user has not set preferences yet.
func (r *MongoPreferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.Preference, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	var pref models.Preference
	err = r.collection.FindOne(ctx, bson.M{"user_id": objID}).Decode(&pref)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &pref, nil
}

// GetAllExcept scans every preference record except the given user's own.
// The matching engine filters the result in memory; the collection is scanned
// in full on every call.
func (r *MongoPreferenceRepository) GetAllExcept(ctx context.Context, userID string) ([]models.Preference, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": bson.M{"$ne": objID}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prefs []models.Preference
	if err = cursor.All(ctx, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// FindByCriteria queries preferences by exact equality on the populated
// criteria fields. An empty criteria matches every record.
func (r *MongoPreferenceRepository) FindByCriteria(ctx context.Context, criteria models.SearchCriteria) ([]models.Preference, error) {
	filter := bson.M{}
	if criteria.Destination != "" {
		filter["destination"] = criteria.Destination
	}
	if criteria.Budget != "" {
		filter["budget"] = criteria.Budget
	}
	if criteria.TravelStyle != "" {
		filter["travel_style"] = criteria.TravelStyle
	}
	if criteria.AccommodationType != "" {
		filter["accommodation_type"] = criteria.AccommodationType
	}
	if criteria.ArrivalTime != "" {
		filter["arrival_time"] = criteria.ArrivalTime
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prefs []models.Preference
	if err = cursor.All(ctx, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// DeleteByUserID removes the user's preference record, if any
func (r *MongoPreferenceRepository) DeleteByUserID(ctx context.Context, userID string) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return errs.ErrNotFound
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"user_id": objID})
	return err
}
