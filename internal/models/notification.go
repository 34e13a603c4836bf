package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is created as a side effect of other operations (registration,
// preference update, message send), never directly by a client.
type Notification struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Type      string             `json:"type" bson:"type"` // welcome, preferences, message
	Content   string             `json:"content" bson:"content"`
	RelatedID string             `json:"related_user_id,omitempty" bson:"related_id,omitempty"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
