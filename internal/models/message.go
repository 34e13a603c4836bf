package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a directed message document in the messages collection.
// Messages are immutable once created and only bulk-deleted when one of the
// endpoint users is deleted. created_at is the ordering key.
type Message struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SenderID    primitive.ObjectID `json:"sender_id" bson:"sender_id"`
	RecipientID primitive.ObjectID `json:"recipient_id" bson:"recipient_id"`
	Content     string             `json:"content" bson:"content"`
	CreatedAt   time.Time          `json:"timestamp" bson:"created_at"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// Conversation summarizes one peer in the conversation list: the peer's
// public profile and the most recent message in either direction.
type Conversation struct {
	User        UserCompact  `json:"user"`
	LastMessage *LastMessage `json:"last_message,omitempty"`
	UnreadCount int          `json:"unread_count"`
}

// LastMessage carries only the fields the conversation list needs.
type LastMessage struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
