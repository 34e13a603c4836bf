package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Bookmark is a directed edge from one user to another. A unique compound
// index on (user_id, bookmarked_user_id) keeps the edge boolean.
type Bookmark struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID           primitive.ObjectID `json:"user_id" bson:"user_id"`
	BookmarkedUserID primitive.ObjectID `json:"bookmarked_user_id" bson:"bookmarked_user_id"`
}

// BookmarkedProfile joins the bookmarked user's public profile with their
// travel preferences, when set.
type BookmarkedProfile struct {
	User        UserCompact `json:"user"`
	Preferences *Preference `json:"preferences"`
}
