package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Preference stores a user's travel criteria in the preferences collection.
// One document per user (unique index on user_id), replaced wholesale on
// every write and deleted together with the owning user.
type Preference struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID            primitive.ObjectID `json:"user_id" bson:"user_id"`
	Destination       string             `json:"destination" bson:"destination"`
	Budget            string             `json:"budget" bson:"budget"`
	TravelStyle       string             `json:"travel_style" bson:"travel_style"`
	FoodPreferences   []string           `json:"food_preferences" bson:"food_preferences"`
	AccommodationType string             `json:"accommodation_type" bson:"accommodation_type"`
	ArrivalTime       string             `json:"arrival_time" bson:"arrival_time"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// UpsertPreferenceRequest defines the request body for creating or replacing
// travel preferences. Omitted fields default to empty.
type UpsertPreferenceRequest struct {
	Destination       string   `json:"destination" validate:"omitempty,max=100"`
	Budget            string   `json:"budget" validate:"omitempty,max=50"`
	TravelStyle       string   `json:"travel_style" validate:"omitempty,max=50"`
	FoodPreferences   []string `json:"food_preferences" validate:"omitempty,dive,max=50"`
	AccommodationType string   `json:"accommodation_type" validate:"omitempty,max=50"`
	ArrivalTime       string   `json:"arrival_time" validate:"omitempty,max=50"`
}

// SearchCriteria is a sparse filter for partner search. Empty fields are
// unconstrained; a criteria with no populated field matches everyone.
type SearchCriteria struct {
	Destination       string `json:"destination" validate:"omitempty,max=100"`
	Budget            string `json:"budget" validate:"omitempty,max=50"`
	TravelStyle       string `json:"travel_style" validate:"omitempty,max=50"`
	AccommodationType string `json:"accommodation_type" validate:"omitempty,max=50"`
	ArrivalTime       string `json:"arrival_time" validate:"omitempty,max=50"`
}

// IsEmpty reports whether no constraint is populated.
func (c SearchCriteria) IsEmpty() bool {
	return c.Destination == "" && c.Budget == "" && c.TravelStyle == "" &&
		c.AccommodationType == "" && c.ArrivalTime == ""
}
