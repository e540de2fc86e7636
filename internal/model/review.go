package model

import "time"

// Review is a guest's rating of a property.  Only one review per
// (UserID, PropertyID) pair may exist.  UserName is copied from the
// user at write time.
type Review struct {
    ID         string    `json:"id" bson:"_id" db:"id"`
    UserID     string    `json:"user_id" bson:"user_id" db:"user_id"`
    UserName   string    `json:"user_name" bson:"user_name" db:"user_name"`
    PropertyID string    `json:"property_id" bson:"property_id" db:"property_id"`
    Rating     int       `json:"rating" bson:"rating" db:"rating"`
    Comment    string    `json:"comment" bson:"comment" db:"comment"`
    CreatedAt  time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}
