package models

import "time"

// FavoriteSet is the persisted per-user favorites document. PropertyIDs
// holds distinct listing identifiers in the order the user added them;
// stale identifiers of deleted listings are tolerated in storage but
// filtered out before display.
type FavoriteSet struct {
	UserID      string    `json:"userId" bson:"_id"`
	PropertyIDs []string  `json:"propertyIds" bson:"propertyIds"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
