package models

import "time"

// Review is a user-authored testimonial. Only the authoring identity
// may delete a given review.
type Review struct {
	ID        string    `json:"id" bson:"_id"`
	Author    string    `json:"author" bson:"author"`
	AvatarURL string    `json:"avatarUrl" bson:"avatarUrl"`
	Rating    int       `json:"rating" bson:"rating"`
	Text      string    `json:"text" bson:"text"`
	UserID    string    `json:"userId" bson:"userId"`
	Date      time.Time `json:"date" bson:"date"`
}

// ReviewInput is the client payload for a review submission. Author
// fields are never taken from the client; they are copied from the
// authenticated identity at submission time.
type ReviewInput struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}
