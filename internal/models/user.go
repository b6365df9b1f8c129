package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account on the identity service.
type User struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	DisplayName string             `json:"displayName" bson:"displayName"`
	Email       string             `json:"email" bson:"email"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	PhotoURL    string             `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Password    string             `json:"password,omitempty" bson:"password"`
}

// Identity is the signed-in user view handed to clients; it never
// carries credentials.
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL,omitempty"`
}
