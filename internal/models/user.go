package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is one staff credential record. The password hash is never
// serialized back to callers.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
}
