package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultRole is assigned to users registered without an explicit role.
const DefaultRole = "reader"

// User represents an account. Password always holds a bcrypt hash and is
// excluded from JSON output.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password" json:"-"`
	Role        string             `bson:"role" json:"role"`
	CreatedDate time.Time          `bson:"created_date" json:"created_date"`
}

// UserProfile is the only user shape exposed in API responses that embed
// other users (e.g., a blog's author).
type UserProfile struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() *UserProfile {
	return &UserProfile{ID: u.ID, FullName: u.FullName, Email: u.Email}
}
