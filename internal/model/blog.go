package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a blog post. Author holds the persisted reference; AuthorInfo
// is filled by the service layer before serialization and is never stored.
type Blog struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title      string              `bson:"title" json:"title"`
	Slug       string              `bson:"slug" json:"slug"`
	Summary    string              `bson:"summary" json:"summary"`
	Body       string              `bson:"body" json:"body"`
	Image      *string             `bson:"image,omitempty" json:"image"`
	Author     *primitive.ObjectID `bson:"author,omitempty" json:"-"`
	AuthorInfo *UserProfile        `bson:"-" json:"author"`
	CreatedAt  time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updated_at" json:"updatedAt"`
}
