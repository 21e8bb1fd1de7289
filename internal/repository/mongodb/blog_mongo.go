package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// BlogMongo is a MongoDB implementation of repository.BlogRepository.
type BlogMongo struct {
	col *mongo.Collection
}

// NewBlogMongo creates a new BlogMongo repository over the blogs collection.
func NewBlogMongo(db *mongo.Database) *BlogMongo {
	return &BlogMongo{col: db.Collection("blogs")}
}

var _ repository.BlogRepository = (*BlogMongo)(nil)

// Create inserts a new blog document. Timestamps are server-assigned here so
// callers cannot forge them. The unique slug index turns concurrent slug
// collisions into ErrDuplicate for the losing writer.
func (r *BlogMongo) Create(ctx context.Context, blog *model.Blog) (*model.Blog, error) {
	now := time.Now().UTC()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, blog)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	blog.ID = res.InsertedID.(primitive.ObjectID)
	return blog, nil
}

// List returns blogs using limit/offset pagination and a total count, newest
// first.
func (r *BlogMongo) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Blog], error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count blogs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]model.Blog, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}

	return &repository.PageResult[model.Blog]{
		Items: items,
		Total: int(total),
	}, nil
}

// FindBySlug fetches a single blog by its unique slug.
func (r *BlogMongo) FindBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	var blog model.Blog
	if err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&blog); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return &blog, nil
}
