package repository

import (
	"context"

	"blogapi/internal/model"
)

// BlogRepository defines persistence operations over blog posts.
// No business logic here — strictly persistence operations.
type BlogRepository interface {
	// Create inserts a new blog post. A slug collision surfaces as
	// ErrDuplicate. Returns the stored blog including server-assigned fields.
	Create(ctx context.Context, blog *model.Blog) (*model.Blog, error)

	// List returns a page of blogs ordered by creation time descending, plus
	// the total document count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Blog], error)

	// FindBySlug returns the blog with the given unique slug, or ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*model.Blog, error)
}
