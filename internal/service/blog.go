package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
	"blogapi/internal/upload"
)

var (
	ErrNotFound      = errors.New("blog not found")
	ErrDuplicateSlug = errors.New("a blog with this slug already exists")
	ErrImageUpload   = errors.New("image upload failed")
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// CreateBlogInput carries the validated fields for a new blog post. AuthorID
// and Image are server-assigned (identity and guardian respectively) and must
// never be settable through a request body, hence the json:"-" tags.
type CreateBlogInput struct {
	Title   string `json:"title" validate:"required"`
	Summary string `json:"summary" validate:"required"`
	Body    string `json:"body" validate:"required"`

	AuthorID string           `json:"-"`
	Image    *upload.TempFile `json:"-"`
}

// BlogListResult is the service-level DTO for a paginated blog listing.
type BlogListResult struct {
	Blogs       []model.Blog `json:"blogs"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
	TotalBlogs  int          `json:"totalBlogs"`
}

// BlogService defines the use cases for blog posts.
type BlogService interface {
	// Create validates the input, uploads the staged image (if any), and
	// persists the post. The remote transfer completes before the database
	// write so no stored post ever references a URL that does not exist.
	Create(ctx context.Context, in CreateBlogInput) (*model.Blog, error)

	// List returns a page of posts, newest first, with authors expanded to
	// public profiles.
	List(ctx context.Context, page, limit int) (*BlogListResult, error)

	// GetBySlug returns a single post by its unique slug with the author
	// expanded.
	GetBySlug(ctx context.Context, slug string) (*model.Blog, error)
}

type blogService struct {
	blogs         repository.BlogRepository
	users         repository.UserRepository
	uploader      *storage.Uploader
	uploadTimeout time.Duration
}

// NewBlogService constructs a BlogService.
func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository, uploader *storage.Uploader, uploadTimeout time.Duration) BlogService {
	return &blogService{blogs: blogs, users: users, uploader: uploader, uploadTimeout: uploadTimeout}
}

func (s *blogService) Create(ctx context.Context, in CreateBlogInput) (*model.Blog, error) {
	// The staged file is released on every exit path, success or failure.
	defer in.Image.Cleanup()

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var author *primitive.ObjectID
	if in.AuthorID != "" {
		oid, err := primitive.ObjectIDFromHex(in.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("parse author id: %w", err)
		}
		author = &oid
	}

	var imageURL *string
	if in.Image != nil {
		url, err := s.uploader.UploadFile(ctx, in.Image.Path, "uploads/"+in.Image.Name, storage.UploadOptions{
			Timeout: s.uploadTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		imageURL = &url
	}

	blog := &model.Blog{
		Title:   in.Title,
		Slug:    Slugify(in.Title),
		Summary: in.Summary,
		Body:    in.Body,
		Image:   imageURL,
		Author:  author,
	}

	stored, err := s.blogs.Create(ctx, blog)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	if stored.Author != nil {
		if u, err := s.users.FindByID(ctx, stored.Author.Hex()); err == nil {
			stored.AuthorInfo = u.Profile()
		}
	}
	return stored, nil
}

func (s *blogService) List(ctx context.Context, page, limit int) (*BlogListResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := (page - 1) * limit

	res, err := s.blogs.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	if err := s.expandAuthors(ctx, res.Items); err != nil {
		return nil, err
	}

	return &BlogListResult{
		Blogs:       res.Items,
		CurrentPage: page,
		TotalPages:  (res.Total + limit - 1) / limit,
		TotalBlogs:  res.Total,
	}, nil
}

func (s *blogService) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	blog, err := s.blogs.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if blog.Author != nil {
		if u, err := s.users.FindByID(ctx, blog.Author.Hex()); err == nil {
			blog.AuthorInfo = u.Profile()
		}
	}
	return blog, nil
}

// expandAuthors resolves author references to public profiles with a single
// batched lookup.
func (s *blogService) expandAuthors(ctx context.Context, blogs []model.Blog) error {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	for i := range blogs {
		if blogs[i].Author == nil {
			continue
		}
		if _, ok := seen[*blogs[i].Author]; !ok {
			seen[*blogs[i].Author] = struct{}{}
			ids = append(ids, *blogs[i].Author)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	profiles := make(map[primitive.ObjectID]*model.UserProfile, len(users))
	for i := range users {
		profiles[users[i].ID] = users[i].Profile()
	}
	for i := range blogs {
		if blogs[i].Author != nil {
			blogs[i].AuthorInfo = profiles[*blogs[i].Author]
		}
	}
	return nil
}
