package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"blogapi/internal/http/middleware"
	"blogapi/internal/service"
	"blogapi/internal/upload"
)

// CreateBlog handles POST /blogs. The author is always the authenticated
// identity; an author field in the request body is ignored.
func CreateBlog(blogs service.BlogService, guardian *upload.Guardian) fiber.Handler {
	return func(c *fiber.Ctx) error {
		image, err := guardian.FromRequest(c)
		if err != nil {
			return writeUploadError(c, err)
		}

		var in service.CreateBlogInput
		ct := c.Get(fiber.HeaderContentType)
		if strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
			in.Title = c.FormValue("title")
			in.Summary = c.FormValue("summary")
			in.Body = c.FormValue("body")
		} else if err := c.BodyParser(&in); err != nil {
			image.Cleanup()
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		// The staged file and the author identity are bound after parsing so a
		// request body can never supply either.
		in.Image = image
		if claims := middleware.Identity(c); claims != nil {
			in.AuthorID = claims.UserID()
		}

		blog, err := blogs.Create(c.UserContext(), in)
		if err != nil {
			if verr, ok := asValidation(err); ok {
				return writeValidationError(c, verr)
			}
			switch {
			case errors.Is(err, service.ErrDuplicateSlug):
				return writeError(c, fiber.StatusConflict, "DUPLICATE_SLUG", "A blog with this title already exists")
			case errors.Is(err, service.ErrImageUpload):
				return writeError(c, fiber.StatusInternalServerError, "IMAGE_UPLOAD_FAILED", "Image upload failed")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Blog created successfully",
			"blog":    blog,
		})
	}
}

// writeUploadError maps staging failures to their response, echoing the size
// ceiling so clients know the limit without reading docs.
func writeUploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"request_id": requestIDFromCtx(c),
			"code":       "FILE_TOO_LARGE",
			"message":    "File is too large",
			"maxSize":    upload.MaxFileSize,
		})
	case errors.Is(err, upload.ErrUnsupportedType):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "Unsupported file type")
	case errors.Is(err, upload.ErrTooManyFiles):
		return writeError(c, fiber.StatusBadRequest, "TOO_MANY_FILES", "Only one file may be uploaded")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
	}
}

// ListBlogs handles GET /blogs with page/limit pagination. Garbage or
// non-positive values fall back to the defaults.
func ListBlogs(blogs service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)

		res, err := blogs.List(c.UserContext(), page, limit)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
		}
		return c.JSON(res)
	}
}

// GetBlogBySlug handles GET /blogs/:slug.
func GetBlogBySlug(blogs service.BlogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		blog, err := blogs.GetBySlug(c.UserContext(), slug)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"request_id": requestIDFromCtx(c),
					"code":       "NOT_FOUND",
					"message":    "Blog not found",
					"slug":       slug,
				})
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong!")
		}
		return c.JSON(blog)
	}
}
