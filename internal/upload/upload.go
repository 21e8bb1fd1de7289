// Package upload validates incoming multipart image files and stages them in
// a transient directory pending transfer to object storage.
package upload

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// FieldName is the multipart field a blog image must be sent under.
const FieldName = "image"

// MaxFileSize is the upload ceiling (5 MiB).
const MaxFileSize = 5 << 20

var allowedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file is too large")
	ErrTooManyFiles    = errors.New("only one file may be uploaded")
)

// Validate checks the declared type and size of an uploaded file. It is pure:
// no staging happens here, so rejection never leaves a file behind.
func Validate(fh *multipart.FileHeader) error {
	ct := fh.Header.Get("Content-Type")
	if _, ok := allowedTypes[ct]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
	}
	if fh.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// TempFile is a staged upload awaiting transfer. It exists only for the
// duration of one request; callers must defer Cleanup on every path.
type TempFile struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// Cleanup removes the staged file. Removing an already-removed file is not an
// error.
func (t *TempFile) Cleanup() error {
	if t == nil {
		return nil
	}
	if err := os.Remove(t.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Guardian stages validated uploads into Dir.
type Guardian struct {
	Dir string
}

// FromRequest extracts and stages the optional image file from a multipart
// request. It returns (nil, nil) when no file was sent. Staged names combine
// the field name, a millisecond timestamp, and a random suffix so concurrent
// requests never collide.
func (g *Guardian) FromRequest(c *fiber.Ctx) (*TempFile, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File[FieldName]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > 1 {
		return nil, ErrTooManyFiles
	}

	fh := files[0]
	if err := Validate(fh); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%d-%09d%s",
		FieldName, time.Now().UnixMilli(), rand.Int64N(1_000_000_000),
		filepath.Ext(fh.Filename))
	path := filepath.Join(g.Dir, name)

	if err := c.SaveFile(fh, path); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	return &TempFile{
		Path:        path,
		Name:        name,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	}, nil
}
