package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultUploadTimeout = 30 * time.Second
	defaultPresignExpiry = 15 * time.Minute
)

// UploadOptions control how a staged file is transferred.
type UploadOptions struct {
	// DeleteLocal removes the local file after a successful transfer.
	DeleteLocal bool
	// TimestampKey prefixes the key with a millisecond timestamp so repeated
	// uploads of the same name never collide.
	TimestampKey bool
	// Timeout bounds the remote transfer; zero means the default.
	Timeout time.Duration
}

// Uploader moves staged local files into object storage and returns their
// public URLs.
type Uploader struct {
	store Storage
}

// NewUploader constructs an Uploader on top of a Storage backend.
func NewUploader(store Storage) *Uploader {
	return &Uploader{store: store}
}

// UploadFile reads the file at localPath and transmits it under key. Content
// type is inferred from the key extension, falling back to a generic binary
// type. The transfer is bounded by a timeout so a slow backend cannot hold the
// request indefinitely.
func (u *Uploader) UploadFile(ctx context.Context, localPath, key string, opts UploadOptions) (string, error) {
	if opts.TimestampKey {
		key = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), key)
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat staged file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}
	putCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := u.store.Put(putCtx, key, f, PutObjectOptions{
		Size:        st.Size(),
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	if opts.DeleteLocal {
		f.Close()
		if err := os.Remove(localPath); err != nil {
			return "", fmt.Errorf("remove staged file: %w", err)
		}
	}

	return u.store.PublicURL(key), nil
}

// PresignedURL returns a time-limited download URL for an already-uploaded
// key, for deployments whose bucket is not publicly readable. A non-positive
// expiry falls back to the default.
func (u *Uploader) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	return u.store.PresignGet(ctx, key, expiry)
}
