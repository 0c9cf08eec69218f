package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/viewtube/backend/config"
	"github.com/viewtube/backend/internal/apperr"
)

// Object is the result of an upload: the public URL persisted on the
// entity and the storage key needed to delete the object later.
type Object struct {
	URL string
	Key string
}

// Client wraps the object store used for video files and thumbnails.
type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

// New connects to the object store and ensures the bucket exists.
func New(ctx context.Context, cfg config.MinioConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Client{mc: mc, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// Upload streams an object into the store under folder and returns its
// URL and key. The key embeds a random component so uploads never
// collide.
func (c *Client) Upload(ctx context.Context, r io.Reader, size int64, contentType, folder, filename string) (*Object, error) {
	key := path.Join(folder, uuid.New().String()+filepath.Ext(filename))

	_, err := c.mc.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "object store upload failed", err)
	}

	return &Object{
		URL: fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key),
		Key: key,
	}, nil
}

// Delete removes an object by its storage key.
func (c *Client) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperr.Wrap(apperr.Upstream, "object store delete failed", err)
	}
	return nil
}
