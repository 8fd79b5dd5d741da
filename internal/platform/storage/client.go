// Copyright (c) 2026 Cosona. All rights reserved.
// Author: mai.haruki.jp@gmail.com

/*
Package storage provides the object-store client and the image URL resolver.

It wraps a MinIO (S3-compatible) endpoint that holds every uploaded image:
cosplayer profiles, gallery photos, event banners, and blog featured images,
each in its own public-read bucket.

Core Responsibilities:

  - Uploads: Content-type detection, collision-free object naming.
  - Public URLs: Deterministic endpoint/bucket/object URL derivation.
  - Degradation: When unconfigured, the resolver falls back to placeholder
    URLs instead of failing (the public site must always render something).
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/harukimai/cosona/internal/platform/config"
	"github.com/harukimai/cosona/internal/platform/constants"
	"github.com/harukimai/cosona/pkg/uuidv7"
)

// Client wraps the MinIO SDK with Cosona's bucket layout.
type Client struct {
	minio  *minio.Client
	logger *slog.Logger
}

// NewClient connects to the object store and verifies the image buckets.
//
// It returns (nil, nil) when storage is not configured: callers must treat
// a nil client as "uploads disabled" and the [Resolver] degrades to
// placeholders. This keeps local development possible without MinIO.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if !cfg.StorageConfigured() {
		logger.Warn("object storage not configured, uploads disabled")
		return nil, nil
	}

	mc, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
		Region: cfg.StorageRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize client: %w", err)
	}

	client := &Client{minio: mc, logger: logger}

	// Verify every image bucket up front so a misconfigured deployment
	// fails at startup rather than on the first upload.
	for _, bucket := range []string{
		constants.BucketProfiles,
		constants.BucketGallery,
		constants.BucketEvents,
		constants.BucketPosts,
	} {
		exists, err := mc.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("storage: failed to check bucket %q: %w", bucket, err)
		}
		if !exists {
			if err := mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: cfg.StorageRegion}); err != nil {
				return nil, fmt.Errorf("storage: failed to create bucket %q: %w", bucket, err)
			}
		}
	}

	logger.Info("object storage connected", slog.String("endpoint", cfg.StorageEndpoint))
	return client, nil
}

// Ping verifies the object store is reachable, for the readiness probe.
// A nil client reports healthy: unconfigured storage is a valid deployment,
// not an outage.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if _, err := c.minio.BucketExists(ctx, constants.BucketProfiles); err != nil {
		return fmt.Errorf("storage: ping failed: %w", err)
	}
	return nil
}

// PublicBaseURL returns the base URL under which public objects are served.
func (c *Client) PublicBaseURL() string {
	if c == nil {
		return ""
	}
	return strings.TrimSuffix(c.minio.EndpointURL().String(), "/")
}

// Upload stores a file and returns the object path within the bucket.
//
// Object names are UUIDv7-prefixed so concurrent uploads of identically
// named files never collide, and listings stay time-ordered.
func (c *Client) Upload(ctx context.Context, bucket, fileName string, file io.Reader, size int64) (string, error) {
	if c == nil {
		return "", fmt.Errorf("storage: uploads disabled, object storage not configured")
	}

	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := uuidv7.New() + fileExt

	_, err := c.minio.PutObject(ctx, bucket, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-filename": fileName,
		},
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload to %q failed: %w", bucket, err)
	}

	return objectName, nil
}

// Remove deletes an object from a bucket. Missing objects are not an error.
func (c *Client) Remove(ctx context.Context, bucket, objectName string) error {
	if c == nil || objectName == "" {
		return nil
	}

	if err := c.minio.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: remove from %q failed: %w", bucket, err)
	}
	return nil
}
