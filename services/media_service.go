// File: /services/media_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"livewall-api/config"
	"livewall-api/models"
)

// MediaService keeps uploaded images in an S3-compatible bucket. The object
// name doubles as the storage id we hand back for later release.
type MediaService struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMediaService(cfg *config.Config) (*MediaService, error) {
	client, err := minio.New(cfg.MediaEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		Secure: cfg.MediaUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media client: %w", err)
	}

	return &MediaService{
		client:  client,
		bucket:  cfg.MediaBucket,
		baseURL: cfg.MediaBaseURL,
	}, nil
}

// EnsureBucket creates the upload bucket if it does not exist yet. Called
// once at startup, not on the request path.
func (s *MediaService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check media bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create media bucket: %w", err)
	}
	return nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func (s *MediaService) Store(ctx context.Context, data []byte, contentType string) (models.MediaRef, error) {
	objectName := uuid.New().String() + extensionFor(contentType)

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("%w: media upload failed: %v", models.ErrStorageFailure, err)
	}

	return models.MediaRef{
		URL:       fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName),
		StorageID: objectName,
	}, nil
}

func (s *MediaService) Release(ctx context.Context, storageID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, storageID, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove media object %s: %w", storageID, err)
	}
	return nil
}

// StoredObject describes one object in the bucket, enough for the sweep
// job to decide whether it is orphaned.
type StoredObject struct {
	StorageID    string
	LastModified time.Time
}

// ListStored enumerates every object currently in the bucket.
func (s *MediaService) ListStored(ctx context.Context) ([]StoredObject, error) {
	var objects []StoredObject
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if info.Err != nil {
			return nil, fmt.Errorf("failed to list media objects: %w", info.Err)
		}
		objects = append(objects, StoredObject{
			StorageID:    info.Key,
			LastModified: info.LastModified,
		})
	}
	return objects, nil
}
