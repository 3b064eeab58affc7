// File: /services/store.go
package services

import (
	"context"
	"time"

	"livewall-api/models"
)

// PostStore is the durable post collection the services mutate and query.
// Implementations must make IncrementLikes and ToggleHidden true in-place
// updates: concurrent calls on the same id may never lose writes.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	Get(ctx context.Context, id string) (*models.Post, error)
	IncrementLikes(ctx context.Context, id string) (*models.Post, error)
	ToggleHidden(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id string) (*models.Post, error)
	QueryByDateRange(ctx context.Context, start, end time.Time, includeHidden bool) ([]models.Post, error)
	All(ctx context.Context) ([]models.Post, error)
}

// MediaStore holds uploaded binaries outside the database. Store returns
// the pair needed to serve and later release the object.
type MediaStore interface {
	Store(ctx context.Context, data []byte, contentType string) (models.MediaRef, error)
	Release(ctx context.Context, storageID string) error
}
