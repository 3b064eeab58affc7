// File: /repositories/post_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"livewall-api/models"
)

// PostRepository is the durable post store. Counter and flag mutations are
// pushed down into SQL expressions so concurrent calls on the same id never
// lose updates; every call runs under a bounded timeout.
type PostRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewPostRepository(db *gorm.DB, timeout time.Duration) *PostRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostRepository{db: db, timeout: timeout}
}

func (r *PostRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	return nil
}

func (r *PostRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	return &post, nil
}

// IncrementLikes bumps the counter in place. The increment happens inside
// the database, not as a read-modify-write round trip, so N concurrent
// likes always land as +N.
func (r *PostRepository) IncrementLikes(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}

	return r.Get(ctx, id)
}

// ToggleHidden flips the moderation flag in place, same idea as the like
// counter: the database evaluates NOT hidden, so two racing toggles can
// never collapse into one.
func (r *PostRepository) ToggleHidden(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("hidden", gorm.Expr("NOT hidden"))
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.ErrNotFound
	}

	return r.Get(ctx, id)
}

// Delete removes the record for good. The Post model carries no soft-delete
// column; a deleted id is gone and never reused. The removed record is
// returned so the caller can release its media.
func (r *PostRepository) Delete(ctx context.Context, id string) (*models.Post, error) {
	post, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost a race with another delete.
		return nil, models.ErrNotFound
	}
	return post, nil
}

// QueryByDateRange returns posts created inside [start, end], newest first.
// Hidden posts are filtered out unless includeHidden is set.
func (r *PostRepository) QueryByDateRange(ctx context.Context, start, end time.Time, includeHidden bool) ([]models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).
		Where("created_at BETWEEN ? AND ?", start, end)
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}

	posts := make([]models.Post, 0)
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	return posts, nil
}

// All returns every post ever created, hidden included, newest first.
func (r *PostRepository) All(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	posts := make([]models.Post, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}
	return posts, nil
}

// ReferencedStorageIDs returns every media storage id some post still points
// at. Used by the media sweep job to spot orphaned uploads.
func (r *PostRepository) ReferencedStorageIDs(ctx context.Context) (map[string]bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("media_storage_id <> ''").
		Pluck("media_storage_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageFailure, err)
	}

	referenced := make(map[string]bool, len(ids))
	for _, id := range ids {
		referenced[id] = true
	}
	return referenced, nil
}
