// File: /services/moderation_service.go
package services

import (
	"context"
	"log"

	"livewall-api/models"
)

// Broadcaster fans one event out to every currently connected observer.
// Best-effort only: no replay, no acknowledgment, and a slow observer must
// never delay the caller.
type Broadcaster interface {
	Publish(event models.Event)
}

// AuditMailer notifies the moderation inbox about irreversible actions.
type AuditMailer interface {
	SendDeletionNotice(post *models.Post, releaseErr error) error
}

// ModerationService owns the post lifecycle: every legal transition goes
// through here, is persisted first, and is broadcast exactly once after the
// store accepted it. Rejected or failed mutations publish nothing.
type ModerationService struct {
	store       PostStore
	media       MediaStore
	broadcaster Broadcaster
	mailer      AuditMailer
}

func NewModerationService(store PostStore, media MediaStore, broadcaster Broadcaster, mailer AuditMailer) *ModerationService {
	return &ModerationService{
		store:       store,
		media:       media,
		broadcaster: broadcaster,
		mailer:      mailer,
	}
}

// SubmitText creates a visible text post. Public, no privilege needed.
func (ms *ModerationService) SubmitText(ctx context.Context, body string) (*models.Post, error) {
	post, err := models.NewTextPost(body)
	if err != nil {
		return nil, err
	}

	if err := ms.store.Create(ctx, post); err != nil {
		return nil, err
	}

	ms.broadcaster.Publish(models.NewPostEvent(post))
	return post, nil
}

// SubmitImage stores the upload first, then creates a visible image post
// pointing at it. If persisting the post fails, the upload is released on a
// best-effort basis; a leaked object is reclaimed later by the sweep job.
func (ms *ModerationService) SubmitImage(ctx context.Context, data []byte, contentType, caption string) (*models.Post, error) {
	if len(data) == 0 {
		return nil, models.ErrInvalidInput
	}

	media, err := ms.media.Store(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	post, err := models.NewImagePost(media, caption)
	if err != nil {
		return nil, err
	}

	if err := ms.store.Create(ctx, post); err != nil {
		if relErr := ms.media.Release(ctx, media.StorageID); relErr != nil {
			log.Printf("Warning: could not release upload %s after failed create: %v", media.StorageID, relErr)
		}
		return nil, err
	}

	ms.broadcaster.Publish(models.NewPostEvent(post))
	return post, nil
}

// Like increments the counter on an existing post. Hidden posts can still
// be liked; deleted ones are NotFound.
func (ms *ModerationService) Like(ctx context.Context, id string) (*models.Post, error) {
	post, err := ms.store.IncrementLikes(ctx, id)
	if err != nil {
		return nil, err
	}

	ms.broadcaster.Publish(models.PostLikedEvent(post.ID, post.LikeCount))
	return post, nil
}

// ToggleHide flips a post between visible and hidden. Either moderation
// tier may do this; the broadcast carries the full record so clients decide
// whether to show or drop it.
func (ms *ModerationService) ToggleHide(ctx context.Context, id string, role models.Role) (*models.Post, error) {
	if !role.CanModerate() {
		return nil, models.ErrForbidden
	}

	post, err := ms.store.ToggleHidden(ctx, id)
	if err != nil {
		return nil, err
	}

	ms.broadcaster.Publish(models.VisibilityChangedEvent(post))
	return post, nil
}

// Delete permanently removes a post. Only the highest tier may do this. Any
// stored media is released first; a release failure is reported but never
// rolls back the deletion itself. Deletion is terminal: the id yields
// NotFound from here on.
func (ms *ModerationService) Delete(ctx context.Context, id string, role models.Role) error {
	if !role.CanDelete() {
		return models.ErrForbidden
	}

	post, err := ms.store.Get(ctx, id)
	if err != nil {
		return err
	}

	var releaseErr error
	if media, ok := post.Media(); ok {
		if err := ms.media.Release(ctx, media.StorageID); err != nil {
			releaseErr = &models.MediaReleaseError{StorageID: media.StorageID, Err: err}
			log.Printf("Warning: %v (deleting post %s anyway)", releaseErr, post.ID)
		}
	}

	if _, err := ms.store.Delete(ctx, id); err != nil {
		return err
	}

	ms.broadcaster.Publish(models.PostDeletedEvent(id))

	if ms.mailer != nil {
		go func() {
			if err := ms.mailer.SendDeletionNotice(post, releaseErr); err != nil {
				log.Printf("Warning: could not send deletion notice for post %s: %v", post.ID, err)
			}
		}()
	}

	return nil
}
