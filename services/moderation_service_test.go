// File: /services/moderation_service_test.go
package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"livewall-api/models"
)

func newTestModeration() (*ModerationService, *fakeStore, *fakeMedia, *recordingBroadcaster) {
	store := newFakeStore()
	media := newFakeMedia()
	broadcaster := &recordingBroadcaster{}
	return NewModerationService(store, media, broadcaster, nil), store, media, broadcaster
}

func TestSubmitTextPublishesAfterPersist(t *testing.T) {
	svc, store, _, broadcaster := newTestModeration()

	post, err := svc.SubmitText(context.Background(), "first post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.Get(context.Background(), post.ID); err != nil {
		t.Fatalf("post was not persisted: %v", err)
	}

	events := broadcaster.all()
	if len(events) != 1 {
		t.Fatalf("published %d events, want 1", len(events))
	}
	if events[0].Name != models.EventNewPost {
		t.Errorf("event name = %q, want %q", events[0].Name, models.EventNewPost)
	}
}

func TestSubmitTextRejectionPublishesNothing(t *testing.T) {
	svc, store, _, broadcaster := newTestModeration()

	_, err := svc.SubmitText(context.Background(), "   ")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}

	if posts, _ := store.All(context.Background()); len(posts) != 0 {
		t.Errorf("rejected submission created %d post(s)", len(posts))
	}
	if events := broadcaster.all(); len(events) != 0 {
		t.Errorf("rejected submission published %d event(s)", len(events))
	}
}

func TestSubmitImage(t *testing.T) {
	svc, _, _, broadcaster := newTestModeration()

	post, err := svc.SubmitImage(context.Background(), []byte{0xff, 0xd8}, "image/jpeg", "a caption")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if post.Kind != models.KindImage {
		t.Errorf("kind = %q", post.Kind)
	}
	if _, ok := post.Media(); !ok {
		t.Error("image post carries no media reference")
	}
	if post.Body != "" {
		t.Errorf("image post has body %q", post.Body)
	}
	if got := broadcaster.named(models.EventNewPost); len(got) != 1 {
		t.Errorf("published %d newPost events, want 1", len(got))
	}
}

func TestSubmitImageRejectsEmptyUpload(t *testing.T) {
	svc, _, _, broadcaster := newTestModeration()

	if _, err := svc.SubmitImage(context.Background(), nil, "image/jpeg", ""); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if events := broadcaster.all(); len(events) != 0 {
		t.Errorf("published %d event(s) for a rejected upload", len(events))
	}
}

func TestConcurrentLikesAreAllCounted(t *testing.T) {
	svc, store, _, broadcaster := newTestModeration()

	post, err := svc.SubmitText(context.Background(), "like me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Like(context.Background(), post.ID); err != nil {
				t.Errorf("like failed: %v", err)
			}
		}()
	}
	wg.Wait()

	liked, err := store.Get(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if liked.LikeCount != n {
		t.Errorf("like count = %d, want %d (lost updates)", liked.LikeCount, n)
	}
	if got := broadcaster.named(models.EventPostLiked); len(got) != n {
		t.Errorf("published %d postLiked events, want %d", len(got), n)
	}
}

func TestLikeUnknownPost(t *testing.T) {
	svc, _, _, broadcaster := newTestModeration()

	if _, err := svc.Like(context.Background(), "no-such-id"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if events := broadcaster.all(); len(events) != 0 {
		t.Errorf("published %d event(s) for a missing post", len(events))
	}
}

func TestToggleHideIsItsOwnInverse(t *testing.T) {
	svc, _, _, broadcaster := newTestModeration()

	post, err := svc.SubmitText(context.Background(), "now you see me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hidden, err := svc.ToggleHide(context.Background(), post.ID, models.RoleModerator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hidden.Hidden {
		t.Error("first toggle should hide the post")
	}

	restored, err := svc.ToggleHide(context.Background(), post.ID, models.RoleModerator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Hidden {
		t.Error("second toggle should restore visibility")
	}

	changes := broadcaster.named(models.EventVisibilityChanged)
	if len(changes) != 2 {
		t.Fatalf("published %d visibility events, want 2", len(changes))
	}
	// Each carries the full record with the flag at that moment.
	first := changes[0].Payload.(models.VisibilityChangedPayload)
	second := changes[1].Payload.(models.VisibilityChangedPayload)
	if !first.Post.Hidden || second.Post.Hidden {
		t.Error("visibility payloads do not reflect the toggle order")
	}
}

func TestToggleHideRequiresModerator(t *testing.T) {
	svc, _, _, broadcaster := newTestModeration()

	post, _ := svc.SubmitText(context.Background(), "hands off")
	broadcaster.events = nil

	if _, err := svc.ToggleHide(context.Background(), post.ID, models.RolePublic); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
	if events := broadcaster.all(); len(events) != 0 {
		t.Errorf("forbidden toggle published %d event(s)", len(events))
	}
}

func TestDeleteIsTerminal(t *testing.T) {
	svc, _, media, broadcaster := newTestModeration()

	post, err := svc.SubmitImage(context.Background(), []byte{1, 2, 3}, "image/png", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ref, _ := post.Media()

	if err := svc.Delete(context.Background(), post.ID, models.RoleSuperAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := media.releasedIDs(); len(got) != 1 || got[0] != ref.StorageID {
		t.Errorf("released objects = %v, want [%s]", got, ref.StorageID)
	}
	if got := broadcaster.named(models.EventPostDeleted); len(got) != 1 {
		t.Fatalf("published %d postDeleted events, want exactly 1", len(got))
	}

	// Every further operation on the id is NotFound, with no events.
	broadcaster.events = nil
	if _, err := svc.Like(context.Background(), post.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("like after delete: error = %v, want ErrNotFound", err)
	}
	if _, err := svc.ToggleHide(context.Background(), post.ID, models.RoleModerator); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("toggle after delete: error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), post.ID, models.RoleSuperAdmin); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("delete after delete: error = %v, want ErrNotFound", err)
	}
	if events := broadcaster.all(); len(events) != 0 {
		t.Errorf("operations on a deleted id published %d event(s)", len(events))
	}
}

func TestDeleteRequiresSuperAdmin(t *testing.T) {
	svc, store, _, broadcaster := newTestModeration()

	post, _ := svc.SubmitText(context.Background(), "protected")
	broadcaster.events = nil

	for _, role := range []models.Role{models.RolePublic, models.RoleModerator} {
		if err := svc.Delete(context.Background(), post.ID, role); !errors.Is(err, models.ErrForbidden) {
			t.Errorf("Delete as %s: error = %v, want ErrForbidden", role, err)
		}
	}

	if _, err := store.Get(context.Background(), post.ID); err != nil {
		t.Error("forbidden delete removed the post")
	}
	if events := broadcaster.all(); len(events) != 0 {
		t.Errorf("forbidden delete published %d event(s)", len(events))
	}
}

func TestDeleteProceedsWhenMediaReleaseFails(t *testing.T) {
	svc, store, media, broadcaster := newTestModeration()

	post, err := svc.SubmitImage(context.Background(), []byte{1}, "image/png", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	media.failRelease = true
	if err := svc.Delete(context.Background(), post.ID, models.RoleSuperAdmin); err != nil {
		t.Fatalf("release failure must not block deletion, got %v", err)
	}

	if _, err := store.Get(context.Background(), post.ID); !errors.Is(err, models.ErrNotFound) {
		t.Error("post record survived the delete")
	}
	if got := broadcaster.named(models.EventPostDeleted); len(got) != 1 {
		t.Errorf("published %d postDeleted events, want 1", len(got))
	}
}
