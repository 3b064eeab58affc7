// File: /services/fakes_test.go
package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"livewall-api/models"
)

// fakeStore is an in-memory PostStore with the same linearization
// guarantees the real repository gets from the database.
type fakeStore struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newFakeStore() *fakeStore {
	return &fakeStore{posts: make(map[string]*models.Post)}
}

func (s *fakeStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	copied := *post
	s.posts[post.ID] = &copied
	return nil
}

func (s *fakeStore) Get(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

func (s *fakeStore) getLocked(id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (s *fakeStore) IncrementLikes(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	post.LikeCount++
	copied := *post
	return &copied, nil
}

func (s *fakeStore) ToggleHidden(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	post.Hidden = !post.Hidden
	copied := *post
	return &copied, nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	delete(s.posts, id)
	return post, nil
}

func (s *fakeStore) QueryByDateRange(ctx context.Context, start, end time.Time, includeHidden bool) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Post, 0)
	for _, post := range s.posts {
		if post.CreatedAt.Before(start) || post.CreatedAt.After(end) {
			continue
		}
		if post.Hidden && !includeHidden {
			continue
		}
		result = append(result, *post)
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *fakeStore) All(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		result = append(result, *post)
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// recordingBroadcaster captures every published event.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []models.Event
}

func (b *recordingBroadcaster) Publish(event models.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBroadcaster) all() []models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Event(nil), b.events...)
}

func (b *recordingBroadcaster) named(name string) []models.Event {
	var matched []models.Event
	for _, event := range b.all() {
		if event.Name == name {
			matched = append(matched, event)
		}
	}
	return matched
}

// fakeMedia is an in-memory MediaStore.
type fakeMedia struct {
	mu          sync.Mutex
	stored      map[string][]byte
	released    []string
	failRelease bool
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{stored: make(map[string][]byte)}
}

func (m *fakeMedia) Store(ctx context.Context, data []byte, contentType string) (models.MediaRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String() + ".jpg"
	m.stored[id] = data
	return models.MediaRef{
		URL:       "http://media.test/" + id,
		StorageID: id,
	}, nil
}

func (m *fakeMedia) Release(ctx context.Context, storageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failRelease {
		return fmt.Errorf("object store is down")
	}
	delete(m.stored, storageID)
	m.released = append(m.released, storageID)
	return nil
}

func (m *fakeMedia) releasedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.released...)
}
