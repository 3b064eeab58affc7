// File: /models/post.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	KindText  = "text"
	KindImage = "image"
)

// MediaRef points at an uploaded object in the media store. StorageID is
// what we need to release the object again when the post is deleted.
type MediaRef struct {
	URL       string `json:"url"`
	StorageID string `json:"storage_id"`
}

type Post struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	Kind           string    `json:"kind" gorm:"size:8;not null"`
	Body           string    `json:"body,omitempty" gorm:"type:text"`
	MediaURL       string    `json:"media_url,omitempty" gorm:"size:512"`
	MediaStorageID string    `json:"media_storage_id,omitempty" gorm:"size:128"`
	Caption        string    `json:"caption,omitempty" gorm:"size:512"`
	LikeCount      int       `json:"like_count" gorm:"not null;default:0"`
	Hidden         bool      `json:"hidden" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// NewTextPost builds a visible text post. The body must be non-empty; a
// text post never carries a media reference.
func NewTextPost(body string) (*Post, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: text content is required", ErrInvalidInput)
	}

	return &Post{
		ID:   uuid.New().String(),
		Kind: KindText,
		Body: body,
	}, nil
}

// NewImagePost builds a visible image post from an already stored upload.
// Both halves of the media reference must be present; the caption is
// optional.
func NewImagePost(media MediaRef, caption string) (*Post, error) {
	if media.URL == "" || media.StorageID == "" {
		return nil, fmt.Errorf("%w: image upload is required", ErrInvalidInput)
	}

	return &Post{
		ID:             uuid.New().String(),
		Kind:           KindImage,
		MediaURL:       media.URL,
		MediaStorageID: media.StorageID,
		Caption:        strings.TrimSpace(caption),
	}, nil
}

// Media returns the post's media reference, or false for text posts.
func (p *Post) Media() (MediaRef, bool) {
	if p.Kind != KindImage || p.MediaStorageID == "" {
		return MediaRef{}, false
	}
	return MediaRef{URL: p.MediaURL, StorageID: p.MediaStorageID}, true
}
