// File: /models/event.go
package models

// Broadcast event names as clients see them on the stream.
const (
	EventNewPost           = "newPost"
	EventPostLiked         = "postLiked"
	EventVisibilityChanged = "postVisibilityChanged"
	EventPostDeleted       = "postDeleted"
)

// Event is one broadcast notification. Exactly one is published per
// accepted mutation, after the mutation is durably applied.
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// PostLikedPayload carries only the id and the new count.
type PostLikedPayload struct {
	ID        string `json:"id"`
	LikeCount int    `json:"like_count"`
}

// VisibilityChangedPayload deliberately carries the whole record, not a
// delta, so a client with stale state self-corrects.
type VisibilityChangedPayload struct {
	Post *Post `json:"post"`
}

type PostDeletedPayload struct {
	PostID string `json:"post_id"`
}

func NewPostEvent(post *Post) Event {
	return Event{Name: EventNewPost, Payload: post}
}

func PostLikedEvent(id string, likeCount int) Event {
	return Event{Name: EventPostLiked, Payload: PostLikedPayload{ID: id, LikeCount: likeCount}}
}

func VisibilityChangedEvent(post *Post) Event {
	return Event{Name: EventVisibilityChanged, Payload: VisibilityChangedPayload{Post: post}}
}

func PostDeletedEvent(id string) Event {
	return Event{Name: EventPostDeleted, Payload: PostDeletedPayload{PostID: id}}
}
