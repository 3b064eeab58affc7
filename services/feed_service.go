// File: /services/feed_service.go
package services

import (
	"context"
	"time"

	"livewall-api/models"
)

// FeedService derives the visible post sequence for a calendar day. All day
// windows are computed in one pinned timezone so every instance agrees on
// what "today" is.
type FeedService struct {
	store PostStore
	loc   *time.Location
}

func NewFeedService(store PostStore, loc *time.Location) *FeedService {
	if loc == nil {
		loc = time.UTC
	}
	return &FeedService{store: store, loc: loc}
}

// DayBounds returns the closed window [00:00:00.000, 23:59:59.999] of the
// calendar day containing t, in the feed timezone. The end is derived from
// the next calendar midnight, not from start+24h: on days where daylight
// saving shifts the clock the day is 23 or 25 hours long, and a fixed
// duration would spill the window into the neighbouring day.
func (fs *FeedService) DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(fs.loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, fs.loc)
	end := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, fs.loc).Add(-time.Millisecond)
	return start, end
}

// GetFeed returns the posts of one calendar day, newest first. A nil date
// means the current day. Hidden posts only show up for moderation roles; a
// day with no posts is an empty slice, not an error.
func (fs *FeedService) GetFeed(ctx context.Context, date *time.Time, role models.Role) ([]models.Post, error) {
	day := time.Now()
	if date != nil {
		day = *date
	}

	start, end := fs.DayBounds(day)
	return fs.store.QueryByDateRange(ctx, start, end, role.CanModerate())
}

// GetAllAdmin is the broader moderation view: every post ever created,
// hidden included, newest first, with no date filter at all.
func (fs *FeedService) GetAllAdmin(ctx context.Context, role models.Role) ([]models.Post, error) {
	if !role.CanModerate() {
		return nil, models.ErrForbidden
	}
	return fs.store.All(ctx)
}
