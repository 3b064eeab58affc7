// File: /jobs/media_sweep_job.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"livewall-api/repositories"
	"livewall-api/services"
)

type storageReferences interface {
	ReferencedStorageIDs(ctx context.Context) (map[string]bool, error)
}

type mediaBucket interface {
	ListStored(ctx context.Context) ([]services.StoredObject, error)
	Release(ctx context.Context, storageID string) error
}

// MediaSweepJob reclaims uploads no post references anymore: abandoned
// submissions and leftovers from failed deletes. Only objects older than
// minAge are touched so an upload racing with its post insert is safe.
type MediaSweepJob struct {
	store  storageReferences
	media  mediaBucket
	minAge time.Duration
	ticker *time.Ticker
	done   chan bool
}

func NewMediaSweepJob(db *gorm.DB, media *services.MediaService, interval, minAge time.Duration, storeTimeout time.Duration) *MediaSweepJob {
	return &MediaSweepJob{
		store:  repositories.NewPostRepository(db, storeTimeout),
		media:  media,
		minAge: minAge,
		ticker: time.NewTicker(interval),
		done:   make(chan bool),
	}
}

// Start begins the sweep job
func (j *MediaSweepJob) Start() {
	fmt.Println("Media sweep job started")

	go func() {
		// Run immediately on start
		j.sweep()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.sweep()
			case <-j.done:
				fmt.Println("Media sweep job stopped")
				return
			}
		}
	}()
}

// Stop stops the sweep job
func (j *MediaSweepJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *MediaSweepJob) sweep() {
	ctx := context.Background()

	referenced, err := j.store.ReferencedStorageIDs(ctx)
	if err != nil {
		fmt.Printf("Error during media sweep: %v\n", err)
		return
	}

	objects, err := j.media.ListStored(ctx)
	if err != nil {
		fmt.Printf("Error during media sweep: %v\n", err)
		return
	}

	cutoff := time.Now().Add(-j.minAge)
	removed := 0
	for _, object := range objects {
		if referenced[object.StorageID] || object.LastModified.After(cutoff) {
			continue
		}
		if err := j.media.Release(ctx, object.StorageID); err != nil {
			fmt.Printf("Warning: media sweep could not remove %s: %v\n", object.StorageID, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		fmt.Printf("Media sweep removed %d orphaned object(s)\n", removed)
	}
}
