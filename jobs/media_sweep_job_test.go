// File: /jobs/media_sweep_job_test.go
package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"livewall-api/services"
)

type fakeReferences struct {
	ids map[string]bool
}

func (f *fakeReferences) ReferencedStorageIDs(ctx context.Context) (map[string]bool, error) {
	return f.ids, nil
}

type fakeBucket struct {
	mu      sync.Mutex
	objects []services.StoredObject
	removed []string
}

func (f *fakeBucket) ListStored(ctx context.Context) ([]services.StoredObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]services.StoredObject(nil), f.objects...), nil
}

func (f *fakeBucket) Release(ctx context.Context, storageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, storageID)
	return nil
}

func (f *fakeBucket) removedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.removed...)
}

func newTestSweepJob(refs *fakeReferences, bucket *fakeBucket, minAge time.Duration) *MediaSweepJob {
	return &MediaSweepJob{
		store:  refs,
		media:  bucket,
		minAge: minAge,
		ticker: time.NewTicker(time.Hour),
		done:   make(chan bool),
	}
}

func TestSweepRemovesOnlyOldUnreferencedObjects(t *testing.T) {
	old := time.Now().Add(-2 * time.Hour)
	refs := &fakeReferences{ids: map[string]bool{"kept.jpg": true}}
	bucket := &fakeBucket{objects: []services.StoredObject{
		{StorageID: "kept.jpg", LastModified: old},
		{StorageID: "orphan.jpg", LastModified: old},
		{StorageID: "fresh-upload.jpg", LastModified: time.Now()},
	}}

	job := newTestSweepJob(refs, bucket, time.Hour)
	job.sweep()

	removed := bucket.removedIDs()
	if len(removed) != 1 || removed[0] != "orphan.jpg" {
		t.Errorf("removed = %v, want only the old orphan", removed)
	}
}

func TestSweepJobStartAndStop(t *testing.T) {
	refs := &fakeReferences{ids: map[string]bool{}}
	bucket := &fakeBucket{objects: []services.StoredObject{
		{StorageID: "stale.jpg", LastModified: time.Now().Add(-time.Hour)},
	}}

	job := newTestSweepJob(refs, bucket, time.Minute)
	job.Start()

	// Start runs one sweep immediately.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(bucket.removedIDs()) == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got := bucket.removedIDs(); len(got) != 1 {
		t.Fatalf("initial sweep removed %v, want the stale object", got)
	}

	stopped := make(chan struct{})
	go func() {
		job.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
