package api

import (
	"context"
	"sync"
	"testing"

	"github.com/kdimtricp/swingcore/internal/session"
)

func TestSessionCache_ConcurrentGet(t *testing.T) {
	ts := setupTestServer(t)
	video := ts.mustUpload(t, poseDocument(t, nil, 0, 0.1, 0.2))
	cache := NewSessionCache(ts.App.VideoRepo, ts.App.PoseRepo, 0.8, ts.App.Registry)

	const workers = 8
	results := make([]*session.Session, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Get(context.Background(), video.ID)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("Get %d failed: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Errorf("Expected every Get to return the same session, got a different one at %d", i)
		}
	}
	if cache.Len() != 1 {
		t.Errorf("Expected 1 cached session, got %d", cache.Len())
	}
}

func TestSessionCache_Bounded(t *testing.T) {
	ts := setupTestServer(t)
	cache := NewSessionCache(ts.App.VideoRepo, ts.App.PoseRepo, 0.8, ts.App.Registry)
	cache.limit = 2

	var ids []string
	for i := 0; i < 3; i++ {
		video := ts.mustUpload(t, poseDocument(t, nil, 0, 0.1))
		if _, err := cache.Get(context.Background(), video.ID); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		ids = append(ids, video.ID)
	}

	if cache.Len() != 2 {
		t.Fatalf("Expected 2 cached sessions, got %d", cache.Len())
	}

	cache.mu.Lock()
	_, oldest := cache.sessions[ids[0]]
	_, newest := cache.sessions[ids[2]]
	cache.mu.Unlock()
	if oldest {
		t.Error("Expected the oldest session to be dropped")
	}
	if !newest {
		t.Error("Expected the newest session to be cached")
	}

	cache.Evict(ids[2])
	if cache.Len() != 1 {
		t.Errorf("Expected 1 cached session after evict, got %d", cache.Len())
	}
	if len(cache.order) != 1 {
		t.Errorf("Expected eviction order to track 1 video, got %d", len(cache.order))
	}
}

func TestSessionCache_MissingVideo(t *testing.T) {
	ts := setupTestServer(t)
	cache := NewSessionCache(ts.App.VideoRepo, ts.App.PoseRepo, 0.8, ts.App.Registry)

	if _, err := cache.Get(context.Background(), "does-not-exist"); err == nil {
		t.Error("Expected error for unknown video")
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache, got %d", cache.Len())
	}
}
