package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/kdimtricp/swingcore/internal/banding"
	"github.com/kdimtricp/swingcore/internal/database"
	"github.com/kdimtricp/swingcore/internal/pose"
	"github.com/kdimtricp/swingcore/internal/session"
)

const defaultSessionLimit = 64

// SessionCache keeps a bounded set of sessions, one per video, so pose
// sequences are not reloaded from the database on every request. The
// oldest session is dropped once the limit is reached.
type SessionCache struct {
	videos    *database.VideoRepository
	poses     *database.PoseRepository
	threshold float64
	registry  *banding.Registry
	limit     int

	mu       sync.Mutex
	sessions map[string]*session.Session
	order    []string
	// evictions lets an in-flight load detect that the video was evicted
	// while it was reading from the database.
	evictions uint64
}

func NewSessionCache(videos *database.VideoRepository, poses *database.PoseRepository, threshold float64, registry *banding.Registry) *SessionCache {
	return &SessionCache{
		videos:    videos,
		poses:     poses,
		threshold: threshold,
		registry:  registry,
		limit:     defaultSessionLimit,
		sessions:  make(map[string]*session.Session),
	}
}

// Get returns the session of videoID, loading it on first use. The database
// is read without holding the cache lock.
func (c *SessionCache) Get(ctx context.Context, videoID string) (*session.Session, error) {
	c.mu.Lock()
	if s, ok := c.sessions[videoID]; ok {
		c.mu.Unlock()
		return s, nil
	}
	evictions := c.evictions
	c.mu.Unlock()

	s, err := c.load(ctx, videoID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.sessions[videoID]; ok {
		return existing, nil
	}
	if c.evictions != evictions {
		return s, nil
	}
	for len(c.order) >= c.limit && len(c.order) > 0 {
		delete(c.sessions, c.order[0])
		c.order = c.order[1:]
	}
	c.sessions[videoID] = s
	c.order = append(c.order, videoID)
	return s, nil
}

func (c *SessionCache) load(ctx context.Context, videoID string) (*session.Session, error) {
	video, err := c.videos.GetVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	topo, err := pose.LookupTopology(video.Topology)
	if err != nil {
		return nil, fmt.Errorf("video %s: %w", videoID, err)
	}

	seq, err := c.poses.LoadSequence(ctx, videoID, topo)
	if err != nil {
		return nil, fmt.Errorf("failed to load pose sequence: %w", err)
	}

	cfg := session.DefaultConfig(videoID, seq)
	cfg.VideoSize = video.IntrinsicSize()
	cfg.VisibilityThreshold = c.threshold
	cfg.Registry = c.registry

	return session.New(cfg)
}

// Evict drops the cached session of videoID.
func (c *SessionCache) Evict(videoID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictions++
	if _, ok := c.sessions[videoID]; !ok {
		return
	}
	delete(c.sessions, videoID)
	for i, id := range c.order {
		if id == videoID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}
