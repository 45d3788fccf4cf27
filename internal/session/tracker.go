package session

import (
	"context"
	"sync"
	"sync/atomic"
)

// Tracker computes Updates off the display goroutine. It holds at most one
// pending request: a newer time replaces an unconsumed older one, and only
// the newest result is kept for the consumer.
type Tracker struct {
	session *Session

	mu      sync.Mutex
	cond    *sync.Cond
	pending *float64
	closed  bool

	results chan Update
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	started atomic.Bool

	requests uint64
	computed uint64
	dropped  uint64
}

type TrackerStats struct {
	Requests uint64 `json:"requests"`
	Computed uint64 `json:"computed"`
	Dropped  uint64 `json:"dropped"`
}

func NewTracker(s *Session) *Tracker {
	t := &Tracker{
		session: s,
		results: make(chan Update, 1),
		quit:    make(chan struct{}),
	}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// Start launches the compute loop. It stops when ctx is done or Stop is called.
func (t *Tracker) Start(ctx context.Context) {
	if !t.started.CompareAndSwap(false, true) {
		return
	}

	t.wg.Add(1)
	go t.loop()

	go func() {
		select {
		case <-ctx.Done():
			t.Stop()
		case <-t.quit:
		}
	}()
}

// Request asks for the Update at ts. It never blocks.
func (t *Tracker) Request(ts float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	atomic.AddUint64(&t.requests, 1)
	if t.pending != nil {
		atomic.AddUint64(&t.dropped, 1)
	}
	t.pending = &ts
	t.cond.Signal()
}

// Results delivers computed Updates. It is closed after Stop.
func (t *Tracker) Results() <-chan Update {
	return t.results
}

func (t *Tracker) Stop() {
	t.once.Do(func() {
		t.mu.Lock()
		t.closed = true
		t.cond.Broadcast()
		t.mu.Unlock()
		close(t.quit)

		t.wg.Wait()
		close(t.results)
	})
}

func (t *Tracker) Stats() TrackerStats {
	return TrackerStats{
		Requests: atomic.LoadUint64(&t.requests),
		Computed: atomic.LoadUint64(&t.computed),
		Dropped:  atomic.LoadUint64(&t.dropped),
	}
}

func (t *Tracker) loop() {
	defer t.wg.Done()

	for {
		t.mu.Lock()
		for t.pending == nil && !t.closed {
			t.cond.Wait()
		}
		if t.closed {
			t.mu.Unlock()
			return
		}
		ts := *t.pending
		t.pending = nil
		t.mu.Unlock()

		u := t.session.Update(ts)
		atomic.AddUint64(&t.computed, 1)
		t.publish(u)
	}
}

// publish replaces any result the consumer has not read yet.
func (t *Tracker) publish(u Update) {
	select {
	case t.results <- u:
		return
	default:
	}

	select {
	case <-t.results:
		atomic.AddUint64(&t.dropped, 1)
	default:
	}
	t.results <- u
}
