package poll

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// DefaultInterval is one poll every two seconds: the staleness bound
// the screens are designed around.
const DefaultInterval = 2 * time.Second

// Snapshot is the result of one successful read. Exists is false when
// the polled key is missing.
type Snapshot struct {
	Data   json.RawMessage
	Exists bool
}

// ReadFunc performs one snapshot read of a single path.
type ReadFunc func(ctx context.Context) (json.RawMessage, bool, error)

// Poller re-reads one path on a fixed interval and keeps the latest
// snapshot. A failed poll after the first successful load marks the
// poller stale but keeps the previous snapshot; a persistently failing
// poll is indistinguishable from "no change yet" by design. Each polled
// path gets its own poller with its own unsynchronized timer.
type Poller struct {
	read     ReadFunc
	interval time.Duration
	onUpdate func(Snapshot)

	mu     sync.Mutex
	last   Snapshot
	loaded bool
	stale  bool
}

// New builds a poller. onUpdate may be nil; when set it runs after
// every successful poll, on the poller's goroutine.
func New(read ReadFunc, interval time.Duration, onUpdate func(Snapshot)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{read: read, interval: interval, onUpdate: onUpdate}
}

// Start polls immediately, then on every tick, until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	data, exists, err := p.read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.mu.Lock()
		p.stale = true
		p.mu.Unlock()
		return
	}

	snap := Snapshot{Data: data, Exists: exists}
	p.mu.Lock()
	p.last = snap
	p.loaded = true
	p.stale = false
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(snap)
	}
}

// Latest returns the most recent snapshot and whether any poll has
// completed successfully yet.
func (p *Poller) Latest() (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.loaded
}

// Stale reports whether the last poll attempt failed.
func (p *Poller) Stale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stale
}
