// Package dedupe remembers submitted action IDs so a retried submission is
// acknowledged without being delivered twice.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

const defaultMaxSize = 50_000

// Deduper records seen action IDs.
type Deduper interface {
	// SeenAndRecord reports whether id was already recorded and records it if not.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a submission that was rejected after recording
	// (e.g. queue backpressure) can be retried.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of remembered IDs.
	Size() int
}

// inMemoryDeduper keeps the most recent maxSize IDs. When full, the oldest
// recorded ID is forgotten first. maxSize <= 0 disables eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List // front = newest
	seen    map[string]*list.Element
}

// NewInMemoryDeduper creates a deduper with the given options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.order = list.New()
	d.seen = make(map[string]*list.Element)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		oldest := d.order.Back()
		d.order.Remove(oldest)
		delete(d.seen, oldest.Value.(string))
	}
	d.seen[id] = d.order.PushFront(id)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		d.order.Remove(el)
		delete(d.seen, id)
	}
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.order.Len()
}
