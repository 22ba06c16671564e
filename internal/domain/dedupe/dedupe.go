// Package dedupe tracks which keys have already been seen.
package dedupe

import "sync"

// Deduper records seen keys so repeats can be detected.
type Deduper[K comparable] interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(key K) bool

	// Unrecord forgets key so it will be treated as new again.
	Unrecord(key K)

	Size() int
}

type inMemoryDeduper[K comparable] struct {
	mu   sync.Mutex
	seen map[K]struct{}
}

// NewInMemoryDeduper creates an unbounded in-memory deduper.
func NewInMemoryDeduper[K comparable](opts ...Option) Deduper[K] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &inMemoryDeduper[K]{seen: make(map[K]struct{}, o.capacity)}
}

func (d *inMemoryDeduper[K]) SeenAndRecord(key K) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper[K]) Unrecord(key K) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key)
}

func (d *inMemoryDeduper[K]) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
