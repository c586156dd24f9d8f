// Package window provides the bounded FIFO that feeds the most recent frames
// of a stream to the rank pooling engine.
package window

import (
	"fmt"

	"rank-pooler/internal/logger"
)

// DefaultCapacity is the window length used by the stream driver.
const DefaultCapacity = 10

// Buffer holds at most Cap() items in arrival order. Insertion into a full
// buffer does not evict; callers remove the oldest item first (see Slide).
// A Buffer is not safe for concurrent use.
type Buffer[T any] struct {
	items    []T
	capacity int
	release  func(T)
	logger   logger.Logger
}

type Option[T any] func(*Buffer[T])

// WithRelease registers a hook called for every item that leaves the buffer
// without being handed back to the caller: evicted, dropped on overflow, or
// drained.
func WithRelease[T any](fn func(T)) Option[T] {
	return func(b *Buffer[T]) {
		b.release = fn
	}
}

func New[T any](capacity int, log logger.Logger, opts ...Option[T]) (*Buffer[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("window capacity must be at least 1, got %d", capacity)
	}
	if log == nil {
		log = logger.NewNop()
	}

	b := &Buffer[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
		logger:   log,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Push appends item if there is room. On a full buffer the item is dropped,
// released, and Push reports false.
func (b *Buffer[T]) Push(item T) bool {
	if b.IsFull() {
		b.logger.Warning("Window", "buffer full", map[string]interface{}{
			"capacity": b.capacity,
		})
		b.discard(item)
		return false
	}

	b.items = append(b.items, item)
	return true
}

// PopOldest removes and releases the oldest item. It reports false when the
// buffer is empty.
func (b *Buffer[T]) PopOldest() bool {
	if b.IsEmpty() {
		b.logger.Warning("Window", "buffer empty", nil)
		return false
	}

	oldest := b.items[0]
	last := len(b.items) - 1
	copy(b.items, b.items[1:])
	var zero T
	b.items[last] = zero
	b.items = b.items[:last]
	b.discard(oldest)
	return true
}

// Slide inserts item as the newest element, evicting the oldest one first
// when the buffer is full.
func (b *Buffer[T]) Slide(item T) {
	if b.IsFull() {
		b.PopOldest()
	}
	b.Push(item)
}

// Snapshot returns the current contents, oldest first, in a new slice.
func (b *Buffer[T]) Snapshot() []T {
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out
}

// Drain releases and removes every item.
func (b *Buffer[T]) Drain() {
	for _, item := range b.items {
		b.discard(item)
	}
	clear(b.items)
	b.items = b.items[:0]
}

func (b *Buffer[T]) IsEmpty() bool { return len(b.items) == 0 }

func (b *Buffer[T]) IsFull() bool { return len(b.items) == b.capacity }

func (b *Buffer[T]) Len() int { return len(b.items) }

func (b *Buffer[T]) Cap() int { return b.capacity }

func (b *Buffer[T]) discard(item T) {
	if b.release != nil {
		b.release(item)
	}
}
