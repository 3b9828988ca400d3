package feed

import "sync"

// Window is a fixed-capacity, newest-first buffer. Pushing into a full
// window drops the oldest entry. It is safe for concurrent use.
type Window[T any] struct {
	mu   sync.RWMutex
	buf  []T
	head int // index of the newest entry
	n    int
}

// NewWindow creates a window holding at most capacity entries.
// A capacity below 1 is raised to 1.
func NewWindow[T any](capacity int) *Window[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Window[T]{buf: make([]T, capacity), head: capacity - 1}
}

// Push prepends v and reports whether the oldest entry was dropped.
func (w *Window[T]) Push(v T) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.head = (w.head + 1) % len(w.buf)
	w.buf[w.head] = v
	if w.n < len(w.buf) {
		w.n++
		return false
	}
	return true
}

// Snapshot copies the entries out, newest first. Never nil.
func (w *Window[T]) Snapshot() []T {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]T, w.n)
	size := len(w.buf)
	for i := 0; i < w.n; i++ {
		out[i] = w.buf[(w.head-i+size)%size]
	}
	return out
}

// Newest returns the most recent entry.
func (w *Window[T]) Newest() (T, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var zero T
	if w.n == 0 {
		return zero, false
	}
	return w.buf[w.head], true
}

// Len returns the number of entries held.
func (w *Window[T]) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.n
}

// Cap returns the window capacity.
func (w *Window[T]) Cap() int {
	return len(w.buf)
}

// Reset empties the window.
func (w *Window[T]) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	var zero T
	for i := range w.buf {
		w.buf[i] = zero
	}
	w.head = len(w.buf) - 1
	w.n = 0
}
