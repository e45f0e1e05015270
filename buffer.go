package batch

// Buffer is an appendable sequence of values reused across resume cycles.
//
// A buffer created with a positive capacity never holds more than that many
// values; appending to a full buffer panics. A buffer created with a capacity
// of zero or less grows without bound.
type Buffer[V any] struct {
	values []V
	limit  int
}

// NewBuffer returns an empty buffer with the given capacity.
func NewBuffer[V any](capacity int) *Buffer[V] {
	b := &Buffer[V]{limit: max(capacity, 0)}
	if b.limit > 0 {
		b.values = make([]V, 0, b.limit)
	}
	return b
}

func (b *Buffer[V]) Append(value V) {
	if b.limit > 0 && len(b.values) == b.limit {
		violate("append to full buffer")
	}
	b.values = append(b.values, value)
}

// Reset empties the buffer and retains its backing storage.
func (b *Buffer[V]) Reset() {
	clear(b.values)
	b.values = b.values[:0]
}

// Truncate discards the values past the first n.
func (b *Buffer[V]) Truncate(n int) {
	if n < 0 || n > len(b.values) {
		violate("buffer truncated out of range")
	}
	clear(b.values[n:])
	b.values = b.values[:n]
}

func (b *Buffer[V]) Len() int { return len(b.values) }

// Cap returns the fixed capacity of the buffer, or zero if it is unbounded.
func (b *Buffer[V]) Cap() int { return b.limit }

func (b *Buffer[V]) Full() bool { return b.limit > 0 && len(b.values) == b.limit }

func (b *Buffer[V]) At(i int) V {
	if i < 0 || i >= len(b.values) {
		violate("buffer index out of range")
	}
	return b.values[i]
}

// Values returns a view of the buffer contents. The view is overwritten by the
// next call to Reset.
func (b *Buffer[V]) Values() []V { return b.values }
