package batch

import "iter"

// Joined flattens a Nested cursor into element granularity iteration.
type Joined[V any] struct {
	batches Nested[V]
	values  []V
	offset  int
	started bool
}

// Join returns an Iterator over the values of each batch of n, in order.
func Join[V any](n Nested[V]) *Joined[V] {
	return &Joined[V]{batches: n}
}

func (j *Joined[V]) Begin() error {
	if j.started {
		violate("cursor already started")
	}
	j.started = true
	if err := j.batches.Begin(); err != nil {
		return err
	}
	return j.skip()
}

func (j *Joined[V]) HasValue() bool {
	if !j.started {
		violate("cursor used before Begin")
	}
	return j.offset < len(j.values)
}

func (j *Joined[V]) Value() V {
	if !j.HasValue() {
		violate("read from exhausted cursor")
	}
	return j.values[j.offset]
}

func (j *Joined[V]) Advance() error {
	if !j.HasValue() {
		violate("advance past the end of cursor")
	}
	if j.offset++; j.offset < len(j.values) {
		return nil
	}
	if err := j.batches.Advance(); err != nil {
		j.values, j.offset = nil, 0
		return err
	}
	return j.skip()
}

// Stop ends iteration early, see Cursor.Stop.
func (j *Joined[V]) Stop() { stopIterator(j.batches) }

// skip moves to the next non-empty batch; the values of a batch are only
// released once all of them were read.
func (j *Joined[V]) skip() error {
	for j.batches.HasValue() {
		if j.values, j.offset = j.batches.Batch(), 0; len(j.values) > 0 {
			return nil
		}
		if err := j.batches.Advance(); err != nil {
			j.values = nil
			return err
		}
	}
	j.values, j.offset = nil, 0
	return nil
}

type take[V any] struct {
	Iterator[V]
	count int
	limit int
}

// Take returns an Iterator over the first k values of it. The values past the
// k-th are never requested from it.
func Take[V any](it Iterator[V], k int) Iterator[V] {
	if k < 0 {
		violate("take of negative count")
	}
	return &take[V]{Iterator: it, limit: k}
}

func (t *take[V]) Begin() error {
	if t.limit == 0 {
		return nil
	}
	return t.Iterator.Begin()
}

func (t *take[V]) HasValue() bool {
	return t.count < t.limit && t.Iterator.HasValue()
}

func (t *take[V]) Value() V {
	if !t.HasValue() {
		violate("read from exhausted cursor")
	}
	return t.Iterator.Value()
}

func (t *take[V]) Advance() error {
	if !t.HasValue() {
		violate("advance past the end of cursor")
	}
	if t.count++; t.count == t.limit {
		return nil
	}
	return t.Iterator.Advance()
}

func (t *take[V]) Stop() { stopIterator(t.Iterator) }

// All begins it and returns a sequence of its values. The sequence ends after
// yielding a zero value with the error that ended iteration, if any. Breaking
// out of the sequence stops it.
func All[V any](it Iterator[V]) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		var zero V
		if err := it.Begin(); err != nil {
			yield(zero, err)
			return
		}
		for it.HasValue() {
			if !yield(it.Value(), nil) {
				stopIterator(it)
				return
			}
			if err := it.Advance(); err != nil {
				yield(zero, err)
				return
			}
		}
	}
}

// AllBatches is like All for batch granularity cursors. The yielded slices are
// only valid until the next iteration.
func AllBatches[V any](n Nested[V]) iter.Seq2[[]V, error] {
	return func(yield func([]V, error) bool) {
		if err := n.Begin(); err != nil {
			yield(nil, err)
			return
		}
		for n.HasValue() {
			if !yield(n.Batch(), nil) {
				stopIterator(n)
				return
			}
			if err := n.Advance(); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// Collect begins it and returns its first k values, or all of them when k is
// negative. The values read before a failure are returned with it.
func Collect[V any](it Iterator[V], k int) ([]V, error) {
	if k >= 0 {
		it = Take(it, k)
	}
	buf := NewBuffer[V](0)
	for v, err := range All(it) {
		if err != nil {
			return buf.Values(), err
		}
		buf.Append(v)
	}
	return buf.Values(), nil
}
