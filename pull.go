package batch

import "iter"

// Chunk groups the values of seq into batches of len(buf) values. The batches
// share the memory of buf and are overwritten by the next batch.
//
//go:noinline
func Chunk[V any](seq iter.Seq[V], buf []V) iter.Seq[[]V] {
	if len(buf) == 0 {
		violate("chunk buffer must not be empty")
	}
	return func(yield func([]V) bool) {
		n := 0

		for buf[n] = range seq {
			if n++; n == len(buf) {
				if !yield(buf) {
					return
				}
				n = 0
			}
		}

		if n > 0 {
			yield(buf[:n])
		}
	}
}

// Flatten returns a sequence of the values of each batch of seq, in order.
//
//go:noinline
func Flatten[V any](seq iter.Seq[[]V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for values := range seq {
			for _, value := range values {
				if !yield(value) {
					return
				}
			}
		}
	}
}

// pull turns an Iterator into a function returning its values one at a time,
// beginning it on the first call.
func pull[V any](it Iterator[V]) func() (V, bool, error) {
	started := false
	return func() (value V, ok bool, err error) {
		if !started {
			started = true
			err = it.Begin()
		} else if it.HasValue() {
			err = it.Advance()
		}
		if err != nil || !it.HasValue() {
			return value, false, err
		}
		return it.Value(), true, nil
	}
}
