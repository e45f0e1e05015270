package batch

// Zip returns a producer combining the values of a and b pairwise with f. The
// producer completes when either iterator is exhausted, a failure of either
// iterator becomes the failure of the producer. Zip begins both iterators on
// the first resume.
func Zip[A, B, R any](f func(A, B) R, a Iterator[A], b Iterator[B], options ...Option) *Producer[R] {
	nextA, nextB := pull(a), pull(b)
	stop := func() {
		stopIterator(a)
		stopIterator(b)
	}
	p := newProducer(options, "zip", stop, func(int) (r R, ok bool, err error) {
		va, ok, err := nextA()
		if !ok {
			return r, false, err
		}
		vb, ok, err := nextB()
		if !ok {
			return r, false, err
		}
		return f(va, vb), true, nil
	})
	p.inputs = []any{a, b}
	return p
}

func stopIterator(it any) {
	if s, ok := it.(interface{ Stop() }); ok {
		s.Stop()
	}
}
