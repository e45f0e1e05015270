package batch

import "iter"

// Nested is the batch granularity iteration contract. The slice returned by
// Batch is only valid until the next call to Advance.
type Nested[V any] interface {
	Begin() error
	HasValue() bool
	Batch() []V
	Advance() error
}

// Batches reads the values of a Source one batch at a time.
type Batches[V any] struct {
	src     Source[V]
	values  []V
	started bool
}

// NewBatches attaches a batch cursor to src.
func NewBatches[V any](src Source[V]) *Batches[V] {
	acquire(src)
	return &Batches[V]{src: src}
}

func (b *Batches[V]) Begin() error {
	if b.started {
		violate("cursor already started")
	}
	b.started = true
	return b.fill()
}

func (b *Batches[V]) HasValue() bool {
	if !b.started {
		violate("cursor used before Begin")
	}
	return len(b.values) > 0
}

func (b *Batches[V]) Batch() []V {
	if !b.HasValue() {
		violate("read from exhausted cursor")
	}
	return b.values
}

func (b *Batches[V]) Advance() error {
	if !b.HasValue() {
		violate("advance past the end of cursor")
	}
	return b.fill()
}

func (b *Batches[V]) Stop() { b.src.Stop() }

func (b *Batches[V]) fill() error {
	b.values = nil
	for !b.src.Done() {
		b.src.Resume()
		if values := b.src.Batch(); len(values) > 0 {
			b.values = values
			return nil
		}
	}
	return b.src.TakeErr()
}

// FromBatches returns a Source yielding the slices produced by seq as whole
// batches. The slices may be reused by seq once the next batch is requested.
func FromBatches[V any](seq iter.Seq[[]V]) Source[V] {
	next, stop := iter.Pull(seq)
	return &batchSource[V]{
		stop: stop,
		next: func() ([]V, bool, error) {
			values, ok := next()
			return values, ok, nil
		},
	}
}

// FromBatches2 is like FromBatches, the first error yielded by seq completes
// the source.
func FromBatches2[V any](seq iter.Seq2[[]V, error]) Source[V] {
	next, stop := iter.Pull2(seq)
	return &batchSource[V]{
		stop: stop,
		next: func() ([]V, bool, error) {
			values, err, ok := next()
			return values, ok, err
		},
	}
}

type batchSource[V any] struct {
	next    func() ([]V, bool, error)
	stop    func()
	values  []V
	count   int
	err     error
	done    bool
	running bool
	owned   bool
}

func (s *batchSource[V]) Resume() {
	if s.running {
		violate("re-entrant resume of producer")
	}
	if s.done {
		violate("resume of completed producer")
	}
	s.running = true
	defer s.suspend()
	s.values = nil

	values, ok, err := s.next()
	switch {
	case err != nil:
		s.fail(err)
	case !ok:
		s.finish()
	default:
		s.values = values
		s.count += len(values)
	}
}

func (s *batchSource[V]) suspend() {
	s.running = false

	if err := recoverPanic(recover()); err != nil {
		s.fail(err)
	}
}

func (s *batchSource[V]) fail(err error) {
	s.values = nil
	s.err = &GeneratorError{Index: s.count, Err: err}
	s.finish()
}

func (s *batchSource[V]) finish() {
	s.done = true
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}

func (s *batchSource[V]) Done() bool { return s.done }

func (s *batchSource[V]) TakeErr() error {
	err := s.err
	s.err = nil
	return err
}

func (s *batchSource[V]) Batch() []V { return s.values }

func (s *batchSource[V]) Stop() {
	if s.running {
		violate("stop of running producer")
	}
	s.finish()
}

func (s *batchSource[V]) acquire() {
	if s.owned {
		violate("producer is already attached to a cursor")
	}
	s.owned = true
}
