// Package batch implements lazy sequences whose values are computed in
// batches. Producers suspend once per batch instead of once per value, and
// cursors hide the batching from consumers reading one value at a time.
package batch

import (
	"iter"

	"golang.org/x/exp/slog"
)

// Source is a resumable computation filling batches of values on demand.
//
// Resume computes the next batch, replacing the one previously returned by
// Batch. Once Done reports true, TakeErr returns the failure that completed the
// source, if any, and clears it. Sources are driven by a single cursor from a
// single goroutine.
type Source[V any] interface {
	Resume()
	Done() bool
	TakeErr() error
	Batch() []V
	Stop()
}

// Generator computes the value at a logical index.
type Generator[V any] func(index int) (V, error)

// owner is implemented by sources that can only be attached to one cursor.
type owner interface {
	acquire()
}

func acquire[V any](src Source[V]) {
	if o, ok := src.(owner); ok {
		o.acquire()
	}
}

// Producer is the Source computing values one logical index at a time into a
// fixed capacity buffer, suspending once the buffer holds a full batch.
type Producer[V any] struct {
	next    func(index int) (V, bool, error)
	stop    func()
	buf     *Buffer[V]
	index   int
	limit   int
	err     error
	done    bool
	running bool
	owned   bool
	logger  *slog.Logger
	kind    string
	inputs  []any
}

// Generate returns a producer evaluating fn at indexes 0, 1, 2, ...
func Generate[V any](fn func(int) V, options ...Option) *Producer[V] {
	return newProducer(options, "generate", nil, func(i int) (V, bool, error) {
		return fn(i), true, nil
	})
}

// GenerateFunc is like Generate but fn may fail. The first failure completes
// the producer.
func GenerateFunc[V any](fn Generator[V], options ...Option) *Producer[V] {
	return newProducer(options, "generate", nil, func(i int) (V, bool, error) {
		v, err := fn(i)
		return v, true, err
	})
}

// FromSeq returns a producer batching the values of seq. The producer completes
// when seq ends.
func FromSeq[V any](seq iter.Seq[V], options ...Option) *Producer[V] {
	next, stop := iter.Pull(seq)
	return newProducer(options, "seq", stop, func(int) (V, bool, error) {
		v, ok := next()
		return v, ok, nil
	})
}

// FromSeq2 is like FromSeq, the first error yielded by seq completes the
// producer.
func FromSeq2[V any](seq iter.Seq2[V, error], options ...Option) *Producer[V] {
	next, stop := iter.Pull2(seq)
	return newProducer(options, "seq", stop, func(int) (V, bool, error) {
		v, err, ok := next()
		return v, ok, err
	})
}

func newProducer[V any](options []Option, kind string, stop func(), next func(int) (V, bool, error)) *Producer[V] {
	c := makeConfig(options)
	p := &Producer[V]{
		next:   next,
		stop:   stop,
		buf:    NewBuffer[V](c.size),
		limit:  c.limit,
		logger: c.logger,
		kind:   kind,
	}
	if p.limit == 0 {
		p.finish()
	}
	return p
}

// Resume computes the next batch. It returns after the buffer is full, the
// limit is reached, the underlying sequence ends or the generator fails.
func (p *Producer[V]) Resume() {
	if p.running {
		violate("re-entrant resume of producer")
	}
	if p.done {
		violate("resume of completed producer")
	}
	p.running = true
	defer p.suspend()
	p.buf.Reset()

	for !p.buf.Full() {
		v, ok, err := p.next(p.index)
		if err != nil {
			p.fail(err)
			return
		}
		if !ok {
			p.finish()
			return
		}
		p.buf.Append(v)
		if p.index++; p.index == p.limit {
			p.finish()
			return
		}
	}
}

func (p *Producer[V]) suspend() {
	p.running = false

	if err := recoverPanic(recover()); err != nil {
		p.fail(err)
	}

	if p.logger != nil {
		p.logger.Debug("batch produced", "size", p.buf.Len(), "next", p.index, "done", p.done)
	}
}

func (p *Producer[V]) fail(err error) {
	p.err = &GeneratorError{Index: p.index, Err: err}
	if p.logger != nil {
		p.logger.Warn("generator failed", "index", p.index, "error", err)
	}
	p.finish()
}

func (p *Producer[V]) finish() {
	p.done = true
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

func (p *Producer[V]) Done() bool { return p.done }

func (p *Producer[V]) TakeErr() error {
	err := p.err
	p.err = nil
	return err
}

// Batch returns a view of the values computed by the last call to Resume.
func (p *Producer[V]) Batch() []V { return p.buf.Values() }

// BatchSize returns the number of values computed per resume cycle.
func (p *Producer[V]) BatchSize() int { return p.buf.Cap() }

// Stop completes the producer early. Values already in the current batch
// remain readable.
func (p *Producer[V]) Stop() {
	if p.running {
		violate("stop of running producer")
	}
	p.finish()
}

func (p *Producer[V]) acquire() {
	if p.owned {
		violate("producer is already attached to a cursor")
	}
	p.owned = true
}
