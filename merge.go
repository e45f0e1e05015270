package batch

import (
	"cmp"

	"golang.org/x/exp/slog"
)

// Merger is the Source merging ordered sources into one ordered sequence of
// batches.
type Merger[V any] struct {
	srcs    []Source[V]
	cmp     func(V, V) int
	tree    tree[V]
	built   bool
	buf     *Buffer[V]
	count   int
	limit   int
	err     error
	done    bool
	running bool
	owned   bool
	logger  *slog.Logger
}

// Merge merges multiple sources into one. The sources must produce ordered
// values.
func Merge[V cmp.Ordered](srcs []Source[V], options ...Option) *Merger[V] {
	return MergeFunc(cmp.Compare[V], srcs, options...)
}

// MergeFunc merges multiple sources into one using the given comparison
// function to determine the order of values. The sources must be ordered by
// the same comparison function. The merger takes ownership of the sources.
func MergeFunc[V any](cmp func(V, V) int, srcs []Source[V], options ...Option) *Merger[V] {
	for _, src := range srcs {
		acquire(src)
	}
	c := makeConfig(options)
	m := &Merger[V]{
		srcs:   srcs,
		cmp:    cmp,
		buf:    NewBuffer[V](c.size),
		limit:  c.limit,
		logger: c.logger,
	}
	if m.limit == 0 {
		m.finish()
	}
	return m
}

func (m *Merger[V]) Resume() {
	if m.running {
		violate("re-entrant resume of producer")
	}
	if m.done {
		violate("resume of completed producer")
	}
	m.running = true
	defer func() { m.running = false }()
	m.buf.Reset()

	if !m.built {
		m.built = true
		t, err := buildTree(m.srcs...)
		if err != nil {
			m.fail(err)
			return
		}
		m.tree = t
	}

	if err := m.tree.next(m.buf, m.cmp); err != nil {
		m.fail(err)
		return
	}

	m.count += m.buf.Len()
	if m.limit >= 0 && m.count >= m.limit {
		m.buf.Truncate(m.buf.Len() - (m.count - m.limit))
		m.count = m.limit
		m.finish()
	} else if m.tree.count == 0 {
		m.finish()
	}

	if m.logger != nil {
		m.logger.Debug("batch merged", "size", m.buf.Len(), "sources", m.tree.count, "done", m.done)
	}
}

func (m *Merger[V]) fail(err error) {
	m.err = err
	if m.logger != nil {
		m.logger.Warn("merge failed", "error", err)
	}
	m.finish()
}

func (m *Merger[V]) Done() bool { return m.done }

func (m *Merger[V]) TakeErr() error {
	err := m.err
	m.err = nil
	return err
}

func (m *Merger[V]) Batch() []V { return m.buf.Values() }

// Stop completes the merger and all of its sources.
func (m *Merger[V]) Stop() {
	if m.running {
		violate("stop of running producer")
	}
	m.finish()
}

func (m *Merger[V]) finish() {
	m.done = true
	for _, src := range m.srcs {
		src.Stop()
	}
}

func (m *Merger[V]) acquire() {
	if m.owned {
		violate("producer is already attached to a cursor")
	}
	m.owned = true
}
