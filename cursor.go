package batch

// Iterator is the element granularity iteration contract.
//
// Begin computes the first values and must be called once before any other
// method. Value returns a copy of the current value; it panics when HasValue
// is false. Advance moves to the next value, resuming the underlying producer
// when the current batch is exhausted, and returns the failure that completed
// the producer once all the values computed before it were read.
type Iterator[V any] interface {
	Begin() error
	HasValue() bool
	Value() V
	Advance() error
}

// Cursor reads the values of a Source one at a time.
type Cursor[V any] struct {
	src     Source[V]
	values  []V
	offset  int
	started bool
}

// NewCursor attaches a cursor to src. Sources created by this package can only
// be attached once.
func NewCursor[V any](src Source[V]) *Cursor[V] {
	acquire(src)
	return &Cursor[V]{src: src}
}

func (c *Cursor[V]) Begin() error {
	if c.started {
		violate("cursor already started")
	}
	c.started = true
	return c.fill()
}

func (c *Cursor[V]) HasValue() bool {
	if !c.started {
		violate("cursor used before Begin")
	}
	return c.offset < len(c.values)
}

func (c *Cursor[V]) Value() V {
	if !c.HasValue() {
		violate("read from exhausted cursor")
	}
	return c.values[c.offset]
}

func (c *Cursor[V]) Advance() error {
	if !c.HasValue() {
		violate("advance past the end of cursor")
	}
	if c.offset++; c.offset < len(c.values) {
		return nil
	}
	return c.fill()
}

// Stop ends iteration early. The values of the current batch stay readable.
func (c *Cursor[V]) Stop() { c.src.Stop() }

func (c *Cursor[V]) fill() error {
	for {
		if c.src.Done() {
			c.values, c.offset = nil, 0
			return c.src.TakeErr()
		}
		c.src.Resume()
		c.values, c.offset = c.src.Batch(), 0
		if len(c.values) > 0 {
			return nil
		}
	}
}
