package batch

import (
	"strconv"
	"testing"
	"time"
)

var sink int

type counter struct{ i int }

//go:noinline
func (c *counter) next() int {
	i := c.i
	c.i++
	return i
}

type nexter interface{ next() int }

func BenchmarkCounter(b *testing.B) {
	c := &counter{}
	sum := 0
	start := time.Now()
	for range b.N {
		sum += c.next()
	}
	report(b, start, sum)
}

func BenchmarkInterfaceCounter(b *testing.B) {
	var c nexter = &counter{}
	sum := 0
	start := time.Now()
	for range b.N {
		sum += c.next()
	}
	report(b, start, sum)
}

func BenchmarkCursor(b *testing.B) {
	for _, size := range []int{1, 100, 1000} {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			benchmarkIterator(b, NewCursor(Generate(identity, BatchSize(size))))
		})
	}
}

func BenchmarkJoin(b *testing.B) {
	for _, size := range []int{1, 100, 1000} {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			benchmarkIterator(b, Join(NewBatches(Generate(identity, BatchSize(size)))))
		})
	}
}

func BenchmarkBatches(b *testing.B) {
	n := NewBatches(Generate(identity, BatchSize(1000)))
	if err := n.Begin(); err != nil {
		b.Fatal(err)
	}
	sum := 0
	start := time.Now()
	for count := b.N; count > 0; {
		for _, v := range n.Batch() {
			sum += v
			if count--; count == 0 {
				break
			}
		}
		if err := n.Advance(); err != nil {
			b.Fatal(err)
		}
	}
	report(b, start, sum)
}

func BenchmarkFlatten(b *testing.B) {
	sum := 0
	count := b.N
	start := time.Now()
	for v := range Flatten(Chunk(func(yield func(int) bool) {
		for i := 0; yield(i); i++ {
		}
	}, make([]int, 1000))) {
		sum += v
		if count--; count == 0 {
			break
		}
	}
	report(b, start, sum)
}

func benchmarkIterator(b *testing.B, it Iterator[int]) {
	if err := it.Begin(); err != nil {
		b.Fatal(err)
	}
	sum := 0
	start := time.Now()
	for range b.N {
		sum += it.Value()
		if err := it.Advance(); err != nil {
			b.Fatal(err)
		}
	}
	report(b, start, sum)
}

func report(b *testing.B, start time.Time, sum int) {
	duration := time.Since(start)
	b.ReportMetric(float64(b.N)/duration.Seconds(), "values/s")
	sink = sum
}
