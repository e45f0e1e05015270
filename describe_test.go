package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	it := Take(Join(NewBatches(Generate(identity, BatchSize(4)))), 10)

	lines := strings.Split(strings.TrimSpace(Describe(it)), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "take(10)", lines[0])
	assert.Contains(t, lines[1], "join")
	assert.Contains(t, lines[2], "nested")
	assert.Contains(t, lines[3], "producer(generate, batch=4)")
}

func TestDescribeMerge(t *testing.T) {
	m := Merge([]Source[int]{
		Generate(identity, BatchSize(2), Limit(5)),
		FromBatches(bulkCount(2, 3)),
		Zip(func(a, b int) int { return a + b },
			NewCursor(Generate(identity, BatchSize(1))),
			NewCursor(FromSeq(count(3), BatchSize(3))),
		),
	}, BatchSize(16))

	out := Describe(NewCursor(m))
	for _, want := range []string{
		"cursor",
		"merge(batch=16)",
		"producer(generate, batch=2, limit=5)",
		"producer(batches)",
		"producer(zip, batch=128)",
		"producer(generate, batch=1)",
		"producer(seq, batch=3)",
	} {
		assert.Contains(t, out, want)
	}
}
