package batch

import (
	"fmt"

	"github.com/xlab/treeprint"
)

type describer interface {
	describe() (label string, children []any)
}

// Describe renders the layers of a cursor or source as a tree, one line per
// layer, starting from the outermost one.
func Describe(v any) string {
	label, children := describeOf(v)
	t := treeprint.NewWithRoot(label)
	addChildren(t, children)
	return t.String()
}

func addChildren(t treeprint.Tree, children []any) {
	for _, child := range children {
		label, sub := describeOf(child)
		if len(sub) == 0 {
			t.AddNode(label)
		} else {
			addChildren(t.AddBranch(label), sub)
		}
	}
}

func describeOf(v any) (string, []any) {
	if d, ok := v.(describer); ok {
		return d.describe()
	}
	return fmt.Sprintf("%T", v), nil
}

func (p *Producer[V]) describe() (string, []any) {
	label := fmt.Sprintf("producer(%s, batch=%d", p.kind, p.buf.Cap())
	if p.limit >= 0 {
		label += fmt.Sprintf(", limit=%d", p.limit)
	}
	return label + ")", p.inputs
}

func (s *batchSource[V]) describe() (string, []any) { return "producer(batches)", nil }

func (m *Merger[V]) describe() (string, []any) {
	children := make([]any, len(m.srcs))
	for i, src := range m.srcs {
		children[i] = src
	}
	return fmt.Sprintf("merge(batch=%d)", m.buf.Cap()), children
}

func (c *Cursor[V]) describe() (string, []any) { return "cursor", []any{c.src} }

func (b *Batches[V]) describe() (string, []any) { return "nested", []any{b.src} }

func (j *Joined[V]) describe() (string, []any) { return "join", []any{j.batches} }

func (t *take[V]) describe() (string, []any) {
	return fmt.Sprintf("take(%d)", t.limit), []any{t.Iterator}
}
