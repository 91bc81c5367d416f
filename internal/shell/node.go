// SPDX-License-Identifier: MPL-2.0

package shell

import "strings"

const (
	blockRoot blockKind = iota
	blockThen
	blockElse
	blockFold
)

type (
	blockKind int

	// node is a rendered unit inside a block.
	node interface {
		render(w *writer)
	}

	// fragment is a sequence of shell lines produced by the emitter.
	fragment []string

	// conditional is an if/else pair. els is attached only while the
	// conditional is still the last node of its parent.
	conditional struct {
		cond string
		then *block
		els  *block
	}

	// fold groups body between begin/end markers.
	fold struct {
		name string
		body *block
	}

	// block is a nesting frame. Once closed it rejects further appends.
	block struct {
		kind   blockKind
		nodes  []node
		closed bool
	}

	writer struct {
		sb    *strings.Builder
		depth int
	}
)

func (k blockKind) String() string {
	switch k {
	case blockRoot:
		return "root"
	case blockThen:
		return "if"
	case blockElse:
		return "else"
	case blockFold:
		return "fold"
	default:
		return "unknown"
	}
}

func newBlock(kind blockKind) *block {
	return &block{kind: kind}
}

func (b *block) append(op string, n node) {
	if b.closed {
		misuse(op, "cannot append to closed %s block", b.kind)
	}
	b.nodes = append(b.nodes, n)
}

func (b *block) last() node {
	if len(b.nodes) == 0 {
		return nil
	}
	return b.nodes[len(b.nodes)-1]
}

func (b *block) close(op string) {
	if b.closed {
		misuse(op, "%s block closed twice", b.kind)
	}
	b.closed = true
}

func (b *block) render(w *writer) {
	// bash rejects an empty branch body
	if len(b.nodes) == 0 && (b.kind == blockThen || b.kind == blockElse) {
		w.line(":")
		return
	}
	for _, n := range b.nodes {
		n.render(w)
	}
}

func (f fragment) render(w *writer) {
	for _, l := range f {
		w.line(l)
	}
}

func (c *conditional) render(w *writer) {
	w.line("if [[ " + c.cond + " ]]; then")
	c.then.render(w.indented())
	if c.els != nil {
		w.line("else")
		c.els.render(w.indented())
	}
	w.line("fi")
}

func (f *fold) render(w *writer) {
	w.line("travis_fold begin " + f.name)
	f.body.render(w)
	w.line("travis_fold end " + f.name)
}

func (w *writer) indented() *writer {
	return &writer{sb: w.sb, depth: w.depth + 1}
}

func (w *writer) line(text string) {
	prefix := strings.Repeat("  ", w.depth)
	for l := range strings.SplitSeq(text, "\n") {
		if l != "" {
			w.sb.WriteString(prefix)
			w.sb.WriteString(l)
		}
		w.sb.WriteByte('\n')
	}
}
