// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"strings"
)

// Builder accumulates directives into nested blocks and renders them as a script.
// A Builder is single-use and not safe for concurrent use.
type Builder struct {
	root     *block
	stack    []*block
	finished bool
}

// NewBuilder creates a Builder with an open root block.
func NewBuilder() *Builder {
	root := newBlock(blockRoot)
	return &Builder{
		root:  root,
		stack: []*block{root},
	}
}

// Cmd emits a command. By default the command is echoed, timed and asserted.
// A fold option wraps the whole command, including its retries, in a fold.
func (b *Builder) Cmd(cmd string, opts ...Option) {
	b.command("Cmd", cmd, resolve(cmdDefaults, opts))
}

// Raw emits text verbatim. Only the assert option is honored.
func (b *Builder) Raw(text string, opts ...Option) {
	o := resolve(rawDefaults, opts)
	b.current("Raw").append("Raw", rawLines(text, o))
}

// Export emits `export name=value`. An empty name is silently skipped so that
// optional configuration can be propagated without checks at every call site.
func (b *Builder) Export(name, value string, opts ...Option) {
	if name == "" {
		return
	}
	if !identifierPattern.MatchString(name) {
		misuse("Export", "invalid variable name %q", name)
	}
	o := resolve(exportDefaults, opts)
	b.current("Export").append("Export", exportLines(name, value, o))
}

// Echo prints msg, optionally colored. Unknown colors print uncolored.
func (b *Builder) Echo(msg string, opts ...Option) {
	o := resolve(echoDefaults, opts)
	b.current("Echo").append("Echo", fragment{echoLine(msg, o.Color)})
}

// Newline prints an empty line.
func (b *Builder) Newline() {
	b.Echo("")
}

// If opens a conditional block around fn. cond is a test expression placed
// inside [[ ]], for example "-f package.json" or "$? -ne 0".
func (b *Builder) If(cond string, fn func()) {
	if strings.TrimSpace(cond) == "" {
		misuse("If", "empty condition")
	}
	c := &conditional{cond: cond, then: newBlock(blockThen)}
	b.current("If").append("If", c)
	b.within("If", c.then, fn)
}

// Else attaches an else branch to the If that immediately precedes it at the
// current nesting depth.
func (b *Builder) Else(fn func()) {
	parent := b.current("Else")
	c, ok := parent.last().(*conditional)
	if !ok {
		misuse("Else", "must directly follow an If at the same depth")
	}
	if c.els != nil {
		misuse("Else", "If already has an else branch")
	}
	c.els = newBlock(blockElse)
	b.within("Else", c.els, fn)
}

// Fold wraps fn in begin/end fold markers. Markers are emitted even when fn
// emits nothing.
func (b *Builder) Fold(name string, fn func()) {
	if !foldNamePattern.MatchString(name) {
		misuse("Fold", "invalid fold name %q", name)
	}
	f := &fold{name: name, body: newBlock(blockFold)}
	b.current("Fold").append("Fold", f)
	b.within("Fold", f.body, fn)
}

// Chdir creates dir if needed and changes into it.
func (b *Builder) Chdir(dir string) {
	b.Cmd("mkdir -p "+dir, WithEcho(false), WithTiming(false), WithAssert(false))
	b.Cmd("cd "+dir, WithTiming(false))
}

// FileExists returns the condition testing that a regular file exists.
func FileExists(name string) string {
	return "-f " + name
}

// PrependPath prepends dir to PATH unless it is already a PATH entry, so
// repeated runs do not grow PATH.
func (b *Builder) PrependPath(dir string) {
	b.If("$(echo :$PATH: | grep -v :"+dir+":)", func() {
		b.Export("PATH", dir+":$PATH", WithEcho(true))
	})
}

// Depth returns the number of open blocks below the root.
func (b *Builder) Depth() int {
	return len(b.stack) - 1
}

// Script closes the root block and renders the preamble followed by every
// directive. The Builder cannot be used afterwards.
func (b *Builder) Script() string {
	if b.finished {
		misuse("Script", "builder already finished")
	}
	if len(b.stack) != 1 {
		misuse("Script", "%d block(s) still open", len(b.stack)-1)
	}
	b.root.close("Script")
	b.stack = nil
	b.finished = true

	var sb strings.Builder
	sb.WriteString(Preamble())
	sb.WriteByte('\n')
	b.root.render(&writer{sb: &sb})
	return sb.String()
}

func (b *Builder) current(op string) *block {
	if b.finished {
		misuse(op, "builder already finished")
	}
	return b.stack[len(b.stack)-1]
}

// within runs fn with blk as the innermost open block, then closes it.
func (b *Builder) within(op string, blk *block, fn func()) {
	b.stack = append(b.stack, blk)
	if fn != nil {
		fn()
	}
	if b.finished || b.stack[len(b.stack)-1] != blk {
		misuse(op, "%s block closed out of order", blk.kind)
	}
	b.stack = b.stack[:len(b.stack)-1]
	blk.close(op)
}
