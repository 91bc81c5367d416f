// SPDX-License-Identifier: MPL-2.0

package shell

// command applies the policy wrappers in fixed order, outermost first:
// fold, then retry, then assertion around the raw command.
func (b *Builder) command(op, cmd string, o Options) {
	if o.Fold != "" {
		name := o.Fold
		inner := o
		inner.Fold = ""
		b.Fold(name, func() { b.command(op, cmd, inner) })
		return
	}
	b.current(op).append(op, commandLines(cmd, o))
}
