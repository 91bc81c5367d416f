// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
)

// trCommand translates or deletes characters read from stdin.
type trCommand struct {
	flags []FlagInfo
}

func newTrCommand() *trCommand {
	return &trCommand{
		flags: []FlagInfo{{Name: "d", Description: "delete characters in SET1"}},
	}
}

func (c *trCommand) Name() string { return "tr" }

func (c *trCommand) SupportedFlags() []FlagInfo { return c.flags }

func (c *trCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := flag.NewFlagSet("tr", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	deleteMode := fs.Bool("d", false, "")
	_ = fs.Parse(args[1:]) //nolint:errcheck // unsupported flags are ignored

	operands := fs.Args()
	if len(operands) == 0 || (!*deleteMode && len(operands) < 2) {
		return wrapError("tr", errors.New("missing operand"))
	}
	set1 := []rune(expandSet(operands[0]))
	var set2 []rune
	if !*deleteMode {
		set2 = []rune(expandSet(operands[1]))
		if len(set2) == 0 {
			return wrapError("tr", errors.New("SET2 must be non-empty"))
		}
	}

	mapping := make(map[rune]rune, len(set1))
	for i, r := range set1 {
		if _, seen := mapping[r]; seen {
			continue
		}
		switch {
		case *deleteMode:
			mapping[r] = -1
		case i < len(set2):
			mapping[r] = set2[i]
		default:
			mapping[r] = set2[len(set2)-1]
		}
	}

	in := bufio.NewReader(hc.Stdin)
	out := bufio.NewWriter(hc.Stdout)
	for {
		r, _, err := in.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return wrapError("tr", err)
		}
		if mapped, ok := mapping[r]; ok {
			if mapped < 0 {
				continue
			}
			r = mapped
		}
		if _, err := out.WriteRune(r); err != nil {
			return wrapError("tr", err)
		}
	}
	if err := out.Flush(); err != nil {
		return wrapError("tr", err)
	}
	return nil
}

// expandSet expands ranges such as a-z and the escapes \n, \t and \\.
func expandSet(s string) string {
	var result strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		switch {
		case i+2 < len(runes) && runes[i+1] == '-' && runes[i] <= runes[i+2]:
			for r := runes[i]; r <= runes[i+2]; r++ {
				result.WriteRune(r)
			}
			i += 2
		case runes[i] == '\\' && i+1 < len(runes):
			i++
			switch runes[i] {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			default:
				result.WriteRune(runes[i])
			}
		default:
			result.WriteRune(runes[i])
		}
	}
	return result.String()
}
