// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateCommand prints the current time. It understands -u and a +FORMAT
// operand with the conversions travis_nanoseconds and build logs use.
type dateCommand struct {
	now func() time.Time
}

func newDateCommand() *dateCommand { return &dateCommand{now: time.Now} }

func (c *dateCommand) Name() string { return "date" }

func (c *dateCommand) SupportedFlags() []FlagInfo {
	return []FlagInfo{{Name: "u", Description: "print Coordinated Universal Time"}}
}

func (c *dateCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	t := c.now()
	format := "+%a %b %e %H:%M:%S %Z %Y"
	for _, arg := range args[1:] {
		switch {
		case arg == "-u" || arg == "--utc":
			t = t.UTC()
		case strings.HasPrefix(arg, "+"):
			format = arg
		default:
			return wrapError("date", fmt.Errorf("unsupported operand %q", arg))
		}
	}

	_, err := fmt.Fprintln(hc.Stdout, formatDate(t, format[1:]))
	return wrapError("date", err)
}

func formatDate(t time.Time, format string) string {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			sb.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case 's':
			sb.WriteString(strconv.FormatInt(t.Unix(), 10))
		case 'N':
			fmt.Fprintf(&sb, "%09d", t.Nanosecond())
		case 'Y':
			fmt.Fprintf(&sb, "%04d", t.Year())
		case 'm':
			fmt.Fprintf(&sb, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&sb, "%02d", t.Day())
		case 'e':
			fmt.Fprintf(&sb, "%2d", t.Day())
		case 'H':
			fmt.Fprintf(&sb, "%02d", t.Hour())
		case 'M':
			fmt.Fprintf(&sb, "%02d", t.Minute())
		case 'S':
			fmt.Fprintf(&sb, "%02d", t.Second())
		case 'a':
			sb.WriteString(t.Format("Mon"))
		case 'b':
			sb.WriteString(t.Format("Jan"))
		case 'Z':
			sb.WriteString(t.Format("MST"))
		case '%':
			sb.WriteByte('%')
		default:
			sb.WriteByte('%')
			sb.WriteByte(format[i])
		}
	}
	return sb.String()
}
