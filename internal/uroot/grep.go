// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"mvdan.cc/sh/v3/interp"
)

// grepCommand prints lines of its inputs matching a regular expression.
// Exit status is 1 when nothing matched.
type grepCommand struct {
	flags []FlagInfo
}

func newGrepCommand() *grepCommand {
	return &grepCommand{
		flags: []FlagInfo{
			{Name: "i", Description: "ignore case distinctions"},
			{Name: "v", Description: "select non-matching lines"},
			{Name: "q", Description: "print nothing, only set the exit status"},
			{Name: "c", Description: "print only a count of selected lines"},
		},
	}
}

func (c *grepCommand) Name() string { return "grep" }

func (c *grepCommand) SupportedFlags() []FlagInfo { return c.flags }

func (c *grepCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)

	fs := flag.NewFlagSet("grep", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	ignoreCase := fs.Bool("i", false, "")
	invert := fs.Bool("v", false, "")
	quiet := fs.Bool("q", false, "")
	count := fs.Bool("c", false, "")
	_ = fs.Parse(args[1:]) //nolint:errcheck // unsupported flags are ignored

	operands := fs.Args()
	if len(operands) == 0 {
		return wrapError("grep", errors.New("missing pattern"))
	}
	pattern := operands[0]
	if *ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return wrapError("grep", fmt.Errorf("invalid pattern: %w", err))
	}

	out := hc.Stdout
	if *quiet || *count {
		out = io.Discard
	}

	selected := 0
	scan := func(r io.Reader) error {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if re.MatchString(scanner.Text()) == *invert {
				continue
			}
			selected++
			fmt.Fprintln(out, scanner.Text())
		}
		return scanner.Err()
	}

	files := operands[1:]
	if len(files) == 0 {
		err = scan(hc.Stdin)
	}
	for _, name := range files {
		if err = scanFile(hc.Dir, name, scan); err != nil {
			break
		}
	}
	if err != nil {
		return wrapError("grep", err)
	}

	if *count {
		fmt.Fprintln(hc.Stdout, selected)
	}
	if selected == 0 {
		return interp.ExitStatus(1)
	}
	return nil
}

func scanFile(dir, name string, scan func(io.Reader) error) (err error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return scan(f)
}
