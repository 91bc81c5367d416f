// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"context"
	"fmt"

	"github.com/u-root/u-root/pkg/core"
	"github.com/u-root/u-root/pkg/core/cat"
	"github.com/u-root/u-root/pkg/core/mkdir"
	"github.com/u-root/u-root/pkg/core/rm"
)

// coreCommand adapts a u-root pkg/core implementation to Command.
type coreCommand struct {
	name  string
	flags []FlagInfo
	new   func() core.Command
}

func newMkdirCommand() *coreCommand {
	return &coreCommand{
		name: "mkdir",
		flags: []FlagInfo{
			{Name: "p", Description: "create parent directories as needed"},
			{Name: "m", Description: "set file mode", TakesValue: true},
		},
		new: func() core.Command { return mkdir.New() },
	}
}

func newRmCommand() *coreCommand {
	return &coreCommand{
		name: "rm",
		flags: []FlagInfo{
			{Name: "r", Description: "remove directories and their contents recursively"},
			{Name: "f", Description: "ignore nonexistent files, never prompt"},
		},
		new: func() core.Command { return rm.New() },
	}
}

func newCatCommand() *coreCommand {
	return &coreCommand{
		name:  "cat",
		flags: []FlagInfo{{Name: "u", Description: "ignored"}},
		new:   func() core.Command { return cat.New() },
	}
}

func (c *coreCommand) Name() string { return c.name }

func (c *coreCommand) SupportedFlags() []FlagInfo { return c.flags }

// Run configures a fresh u-root command with the handler context and runs it
// with args[1:].
func (c *coreCommand) Run(ctx context.Context, args []string) error {
	hc := GetHandlerContext(ctx)
	cmd := c.new()
	cmd.SetIO(hc.Stdin, hc.Stdout, hc.Stderr)
	cmd.SetWorkingDir(hc.Dir)
	cmd.SetLookupEnv(hc.LookupEnv)

	if err := cmd.RunContext(ctx, args[1:]...); err != nil {
		return wrapError(c.name, err)
	}
	return nil
}

// wrapError prefixes err with "[uroot] <cmd>:". Returns nil if err is nil.
func wrapError(cmdName string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[uroot] %s: %w", cmdName, err)
}
