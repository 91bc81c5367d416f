// SPDX-License-Identifier: MPL-2.0

package uroot

import "context"

type (
	// Command is a built-in utility.
	Command interface {
		// Name returns the command name (e.g., "mkdir").
		Name() string

		// Run executes the command. args[0] is the command name. The
		// HandlerContext carrying stdio, directory and environment is taken
		// from ctx.
		Run(ctx context.Context, args []string) error

		// SupportedFlags lists the recognized flags. Others are ignored.
		SupportedFlags() []FlagInfo
	}

	// FlagInfo describes a supported flag.
	FlagInfo struct {
		// Name is the flag name without dashes.
		Name string
		// Description explains what the flag does.
		Description string
		// TakesValue indicates the flag consumes the next argument.
		TakesValue bool
	}
)
