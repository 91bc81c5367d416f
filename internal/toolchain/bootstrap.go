// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"github.com/oschwald/travis-build/internal/shell"
)

type (
	// Manager is a version manager able to install and select toolchain versions.
	Manager interface {
		// Name identifies the manager in diagnostics (e.g., "nvm").
		Name() string
		// InstallCommand returns the command installing v over the network.
		InstallCommand(v Version) string
		// SelectCommand returns the command activating an installed v.
		SelectCommand(v Version) string
	}

	// Request describes which version to bootstrap.
	Request struct {
		// Version is the explicitly requested version; empty when not configured.
		Version Version
		// PinFile is a project-local file whose contents name the version to use
		// when Version is empty (e.g., ".nvmrc"). Optional.
		PinFile string
		// Default is used when neither Version nor PinFile apply.
		Default Version
		// ExportAs names the environment variable receiving the resolved version.
		// Empty skips the export.
		ExportAs string
	}

	// Bootstrap emits the install-or-fallback protocol for a Manager.
	Bootstrap struct {
		manager Manager
	}
)

// New creates a Bootstrap for the given version manager.
func New(m Manager) *Bootstrap {
	return &Bootstrap{manager: m}
}

// Emit appends the protocol for req to sh. Without an explicit version it
// branches on the pin file at run time, falling back to req.Default.
func (b *Bootstrap) Emit(sh *shell.Builder, req Request) error {
	if req.Version != "" {
		if err := req.Version.Validate(); err != nil {
			return err
		}
		b.install(sh, req.Version, req.ExportAs)
		return nil
	}
	if err := req.Default.Validate(); err != nil {
		return err
	}
	if req.PinFile == "" {
		b.install(sh, req.Default, req.ExportAs)
		return nil
	}
	sh.If(shell.FileExists(req.PinFile), func() {
		sh.Echo("Using "+b.manager.Name()+" version from "+req.PinFile, shell.WithColor(shell.ColorYellow))
		b.install(sh, Version("$(< "+req.PinFile+")"), req.ExportAs)
	})
	sh.Else(func() {
		b.install(sh, req.Default, req.ExportAs)
	})
	return nil
}

func (b *Bootstrap) install(sh *shell.Builder, v Version, exportAs string) {
	b.step(sh, StateInstalling, v)
	// reached only through StateResolved; StateFailed terminates the script
	sh.Export(exportAs, v.String(), shell.WithEcho(false))
}

// step emits the action of s and nests the failure transition under a check
// of the action's exit status.
func (b *Bootstrap) step(sh *shell.Builder, s State, v Version) {
	switch s {
	case StateInstalling:
		sh.Cmd(b.manager.InstallCommand(v), shell.WithAssert(false))
	case StateFallback:
		sh.Echo("Failed to install "+v.String()+". Remote repository may not be reachable.", shell.WithColor(shell.ColorRed))
		sh.Echo("Using locally available version " + v.String() + ", if applicable.")
		sh.Cmd(b.manager.SelectCommand(v), shell.WithAssert(false), shell.WithTiming(false))
	case StateFailed:
		sh.Echo("Unable to use "+v.String(), shell.WithColor(shell.ColorRed))
		sh.Cmd("false", shell.WithAssert(true), shell.WithEcho(false), shell.WithTiming(false))
	}
	if s.Terminal() {
		return
	}
	if next := s.Next(false); next != StateResolved {
		sh.If("$? -ne 0", func() { b.step(sh, next, v) })
	}
}
