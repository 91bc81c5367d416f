// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"github.com/oschwald/travis-build/internal/shell"
)

const (
	// NVMVersion is the nvm release shipped by the file-hosting endpoint.
	NVMVersion = "0.32.0"

	nvmScript = "$HOME/.nvm/nvm.sh"
)

// NVM is the Node Version Manager.
type NVM struct {
	// AppHost is the file-hosting endpoint serving nvm.sh. When empty the
	// self-update is skipped.
	AppHost string
}

// Name returns the manager name.
func (NVM) Name() string { return "nvm" }

// InstallCommand returns `nvm install <v>`.
func (NVM) InstallCommand(v Version) string { return "nvm install " + v.String() }

// SelectCommand returns `nvm use <v>`.
func (NVM) SelectCommand(v Version) string { return "nvm use " + v.String() }

// EmitSelfUpdate replaces an nvm older than NVMVersion with the copy served by
// AppHost. Download failures are not fatal.
func (n NVM) EmitSelfUpdate(sh *shell.Builder) {
	if n.AppHost == "" {
		return
	}
	sh.If("$(vers2int `nvm --version`) -lt $(vers2int "+NVMVersion+")", func() {
		sh.Echo("Updating nvm to v"+NVMVersion, shell.WithColor(shell.ColorYellow))
		sh.Raw("mkdir -p $HOME/.nvm")
		sh.Raw("curl -s -o "+nvmScript+" https://"+n.AppHost+"/files/nvm.sh", shell.WithAssert(false))
		sh.Raw("source "+nvmScript, shell.WithAssert(false))
	})
}
