// SPDX-License-Identifier: MPL-2.0

package script

import (
	"strconv"
	"strings"

	"github.com/oschwald/travis-build/internal/cache"
	"github.com/oschwald/travis-build/internal/shell"
	"github.com/oschwald/travis-build/internal/toolchain"
	"github.com/oschwald/travis-build/pkg/buildconfig"
)

const (
	// NodeDefaultVersion is installed when neither `node_js:` nor .nvmrc name one.
	NodeDefaultVersion = "0.10"
	// NodeVersionFile pins the version for a project.
	NodeVersionFile = ".nvmrc"
	// EnvNodeVersion receives the configured or resolved Node.js version.
	EnvNodeVersion = "TRAVIS_NODE_VERSION"

	yarnCacheDir = "$HOME/.yarn-cache"

	cxx11Probe  = "/tmp/foo-$$.cpp"
	cxx11Notice = "Starting with io.js 3 and Node.js 4, building native extensions requires C++11-compatible compiler, " +
		"which seems unavailable on this VM. Please read " +
		"https://docs.travis-ci.com/user/languages/javascript-with-nodejs#Node.js-v4-(or-io.js-v3)-compiler-requirements."
)

// NodeJS is the Node.js adapter. Versions are managed by nvm.
var NodeJS = &Adapter{
	Name:    "node_js",
	Aliases: []string{"node", "nodejs"},
	Summary: "Installs Node.js with nvm and runs `npm test`.\n\n" +
		"* **Version**: `node_js:` (first entry), the legacy `nodejs:` key, `.nvmrc` or 0.10.\n" +
		"* **Install**: `yarn` when `yarn.lock` exists, otherwise `npm install` with `npm_args`.\n" +
		"* **Script**: `npm test` when `package.json` exists, otherwise `make test`.\n" +
		"* **Cache**: `cache: yarn` caches `$HOME/.yarn-cache`; `cache: npm` uses the configured npm proxy.\n",

	Export:            Sequence(BaseExport, nodeExport),
	Setup:             nodeSetup,
	SetupCache:        nodeSetupCache,
	Announce:          nodeAnnounce,
	Install:           nodeInstall,
	Script:            nodeScript,
	CacheSlug:         nodeCacheSlug,
	UseDirectoryCache: func(cfg *buildconfig.BuildConfig) bool { return cfg.Cache("yarn") },
}

// nodeVersion returns the configured version, honoring the legacy `nodejs:`
// key. A blank value counts as unset. YAML reads 0.10 as the number 0.1,
// which is mapped back.
func nodeVersion(cfg *buildconfig.BuildConfig) (string, bool) {
	for _, key := range []string{"node_js", "nodejs"} {
		v, _ := cfg.String(key)
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if v == "0.1" {
			v = NodeDefaultVersion
		}
		return v, true
	}
	return "", false
}

// nodeVersionOrDefault is the version used for decisions made at compile time.
func nodeVersionOrDefault(cfg *buildconfig.BuildConfig) string {
	if v, ok := nodeVersion(cfg); ok {
		return v
	}
	return NodeDefaultVersion
}

func nodeExport(c *Context) error {
	if v, ok := nodeVersion(c.Config); ok {
		c.Sh.Export(EnvNodeVersion, v, shell.WithEcho(false))
	}
	return nil
}

func nodeSetup(c *Context) error {
	sh := c.Sh
	sh.PrependPath("./node_modules/.bin")

	nvm := toolchain.NVM{AppHost: c.Settings.AppHost}
	nvm.EmitSelfUpdate(sh)

	v, _ := nodeVersion(c.Config)
	err := toolchain.New(nvm).Emit(sh, toolchain.Request{
		Version:  toolchain.Version(v),
		PinFile:  NodeVersionFile,
		Default:  NodeDefaultVersion,
		ExportAs: EnvNodeVersion,
	})
	if err != nil {
		return err
	}

	sh.If("$(command -v sw_vers) && -f $HOME/.npmrc", func() {
		sh.Cmd("npm config delete prefix")
	})
	sh.Cmd("npm config set spin false", shell.WithEcho(false), shell.WithTiming(false))
	sh.Cmd("npm config set progress false", shell.WithEcho(false), shell.WithTiming(false))

	if isNode06(nodeVersionOrDefault(c.Config)) {
		sh.Cmd(`echo "### Disabling strict SSL ###"`)
		sh.Cmd("npm conf set strict-ssl false")
	}

	if c.Config.Cache("npm") && c.Settings.NPMCacheHost != "" {
		sh.Cmd("npm config set registry http://registry.npmjs.org/", shell.WithTiming(false))
		sh.Cmd("npm config set proxy "+c.Settings.NPMCacheHost, shell.WithTiming(false))
	}
	return nil
}

func nodeSetupCache(c *Context) error {
	if !c.Config.Cache("yarn") {
		return nil
	}
	c.Sh.Fold("cache.yarn", func() {
		c.Sh.Echo("")
		c.Cache.Add(c.Sh, yarnCacheDir)
	})
	return nil
}

func nodeAnnounce(c *Context) error {
	sh := c.Sh
	if isIOJS3Plus(nodeVersionOrDefault(c.Config)) {
		sh.Cmd(`echo -e "#include <array>\nstd::array<int, 1> arr = {0}; int main() {return 0;}" > `+cxx11Probe, shell.WithEcho(false))
		sh.Raw("if ! ($CXX -std=c++11 -o /dev/null " + cxx11Probe + " >/dev/null 2>&1 || g++ -std=c++11 -o /dev/null " + cxx11Probe + " >/dev/null 2>&1); then")
		sh.Echo(cxx11Notice, shell.WithColor(shell.ColorYellow))
		sh.Raw("fi")
		sh.Cmd("rm -f "+cxx11Probe, shell.WithEcho(false))
	}
	sh.Cmd("node --version")
	sh.Cmd("npm --version")
	sh.Cmd("nvm --version")
	return nil
}

func nodeInstall(c *Context) error {
	sh := c.Sh
	sh.If(shell.FileExists("package.json"), func() {
		sh.If(shell.FileExists("yarn.lock"), func() {
			sh.If("$(vers2int $(echo `node --version` | tr -d 'v')) -lt $(vers2int 4)", func() {
				sh.Echo("Node.js version $(node --version) does not meet requirement for yarn. Please use Node.js 4 or later.", shell.WithColor(shell.ColorRed))
				npmInstall(c)
			})
			sh.Else(func() {
				sh.If(`-z "$(command -v yarn)"`, func() { installYarn(sh) })
				sh.Cmd("yarn", shell.WithRetry(true), shell.WithFold("install"))
			})
		})
		sh.Else(func() { npmInstall(c) })
	})
	return nil
}

func npmInstall(c *Context) {
	cmd := "npm install"
	if args, ok := c.Config.String("npm_args"); ok && args != "" {
		cmd += " " + args
	}
	c.Sh.Cmd(cmd, shell.WithRetry(true), shell.WithFold("install"))
}

func installYarn(sh *shell.Builder) {
	sh.If(`-z "$(command -v gpg)"`, func() {
		sh.Export("YARN_GPG", "no")
	})
	sh.Echo("Installing yarn", shell.WithColor(shell.ColorGreen))
	sh.Cmd("curl -o- -L https://yarnpkg.com/install.sh | bash")
	sh.Echo(`Setting up \$PATH`, shell.WithColor(shell.ColorGreen))
	sh.Export("PATH", "$HOME/.yarn/bin:$PATH")
}

func nodeScript(c *Context) error {
	c.Sh.If(shell.FileExists("package.json"), func() {
		c.Sh.Cmd("npm test")
	})
	c.Sh.Else(func() {
		c.Sh.Cmd(DefaultScript)
	})
	return nil
}

func nodeCacheSlug(cfg *buildconfig.BuildConfig) (string, error) {
	return cache.For("node", nodeVersionOrDefault(cfg))
}

func isNode06(v string) bool {
	parts := strings.Split(v, ".")
	return len(parts) >= 2 && parts[0] == "0" && parts[1] == "6"
}

func isIOJS3Plus(v string) bool {
	major, _, _ := strings.Cut(strings.TrimPrefix(v, "v"), ".")
	n, err := strconv.Atoi(major)
	return err == nil && n >= 3
}
