// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	BuildConfigNotFoundId Id = iota + 1
	BuildConfigParseErrorId
	UnknownLanguageId
	ConfigLoadFailedId
	MalformedScriptId
	ScriptExecutionFailedId
)

type (
	// Id identifies a registered Issue.
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is Markdown guidance for a class of failures.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue for a terminal using the named glamour style
// ("dark", "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	buildConfigNotFoundIssue = &Issue{
		id: BuildConfigNotFoundId,
		mdMsg: `
# No build configuration found!

travis-build reads ` + "`.travis.yml`" + ` from the current directory unless a path is given.

## Things you can try:
- Pass the file explicitly:
~~~
$ travis-build compile path/to/.travis.yml
~~~
- Create a minimal configuration:
~~~yaml
language: node_js
node_js: "8"
~~~`,
		docLinks: []HttpLink{"https://docs.travis-ci.com/user/customizing-the-build/"},
	}

	buildConfigParseErrorIssue = &Issue{
		id: BuildConfigParseErrorId,
		mdMsg: `
# The build configuration is invalid!

The file could not be decoded, or a key has the wrong shape.

## Things you can try:
- Check the YAML or TOML syntax
- ` + "`install:` and `script:`" + ` take a command or a list of commands
- ` + "`cache:`" + ` takes a name, a list of names or a map such as ` + "`{yarn: true, directories: [...]}`",
	}

	unknownLanguageIssue = &Issue{
		id: UnknownLanguageId,
		mdMsg: `
# Unknown language!

No adapter is registered for the requested language.

## Things you can try:
- List the supported languages:
~~~
$ travis-build languages
~~~
- Use ` + "`language: generic`" + ` and supply ` + "`install:` and `script:`" + ` yourself`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the compiler settings!

## Things you can try:
- Show the active settings:
~~~
$ travis-build config show
~~~
- Print a complete settings file to start from:
~~~
$ travis-build config dump > "$(travis-build config path)"
~~~`,
	}

	malformedScriptIssue = &Issue{
		id: MalformedScriptId,
		mdMsg: `
# The compiled script does not parse!

A configured value broke the structure of the generated shell script.
Configuration values are inserted into the script as written.

## Things you can try:
- Look for unbalanced quotes in ` + "`env:`" + `, ` + "`install:`" + ` or ` + "`script:`" + `
- Enable quoting of environment values in the settings file:
~~~cue
script: quote_values: true
~~~`,
	}

	scriptExecutionFailedIssue = &Issue{
		id: ScriptExecutionFailedId,
		mdMsg: `
# The build failed!

A command exited with a non-zero status and aborted the build.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see each phase
- Run the failing command from the output by hand`,
	}

	issues = map[Id]*Issue{
		buildConfigNotFoundIssue.Id():   buildConfigNotFoundIssue,
		buildConfigParseErrorIssue.Id(): buildConfigParseErrorIssue,
		unknownLanguageIssue.Id():       unknownLanguageIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		malformedScriptIssue.Id():       malformedScriptIssue,
		scriptExecutionFailedIssue.Id(): scriptExecutionFailedIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	s := maps.Values(issues)
	slices.SortFunc(s, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return s
}

func Get(id Id) *Issue {
	return issues[id]
}
