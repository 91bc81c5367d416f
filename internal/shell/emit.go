// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"regexp"
	"strings"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	foldNamePattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

	// dquote escapes the characters that are special inside double quotes.
	dquote = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")
)

// IsVariableName reports whether name can be exported by Builder.Export.
func IsVariableName(name string) bool {
	return identifierPattern.MatchString(name)
}

// commandLines renders a command with its policy, innermost first:
// raw command, then assertion, then retry. Fold is applied by the caller.
func commandLines(cmd string, o Options) fragment {
	var f fragment
	if o.Echo {
		f = append(f, echoCommand(cmd))
	}
	if o.Timing {
		f = append(f, "travis_time_start")
	}
	if o.Retry {
		f = append(f, "travis_retry "+cmd)
	} else {
		f = append(f, cmd)
	}
	if o.Timing {
		f = append(f, "travis_time_finish")
	}
	if o.Assert {
		f = append(f, "travis_assert $?")
	}
	return f
}

func rawLines(text string, o Options) fragment {
	f := fragment{text}
	if o.Assert {
		f = append(f, "travis_assert $?")
	}
	return f
}

func exportLines(name, value string, o Options) fragment {
	stmt := "export " + name + "=" + value
	if o.Echo {
		return fragment{echoCommand(stmt), stmt}
	}
	return fragment{stmt}
}

// echoLine prints msg as-is; msg may intentionally contain expansions.
func echoLine(msg string, c Color) string {
	if msg == "" && c == ColorNone {
		return "echo"
	}
	return `echo -e "` + c.wrap(msg) + `"`
}

// echoCommand prints cmd literally, prefixed with a prompt.
func echoCommand(cmd string) string {
	return `echo "\$ ` + dquote.Replace(cmd) + `"`
}
