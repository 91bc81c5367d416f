// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"bytes"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Validate parses script as bash. A parse failure means a trusted value
// interpolated into a directive broke the script's structure.
func Validate(script string) error {
	if _, err := parse(script); err != nil {
		return &MalformedScriptError{Err: err}
	}
	return nil
}

// Format pretty-prints script with two-space indentation, keeping comments.
func Format(script string) (string, error) {
	file, err := parse(script)
	if err != nil {
		return "", &MalformedScriptError{Err: err}
	}
	var buf bytes.Buffer
	if err := syntax.NewPrinter(syntax.Indent(2)).Print(&buf, file); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Quote returns s quoted so that bash reads it back as a single literal word.
func Quote(s string) (string, error) {
	return syntax.Quote(s, syntax.LangBash)
}

func parse(script string) (*syntax.File, error) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash), syntax.KeepComments(true))
	return parser.Parse(strings.NewReader(script), "script")
}
