// SPDX-License-Identifier: MPL-2.0

package uroot

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mvdan.cc/sh/v3/interp"
)

func runBuiltin(t *testing.T, cmd Command, dir, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	ctx := WithHandlerContext(context.Background(), &HandlerContext{
		Stdin:     strings.NewReader(stdin),
		Stdout:    &stdout,
		Stderr:    &stderr,
		Dir:       dir,
		LookupEnv: func(string) (string, bool) { return "", false },
	})
	err := cmd.Run(ctx, append([]string{cmd.Name()}, args...))
	return stdout.String(), err
}

func TestGrep(t *testing.T) {
	t.Parallel()

	input := "alpha\nBeto\ngamma\n"
	tests := []struct {
		name    string
		args    []string
		want    string
		noMatch bool
	}{
		{name: "match", args: []string{"a$"}, want: "alpha\ngamma\n"},
		{name: "ignore case", args: []string{"-i", "beto"}, want: "Beto\n"},
		{name: "invert", args: []string{"-v", "a"}, want: "Beto\n"},
		{name: "count", args: []string{"-c", "a"}, want: "2\n"},
		{name: "quiet", args: []string{"-q", "gamma"}, want: ""},
		{name: "no match", args: []string{"delta"}, want: "", noMatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := runBuiltin(t, newGrepCommand(), t.TempDir(), input, tt.args...)
			if tt.noMatch {
				var status interp.ExitStatus
				if !errors.As(err, &status) || status != 1 {
					t.Errorf("err = %v, want exit status 1", err)
				}
			} else if err != nil {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGrep_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte("{\n  \"name\": \"demo\"\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := runBuiltin(t, newGrepCommand(), dir, "", "name", "package.json")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != "  \"name\": \"demo\"\n" {
		t.Errorf("output = %q", got)
	}

	if _, err := runBuiltin(t, newGrepCommand(), dir, "", "x", "missing.json"); err == nil || !strings.HasPrefix(err.Error(), "[uroot] grep:") {
		t.Errorf("missing file: err = %v, want [uroot] grep error", err)
	}
}

func TestTr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{name: "dots to spaces", input: "0.32.0", args: []string{".", " "}, want: "0 32 0"},
		{name: "delete", input: "v4.2.1", args: []string{"-d", "v"}, want: "4.2.1"},
		{name: "range", input: "abc", args: []string{"a-c", "A-C"}, want: "ABC"},
		{name: "short set2 repeats last", input: "abc", args: []string{"abc", "x"}, want: "xxx"},
		{name: "escape", input: "a b", args: []string{" ", `\n`}, want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := runBuiltin(t, newTrCommand(), "", tt.input, tt.args...)
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := runBuiltin(t, newTrCommand(), "", "", "a"); err == nil {
		t.Error("tr with one operand should fail")
	}
}

func TestSleep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "1", want: time.Second},
		{in: "0.5", want: 500 * time.Millisecond},
		{in: "2m", want: 2 * time.Minute},
		{in: "1h", want: time.Hour},
		{in: "soon", wantErr: true},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSleepDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSleepDuration(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSleepDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSleep_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(WithHandlerContext(context.Background(), &HandlerContext{}))
	cancel()
	err := newSleepCommand().Run(ctx, []string{"sleep", "60"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, time.March, 5, 7, 8, 9, 42, time.FixedZone("X", 3600))
	cmd := &dateCommand{now: func() time.Time { return fixed }}

	got, err := runBuiltin(t, cmd, "", "", "-u", "+%Y-%m-%d %H:%M:%S")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != "2024-03-05 06:08:09\n" {
		t.Errorf("output = %q", got)
	}

	got, err = runBuiltin(t, cmd, "", "", "-u", "+%s%N")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if want := "1709618889000000042\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	if _, err := runBuiltin(t, cmd, "", "", "--iso"); err == nil {
		t.Error("unsupported operand should fail")
	}
}

func TestMkdirRm(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := runBuiltin(t, newMkdirCommand(), dir, "", "-p", "a/b/c"); err != nil {
		t.Fatalf("mkdir -p: err = %v", err)
	}
	if info, err := os.Stat(filepath.Join(dir, "a", "b", "c")); err != nil || !info.IsDir() {
		t.Fatalf("mkdir -p did not create a/b/c: %v", err)
	}
	if _, err := runBuiltin(t, newRmCommand(), dir, "", "-r", "a"); err != nil {
		t.Fatalf("rm -r: err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a")); !os.IsNotExist(err) {
		t.Errorf("rm -r left a behind: %v", err)
	}
}

func TestCat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".nvmrc"), []byte("8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := runBuiltin(t, newCatCommand(), dir, "", ".nvmrc")
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if got != "8\n" {
		t.Errorf("output = %q, want %q", got, "8\n")
	}

	_, err = runBuiltin(t, newCatCommand(), dir, "", "missing")
	if err == nil || !strings.HasPrefix(err.Error(), "[uroot] cat:") {
		t.Errorf("err = %v, want [uroot] cat error", err)
	}
}
